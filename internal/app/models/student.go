package models

// Student defines the student model based on the 'students' table
type Student struct {
	ID        int64  `json:"id" db:"id" example:"1"`                          // Server-assigned identifier
	Name      string `json:"name" db:"name" example:"Harry Potter"`           // Student's full name
	Age       int    `json:"age" db:"age" example:"17"`                       // Age in years, never negative
	FacultyID *int64 `json:"facultyId,omitempty" db:"faculty_id" example:"1"` // Owning faculty, nil when unassigned
}
