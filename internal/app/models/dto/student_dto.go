package dto

import "github.com/yigit/school/internal/app/models"

// StudentRequest carries the full student state for create and replace
type StudentRequest struct {
	Name      string `json:"name" binding:"required,max=255" example:"Hermione Granger"`
	Age       *int   `json:"age" binding:"required,min=0,max=200" example:"17"`
	FacultyID *int64 `json:"facultyId,omitempty" binding:"omitempty,gt=0" example:"1"`
}

// ToModel converts the request into a student with the given id
func (r StudentRequest) ToModel(id int64) *models.Student {
	student := &models.Student{ID: id, Name: r.Name, FacultyID: r.FacultyID}
	if r.Age != nil {
		student.Age = *r.Age
	}
	return student
}

// CountResponse holds the number of students
type CountResponse struct {
	Count int64 `json:"count" example:"42"`
}

// AverageAgeResponse holds the mean student age
type AverageAgeResponse struct {
	AverageAge float64 `json:"averageAge" example:"16.5"`
}

// StudentFacultyResponse answers "which faculty is this student in". Faculty is null
// when the student exists but has no faculty.
type StudentFacultyResponse struct {
	StudentID int64           `json:"studentId" example:"1"`
	Faculty   *models.Faculty `json:"faculty"`
}
