package models

// Avatar is the image attached to a student. The bytes live both on disk at FilePath
// and inline in Data.
type Avatar struct {
	ID        int64  `json:"id" db:"id"`
	StudentID int64  `json:"studentId" db:"student_id"`
	FilePath  string `json:"filePath" db:"file_path"`
	FileSize  int64  `json:"fileSize" db:"file_size"`
	MediaType string `json:"mediaType" db:"media_type"`
	Data      []byte `json:"-" db:"data"`
}

// HasData reports whether the avatar is a stored record rather than the empty
// placeholder returned for students without an avatar.
func (a *Avatar) HasData() bool {
	return a != nil && a.ID != 0
}
