package dto

import "github.com/yigit/school/internal/app/models"

// FacultyRequest carries the full faculty state for create and replace
type FacultyRequest struct {
	Name  string `json:"name" binding:"required,max=255" example:"Gryffindor"`
	Color string `json:"color" binding:"required,max=64" example:"Red"`
}

// ToModel converts the request into a faculty with the given id
func (r FacultyRequest) ToModel(id int64) *models.Faculty {
	return &models.Faculty{ID: id, Name: r.Name, Color: r.Color}
}

// LongestNameResponse holds the longest faculty name
type LongestNameResponse struct {
	Name string `json:"name" example:"Ravenclaw"`
}
