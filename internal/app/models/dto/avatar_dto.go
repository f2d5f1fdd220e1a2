package dto

import "github.com/yigit/school/internal/app/models"

// AvatarResponse is the metadata of a stored avatar, without its bytes
type AvatarResponse struct {
	ID        int64  `json:"id" example:"3"`
	StudentID int64  `json:"studentId" example:"1"`
	FileSize  int64  `json:"fileSize" example:"20480"`
	MediaType string `json:"mediaType" example:"image/png"`
}

// FromAvatar converts a model.Avatar into an AvatarResponse
func FromAvatar(avatar *models.Avatar) AvatarResponse {
	return AvatarResponse{
		ID:        avatar.ID,
		StudentID: avatar.StudentID,
		FileSize:  avatar.FileSize,
		MediaType: avatar.MediaType,
	}
}

// FromAvatars converts a list of avatars
func FromAvatars(avatars []*models.Avatar) []AvatarResponse {
	out := make([]AvatarResponse, 0, len(avatars))
	for _, a := range avatars {
		out = append(out, FromAvatar(a))
	}
	return out
}
