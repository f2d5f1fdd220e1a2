package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/school/internal/app/models"
	"github.com/yigit/school/internal/app/models/dto"
	"github.com/yigit/school/internal/app/services"
	"github.com/yigit/school/internal/middleware"
	"github.com/yigit/school/internal/pkg/apperrors"
	"github.com/yigit/school/internal/pkg/helpers"
	"github.com/yigit/school/internal/pkg/logger"
)

// AvatarFormField is the multipart field carrying the avatar image
const AvatarFormField = "avatar"

// AvatarController handles avatar upload and download
type AvatarController struct {
	avatarService services.AvatarService
}

// NewAvatarController creates a new AvatarController
func NewAvatarController(avatarService services.AvatarService) *AvatarController {
	return &AvatarController{
		avatarService: avatarService,
	}
}

// UploadAvatar stores an avatar for a student, replacing the previous one
// @Summary Upload a student avatar
// @Description Saves the image to disk and into the database
// @Tags avatars
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} dto.APIResponse{data=dto.AvatarResponse} "Avatar stored"
// @Failure 400 {object} dto.ErrorResponse "Missing file or extension"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 409 {object} dto.ErrorResponse "Concurrent upload for the same student"
// @Failure 500 {object} dto.ErrorResponse "Storage error"
// @Router /students/{id}/avatar [post]
func (c *AvatarController) UploadAvatar(ctx *gin.Context) {
	studentID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	fileHeader, err := ctx.FormFile(AvatarFormField)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError(fmt.Sprintf("multipart field %q is required", AvatarFormField)))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewStorageError("failed to open uploaded file", err))
		return
	}
	defer file.Close()

	avatar, err := c.avatarService.StoreAvatar(ctx.Request.Context(), studentID, &models.Upload{
		Content:     file,
		Filename:    fileHeader.Filename,
		Size:        fileHeader.Size,
		ContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.FromAvatar(avatar))
}

// GetAvatarFromDB returns the avatar bytes stored in the database
// @Summary Download avatar from the database
// @Tags avatars
// @Produce octet-stream
// @Param studentId path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {file} binary
// @Failure 404 {object} dto.ErrorResponse "No avatar"
// @Router /avatars/{studentId}/from-db [get]
func (c *AvatarController) GetAvatarFromDB(ctx *gin.Context) {
	studentID, err := parseIDParam(ctx, "studentId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	avatar, err := c.avatarService.GetAvatar(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if !avatar.HasData() {
		middleware.HandleAPIError(ctx, apperrors.NewResourceNotFoundError(fmt.Sprintf("student %d has no avatar", studentID)))
		return
	}

	ctx.Data(http.StatusOK, avatar.MediaType, avatar.Data)
}

// GetAvatarFromFile streams the avatar file from disk
// @Summary Download avatar from disk
// @Tags avatars
// @Produce octet-stream
// @Param studentId path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {file} binary
// @Failure 404 {object} dto.ErrorResponse "No avatar"
// @Router /avatars/{studentId}/from-file [get]
func (c *AvatarController) GetAvatarFromFile(ctx *gin.Context) {
	studentID, err := parseIDParam(ctx, "studentId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	rc, avatar, err := c.avatarService.OpenAvatarFile(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer func() {
		if err := rc.Close(); err != nil {
			logger.Warn().Err(err).Int64("studentID", studentID).Msg("Failed to close avatar file")
		}
	}()

	ctx.DataFromReader(http.StatusOK, avatar.FileSize, avatar.MediaType, rc, nil)
}

// ListAvatars lists avatar metadata, optionally one zero-based page at a time
// @Summary List avatars
// @Tags avatars
// @Produce json
// @Param page query int false "Zero-based page"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid page or size"
// @Router /avatars [get]
func (c *AvatarController) ListAvatars(ctx *gin.Context) {
	page, size, paged, err := helpers.ParsePaginationParams(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("page and size must be integers"))
		return
	}

	if !paged {
		avatars, err := c.avatarService.ListAvatars(ctx.Request.Context())
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		respond(ctx, http.StatusOK, dto.FromAvatars(avatars))
		return
	}

	avatars, err := c.avatarService.ListAvatarPage(ctx.Request.Context(), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.PaginatedResponse{
		Items:      dto.FromAvatars(avatars),
		Pagination: helpers.NewPaginationInfo(page, size, len(avatars)),
	})
}
