package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/school/internal/app/models"
	"github.com/yigit/school/internal/pkg/apperrors"
	"github.com/yigit/school/internal/pkg/filestorage"
	"github.com/yigit/school/internal/pkg/logger"
	"github.com/yigit/school/internal/pkg/validation"
)

const genericMediaType = "application/octet-stream"

// AvatarService defines the interface for avatar-related operations
type AvatarService interface {
	// StoreAvatar writes the upload to disk and into the avatars table, replacing any
	// previous avatar of the student
	StoreAvatar(ctx context.Context, studentID int64, upload *models.Upload) (*models.Avatar, error)
	// GetAvatar returns the avatar of a student, or an empty placeholder when none exists
	GetAvatar(ctx context.Context, studentID int64) (*models.Avatar, error)
	// OpenAvatarFile opens the on-disk copy of a student's avatar
	OpenAvatarFile(ctx context.Context, studentID int64) (io.ReadCloser, *models.Avatar, error)
	ListAvatars(ctx context.Context) ([]*models.Avatar, error)
	ListAvatarPage(ctx context.Context, page, size int) ([]*models.Avatar, error)
}

// avatarServiceImpl implements the AvatarService interface
type avatarServiceImpl struct {
	avatarRepo  AvatarRepository
	studentRepo StudentRepository
	storage     filestorage.FileStorage
	tx          Transactor
}

// NewAvatarService creates a new avatar service instance
func NewAvatarService(
	avatarRepo AvatarRepository,
	studentRepo StudentRepository,
	storage filestorage.FileStorage,
	tx Transactor,
) AvatarService {
	return &avatarServiceImpl{
		avatarRepo:  avatarRepo,
		studentRepo: studentRepo,
		storage:     storage,
		tx:          tx,
	}
}

// fileExtension returns the text after the last "." of filename
func fileExtension(filename string) (string, error) {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return "", apperrors.ErrMissingExtension
	}

	ext := filename[idx+1:]
	if !validation.IsValidExtension(ext) {
		return "", apperrors.ErrInvalidExtension
	}
	return ext, nil
}

func detectMediaType(declared string, data []byte) string {
	if declared != "" && declared != genericMediaType {
		return declared
	}
	return mimetype.Detect(data).String()
}

// StoreAvatar saves an uploaded avatar for a student
func (s *avatarServiceImpl) StoreAvatar(ctx context.Context, studentID int64, upload *models.Upload) (*models.Avatar, error) {
	if upload == nil || upload.Content == nil {
		return nil, fmt.Errorf("%w: no file uploaded", apperrors.ErrValidationFailed)
	}

	ext, err := fileExtension(upload.Filename)
	if err != nil {
		return nil, err
	}

	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	var content bytes.Buffer
	staged, err := s.storage.Stage(upload.Content, &content)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to save avatar file", err)
	}
	defer staged.Discard()

	data := content.Bytes()
	if data == nil {
		// An empty upload is stored as an empty BYTEA, never as NULL.
		data = []byte{}
	}

	fileName := fmt.Sprintf("%d.%s", studentID, ext)
	avatar := &models.Avatar{
		StudentID: studentID,
		FilePath:  s.storage.PathFor(fileName),
		FileSize:  staged.Size(),
		MediaType: detectMediaType(upload.ContentType, data),
		Data:      data,
	}

	// The previous file stays aside until the transaction outcome is known.
	var published filestorage.PublishedFile
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.avatarRepo.UpsertTx(ctx, tx, avatar); err != nil {
			return err
		}

		pf, err := staged.Publish(fileName)
		if err != nil {
			if errors.Is(err, fs.ErrExist) {
				return apperrors.ErrAvatarExists
			}
			return apperrors.NewStorageError("failed to publish avatar file", err)
		}
		published = pf
		avatar.FilePath = pf.Info().Path
		return nil
	})
	if err != nil {
		if published != nil {
			if revertErr := published.Revert(); revertErr != nil {
				logger.Error().Err(revertErr).Int64("studentID", studentID).Msg("Failed to restore previous avatar file")
			}
		}
		if apperrors.Is(err, apperrors.ErrAvatarExists, apperrors.ErrStorageIO, apperrors.ErrStudentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error saving avatar: %w", err)
	}

	if err := published.Commit(); err != nil {
		logger.Warn().Err(err).Int64("studentID", studentID).Msg("Previous avatar files were not removed")
	}

	logger.Info().
		Int64("studentID", studentID).
		Int64("size", avatar.FileSize).
		Str("mediaType", avatar.MediaType).
		Msg("Avatar stored")
	return avatar, nil
}

// GetAvatar returns the stored avatar of a student, or an empty Avatar when there is none
func (s *avatarServiceImpl) GetAvatar(ctx context.Context, studentID int64) (*models.Avatar, error) {
	avatar, err := s.avatarRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return &models.Avatar{}, nil
		}
		return nil, fmt.Errorf("error retrieving avatar: %w", err)
	}
	return avatar, nil
}

// OpenAvatarFile opens the on-disk avatar of a student. The caller closes the reader.
func (s *avatarServiceImpl) OpenAvatarFile(ctx context.Context, studentID int64) (io.ReadCloser, *models.Avatar, error) {
	avatar, err := s.GetAvatar(ctx, studentID)
	if err != nil {
		return nil, nil, err
	}
	if !avatar.HasData() {
		return nil, nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("student %d has no avatar", studentID))
	}

	rc, err := s.storage.Open(avatar.FilePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, apperrors.NewResourceNotFoundError("avatar file is missing on disk")
		}
		return nil, nil, apperrors.NewStorageError("failed to open avatar file", err)
	}
	return rc, avatar, nil
}

// ListAvatars returns every stored avatar
func (s *avatarServiceImpl) ListAvatars(ctx context.Context) ([]*models.Avatar, error) {
	avatars, err := s.avatarRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing avatars: %w", err)
	}
	return avatars, nil
}

// ListAvatarPage returns one zero-based page of avatars
func (s *avatarServiceImpl) ListAvatarPage(ctx context.Context, page, size int) ([]*models.Avatar, error) {
	if page < 0 || size <= 0 {
		return nil, fmt.Errorf("%w: page must be >= 0 and size > 0", apperrors.ErrValidationFailed)
	}

	avatars, err := s.avatarRepo.ListPage(ctx, page, size)
	if err != nil {
		return nil, fmt.Errorf("error listing avatars: %w", err)
	}
	return avatars, nil
}
