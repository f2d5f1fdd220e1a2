package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/school/internal/app/models"
	"github.com/yigit/school/internal/pkg/apperrors"
	"github.com/yigit/school/internal/pkg/dberrors"
	"github.com/yigit/school/internal/pkg/helpers"
	"github.com/yigit/school/internal/pkg/logger"
)

const upsertAvatarSuffix = `ON CONFLICT (student_id) DO UPDATE SET
	file_path = EXCLUDED.file_path,
	file_size = EXCLUDED.file_size,
	media_type = EXCLUDED.media_type,
	data = EXCLUDED.data
RETURNING id`

var avatarColumns = []string{"id", "student_id", "file_path", "file_size", "media_type", "data"}

// AvatarRepository handles avatar database operations
type AvatarRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewAvatarRepository creates a new AvatarRepository
func NewAvatarRepository(db DBTX) *AvatarRepository {
	return &AvatarRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanAvatar(row pgx.Row) (*models.Avatar, error) {
	avatar := &models.Avatar{}
	err := row.Scan(&avatar.ID, &avatar.StudentID, &avatar.FilePath, &avatar.FileSize, &avatar.MediaType, &avatar.Data)
	if err != nil {
		return nil, err
	}
	return avatar, nil
}

// GetByStudentID returns the avatar of a student or apperrors.ErrResourceNotFound
func (r *AvatarRepository) GetByStudentID(ctx context.Context, studentID int64) (*models.Avatar, error) {
	sql, args, err := r.sb.Select(avatarColumns...).
		From("avatars").
		Where(squirrel.Eq{"student_id": studentID}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get avatar SQL")
		return nil, fmt.Errorf("failed to build get avatar query: %w", err)
	}

	avatar, err := scanAvatar(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no avatar for student %d", apperrors.ErrResourceNotFound, studentID)
		}
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error scanning avatar row")
		return nil, fmt.Errorf("error getting avatar: %w", err)
	}

	return avatar, nil
}

// UpsertTx creates or replaces the avatar of avatar.StudentID inside tx and sets
// avatar.ID to the row id.
func (r *AvatarRepository) UpsertTx(ctx context.Context, tx pgx.Tx, avatar *models.Avatar) error {
	sql, args, err := r.sb.Insert("avatars").
		Columns("student_id", "file_path", "file_size", "media_type", "data").
		Values(avatar.StudentID, avatar.FilePath, avatar.FileSize, avatar.MediaType, avatar.Data).
		Suffix(upsertAvatarSuffix).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building upsert avatar SQL")
		return fmt.Errorf("failed to build upsert avatar query: %w", err)
	}

	if err := tx.QueryRow(ctx, sql, args...).Scan(&avatar.ID); err != nil {
		if dberrors.IsForeignKeyViolation(err, "") {
			return apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", avatar.StudentID).Msg("Error executing upsert avatar query")
		return fmt.Errorf("error saving avatar: %w", err)
	}

	return nil
}

// ListAll returns every avatar in id order
func (r *AvatarRepository) ListAll(ctx context.Context) ([]*models.Avatar, error) {
	return r.list(ctx, r.sb.Select(avatarColumns...).From("avatars").OrderBy("id ASC"))
}

// ListPage returns one zero-based page of avatars in id order
func (r *AvatarRepository) ListPage(ctx context.Context, page, size int) ([]*models.Avatar, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	return r.list(ctx, r.sb.Select(avatarColumns...).
		From("avatars").
		OrderBy("id ASC").
		Limit(limit).
		Offset(offset))
}

func (r *AvatarRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Avatar, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list avatars SQL")
		return nil, fmt.Errorf("failed to build list avatars query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list avatars query")
		return nil, fmt.Errorf("error querying avatars: %w", err)
	}
	defer rows.Close()

	avatars := []*models.Avatar{}
	for rows.Next() {
		avatar, err := scanAvatar(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning avatar row")
			return nil, fmt.Errorf("error scanning avatar row: %w", err)
		}
		avatars = append(avatars, avatar)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating avatar rows")
		return nil, fmt.Errorf("error iterating avatar rows: %w", err)
	}

	return avatars, nil
}
