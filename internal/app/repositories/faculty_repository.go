package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/school/internal/app/models"
	"github.com/yigit/school/internal/pkg/apperrors"
	"github.com/yigit/school/internal/pkg/logger"
)

var facultyColumns = []string{"id", "name", "color"}

// FacultyRepository handles faculty database operations
type FacultyRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewFacultyRepository creates a new FacultyRepository
func NewFacultyRepository(db DBTX) *FacultyRepository {
	return &FacultyRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// Create inserts a faculty and returns its generated id
func (r *FacultyRepository) Create(ctx context.Context, faculty *models.Faculty) (int64, error) {
	sql, args, err := r.sb.Insert("faculties").
		Columns("name", "color").
		Values(faculty.Name, faculty.Color).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create faculty SQL")
		return 0, fmt.Errorf("failed to build create faculty query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create faculty query")
		return 0, fmt.Errorf("error creating faculty: %w", err)
	}

	return id, nil
}

// GetByID retrieves a faculty by ID
func (r *FacultyRepository) GetByID(ctx context.Context, id int64) (*models.Faculty, error) {
	sql, args, err := r.sb.Select(facultyColumns...).
		From("faculties").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get faculty by ID SQL")
		return nil, fmt.Errorf("failed to build get faculty query: %w", err)
	}

	faculty := &models.Faculty{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&faculty.ID, &faculty.Name, &faculty.Color)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFacultyNotFound
		}
		logger.Error().Err(err).Int64("facultyID", id).Msg("Error scanning faculty row")
		return nil, fmt.Errorf("error getting faculty by ID: %w", err)
	}

	return faculty, nil
}

// GetAll retrieves all faculties in id order
func (r *FacultyRepository) GetAll(ctx context.Context) ([]*models.Faculty, error) {
	return r.list(ctx, "get all faculties", nil)
}

// FilterByColor returns the faculties whose color matches exactly
func (r *FacultyRepository) FilterByColor(ctx context.Context, color string) ([]*models.Faculty, error) {
	return r.list(ctx, "filter faculties by color", squirrel.Eq{"color": color})
}

// FindByNameOrColor returns faculties whose name or color equals term, ignoring case
func (r *FacultyRepository) FindByNameOrColor(ctx context.Context, term string) ([]*models.Faculty, error) {
	return r.list(ctx, "search faculties", squirrel.Or{
		squirrel.Expr("LOWER(name) = LOWER(?)", term),
		squirrel.Expr("LOWER(color) = LOWER(?)", term),
	})
}

func (r *FacultyRepository) list(ctx context.Context, op string, pred squirrel.Sqlizer) ([]*models.Faculty, error) {
	query := r.sb.Select(facultyColumns...).From("faculties")
	if pred != nil {
		query = query.Where(pred)
	}

	sql, args, err := query.OrderBy("id ASC").ToSql()
	if err != nil {
		logger.Error().Err(err).Msgf("Error building %s SQL", op)
		return nil, fmt.Errorf("failed to build %s query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msgf("Error executing %s query", op)
		return nil, fmt.Errorf("error querying faculties: %w", err)
	}
	defer rows.Close()

	faculties := []*models.Faculty{}
	for rows.Next() {
		faculty := &models.Faculty{}
		if err := rows.Scan(&faculty.ID, &faculty.Name, &faculty.Color); err != nil {
			logger.Error().Err(err).Msg("Error scanning faculty row")
			return nil, fmt.Errorf("error scanning faculty row: %w", err)
		}
		faculties = append(faculties, faculty)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating faculty rows")
		return nil, fmt.Errorf("error iterating faculty rows: %w", err)
	}

	return faculties, nil
}

// Update replaces the name and color of an existing faculty
func (r *FacultyRepository) Update(ctx context.Context, faculty *models.Faculty) error {
	sql, args, err := r.sb.Update("faculties").
		Set("name", faculty.Name).
		Set("color", faculty.Color).
		Where(squirrel.Eq{"id": faculty.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update faculty SQL")
		return fmt.Errorf("failed to build update faculty query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("facultyID", faculty.ID).Msg("Error executing update faculty query")
		return fmt.Errorf("error updating faculty: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFacultyNotFound
	}

	return nil
}

// Delete removes a faculty. Deleting an unknown id is not an error.
func (r *FacultyRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("faculties").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete faculty SQL")
		return fmt.Errorf("failed to build delete faculty query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("facultyID", id).Msg("Error executing delete faculty query")
		return fmt.Errorf("error deleting faculty: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		logger.Debug().Int64("facultyID", id).Msg("Delete matched no faculty")
	}

	return nil
}

// Count returns the number of faculties
func (r *FacultyRepository) Count(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("faculties").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count faculties query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Msg("Error counting faculties")
		return 0, fmt.Errorf("error counting faculties: %w", err)
	}
	return count, nil
}
