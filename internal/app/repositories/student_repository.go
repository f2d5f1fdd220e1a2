package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/yigit/school/internal/app/models"
	"github.com/yigit/school/internal/pkg/apperrors"
	"github.com/yigit/school/internal/pkg/dberrors"
	"github.com/yigit/school/internal/pkg/logger"
)

const lastStudentsLimit = 5

var studentColumns = []string{"id", "name", "age", "faculty_id"}

// StudentRepository handles student database operations
type StudentRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db DBTX) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func facultyIDValue(id *int64) pgtype.Int8 {
	if id == nil {
		return pgtype.Int8{}
	}
	return pgtype.Int8{Int64: *id, Valid: true}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var (
		student   models.Student
		facultyID pgtype.Int8
	)
	if err := row.Scan(&student.ID, &student.Name, &student.Age, &facultyID); err != nil {
		return nil, err
	}
	if facultyID.Valid {
		id := facultyID.Int64
		student.FacultyID = &id
	}
	return &student, nil
}

// Create inserts a student and returns its generated id. A faculty reference that
// does not exist yields apperrors.ErrUnknownFaculty.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) (int64, error) {
	sql, args, err := r.sb.Insert("students").
		Columns("name", "age", "faculty_id").
		Values(student.Name, student.Age, facultyIDValue(student.FacultyID)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return 0, fmt.Errorf("failed to build create student query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsForeignKeyViolation(err, "") {
			return 0, apperrors.ErrUnknownFaculty
		}
		logger.Error().Err(err).Msg("Error executing create student query")
		return 0, fmt.Errorf("error creating student: %w", err)
	}

	return id, nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get student by ID SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}

	return student, nil
}

// GetAll retrieves all students in id order
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	return r.list(ctx, "get all students", r.sb.Select(studentColumns...).From("students").OrderBy("id ASC"))
}

// FilterByAge returns the students of exactly the given age
func (r *StudentRepository) FilterByAge(ctx context.Context, age int) ([]*models.Student, error) {
	return r.list(ctx, "filter students by age", r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"age": age}).
		OrderBy("id ASC"))
}

// FilterByAgeRange returns the students whose age lies in [minAge, maxAge]
func (r *StudentRepository) FilterByAgeRange(ctx context.Context, minAge, maxAge int) ([]*models.Student, error) {
	return r.list(ctx, "filter students by age range", r.sb.Select(studentColumns...).
		From("students").
		Where("age BETWEEN ? AND ?", minAge, maxAge).
		OrderBy("id ASC"))
}

// ListByFaculty returns the students that belong to a faculty
func (r *StudentRepository) ListByFaculty(ctx context.Context, facultyID int64) ([]*models.Student, error) {
	return r.list(ctx, "list students by faculty", r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"faculty_id": facultyID}).
		OrderBy("id ASC"))
}

// LastFive returns up to five students with the highest ids, newest first
func (r *StudentRepository) LastFive(ctx context.Context) ([]*models.Student, error) {
	return r.list(ctx, "last students", r.sb.Select(studentColumns...).
		From("students").
		OrderBy("id DESC").
		Limit(lastStudentsLimit))
}

func (r *StudentRepository) list(ctx context.Context, op string, query squirrel.SelectBuilder) ([]*models.Student, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msgf("Error building %s SQL", op)
		return nil, fmt.Errorf("failed to build %s query: %w", op, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msgf("Error executing %s query", op)
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning student row")
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating student rows")
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, nil
}

// Update replaces every mutable field of an existing student
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Update("students").
		Set("name", student.Name).
		Set("age", student.Age).
		Set("faculty_id", facultyIDValue(student.FacultyID)).
		Where(squirrel.Eq{"id": student.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update student SQL")
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err, "") {
			return apperrors.ErrUnknownFaculty
		}
		logger.Error().Err(err).Int64("studentID", student.ID).Msg("Error executing update student query")
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Delete removes a student. Deleting an unknown id is not an error.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete student SQL")
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error executing delete student query")
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		logger.Debug().Int64("studentID", id).Msg("Delete matched no student")
	}

	return nil
}

// Count returns the number of students
func (r *StudentRepository) Count(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("students").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count students query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Msg("Error counting students")
		return 0, fmt.Errorf("error counting students: %w", err)
	}
	return count, nil
}

// AverageAge returns the mean age of all students, 0 when there are none
func (r *StudentRepository) AverageAge(ctx context.Context) (float64, error) {
	sql, args, err := r.sb.Select("COALESCE(AVG(age), 0)::float8").From("students").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build average age query: %w", err)
	}

	var avg float64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&avg); err != nil {
		logger.Error().Err(err).Msg("Error computing average age")
		return 0, fmt.Errorf("error computing average age: %w", err)
	}
	return avg, nil
}

// ListNames returns every student name in id order
func (r *StudentRepository) ListNames(ctx context.Context) ([]string, error) {
	sql, args, err := r.sb.Select("name").From("students").OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list names query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list names query")
		return nil, fmt.Errorf("error querying student names: %w", err)
	}

	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		logger.Error().Err(err).Msg("Error collecting student names")
		return nil, fmt.Errorf("error collecting student names: %w", err)
	}
	return names, nil
}
