package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/school/internal/app/models"
	"github.com/yigit/school/internal/app/repositories"
	"github.com/yigit/school/internal/db"
)

// StudentRepository is the persistence the student and avatar services need
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetAll(ctx context.Context) ([]*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
	FilterByAge(ctx context.Context, age int) ([]*models.Student, error)
	FilterByAgeRange(ctx context.Context, minAge, maxAge int) ([]*models.Student, error)
	ListByFaculty(ctx context.Context, facultyID int64) ([]*models.Student, error)
	LastFive(ctx context.Context) ([]*models.Student, error)
	Count(ctx context.Context) (int64, error)
	AverageAge(ctx context.Context) (float64, error)
	ListNames(ctx context.Context) ([]string, error)
}

// FacultyRepository is the persistence the faculty and student services need
type FacultyRepository interface {
	Create(ctx context.Context, faculty *models.Faculty) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Faculty, error)
	GetAll(ctx context.Context) ([]*models.Faculty, error)
	Update(ctx context.Context, faculty *models.Faculty) error
	Delete(ctx context.Context, id int64) error
	FilterByColor(ctx context.Context, color string) ([]*models.Faculty, error)
	FindByNameOrColor(ctx context.Context, term string) ([]*models.Faculty, error)
}

// AvatarRepository is the persistence the avatar service needs
type AvatarRepository interface {
	GetByStudentID(ctx context.Context, studentID int64) (*models.Avatar, error)
	UpsertTx(ctx context.Context, tx pgx.Tx, avatar *models.Avatar) error
	ListAll(ctx context.Context) ([]*models.Avatar, error)
	ListPage(ctx context.Context, page, size int) ([]*models.Avatar, error)
}

// Transactor runs a function inside a database transaction
type Transactor interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

var (
	_ StudentRepository = (*repositories.StudentRepository)(nil)
	_ FacultyRepository = (*repositories.FacultyRepository)(nil)
	_ AvatarRepository  = (*repositories.AvatarRepository)(nil)
	_ Transactor        = (*db.PostgresDB)(nil)
)
