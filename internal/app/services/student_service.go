package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/yigit/school/internal/app/models"
	"github.com/yigit/school/internal/pkg/apperrors"
	"github.com/yigit/school/internal/pkg/logger"
	"github.com/yigit/school/internal/pkg/validation"
)

// StudentService defines the interface for student-related operations
type StudentService interface {
	CreateStudent(ctx context.Context, student *models.Student) (*models.Student, error)
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	GetAllStudents(ctx context.Context) ([]*models.Student, error)
	UpdateStudent(ctx context.Context, student *models.Student) (*models.Student, error)
	DeleteStudent(ctx context.Context, id int64) error
	FilterByAge(ctx context.Context, age int) ([]*models.Student, error)
	FilterByAgeRange(ctx context.Context, minAge, maxAge int) ([]*models.Student, error)
	GetFacultyOfStudent(ctx context.Context, id int64) (*models.Faculty, error)
	CountStudents(ctx context.Context) (int64, error)
	AverageAge(ctx context.Context) (float64, error)
	LastFive(ctx context.Context) ([]*models.Student, error)
	NamesStartingWithA(ctx context.Context) ([]string, error)
	PrintNamesConcurrently(ctx context.Context) error
	PrintNamesSequentially(ctx context.Context) error
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	studentRepo StudentRepository
	facultyRepo FacultyRepository
	printer     *NamePrinter
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo StudentRepository, facultyRepo FacultyRepository, printer *NamePrinter) StudentService {
	return &studentServiceImpl{
		studentRepo: studentRepo,
		facultyRepo: facultyRepo,
		printer:     printer,
	}
}

// validateStudent validates student data before database operations
func (s *studentServiceImpl) validateStudent(student *models.Student) error {
	if student == nil {
		return fmt.Errorf("%w: student is nil", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(student.Name) == "" || !validation.IsValidName(student.Name) {
		return fmt.Errorf("%w: name must be between %d and %d characters",
			apperrors.ErrValidationFailed, validation.NameMinLength, validation.NameMaxLength)
	}
	if !validation.IsValidAge(student.Age) {
		return fmt.Errorf("%w: age must be between %d and %d",
			apperrors.ErrValidationFailed, validation.AgeMin, validation.AgeMax)
	}
	if student.FacultyID != nil && *student.FacultyID <= 0 {
		return apperrors.ErrUnknownFaculty
	}
	return nil
}

// CreateStudent creates a new student and returns it with its assigned id
func (s *studentServiceImpl) CreateStudent(ctx context.Context, student *models.Student) (*models.Student, error) {
	if err := s.validateStudent(student); err != nil {
		return nil, err
	}

	id, err := s.studentRepo.Create(ctx, student)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnknownFaculty) {
			return nil, apperrors.ErrUnknownFaculty
		}
		return nil, fmt.Errorf("error creating student: %w", err)
	}

	created := *student
	created.ID = id
	logger.Info().Int64("studentID", id).Msg("Student created")
	return &created, nil
}

// GetStudentByID retrieves a student by ID
func (s *studentServiceImpl) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

// GetAllStudents retrieves all students
func (s *studentServiceImpl) GetAllStudents(ctx context.Context) ([]*models.Student, error) {
	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}
	return students, nil
}

// UpdateStudent replaces the student with the same id. A missing id is ErrStudentNotFound.
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, student *models.Student) (*models.Student, error) {
	if err := s.validateStudent(student); err != nil {
		return nil, err
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		if apperrors.Is(err, apperrors.ErrStudentNotFound, apperrors.ErrUnknownFaculty) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating student: %w", err)
	}
	return student, nil
}

// DeleteStudent deletes a student; an unknown id is not an error
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id int64) error {
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	return nil
}

// FilterByAge returns students of exactly the given age
func (s *studentServiceImpl) FilterByAge(ctx context.Context, age int) ([]*models.Student, error) {
	if age < validation.AgeMin {
		return nil, fmt.Errorf("%w: age must not be negative", apperrors.ErrValidationFailed)
	}

	students, err := s.studentRepo.FilterByAge(ctx, age)
	if err != nil {
		return nil, fmt.Errorf("error filtering students by age: %w", err)
	}
	return students, nil
}

// FilterByAgeRange returns students aged between minAge and maxAge inclusive
func (s *studentServiceImpl) FilterByAgeRange(ctx context.Context, minAge, maxAge int) ([]*models.Student, error) {
	if minAge > maxAge {
		return nil, apperrors.ErrInvalidAgeRange
	}

	students, err := s.studentRepo.FilterByAgeRange(ctx, minAge, maxAge)
	if err != nil {
		return nil, fmt.Errorf("error filtering students by age range: %w", err)
	}
	return students, nil
}

// GetFacultyOfStudent returns the faculty of a student, or nil when the student has none
func (s *studentServiceImpl) GetFacultyOfStudent(ctx context.Context, id int64) (*models.Faculty, error) {
	student, err := s.GetStudentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student.FacultyID == nil {
		return nil, nil
	}

	faculty, err := s.facultyRepo.GetByID(ctx, *student.FacultyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrFacultyNotFound) {
			// Deleted between the two reads; the foreign key nulls the reference.
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving faculty of student: %w", err)
	}
	return faculty, nil
}

// CountStudents returns the number of students
func (s *studentServiceImpl) CountStudents(ctx context.Context) (int64, error) {
	count, err := s.studentRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("error counting students: %w", err)
	}
	return count, nil
}

// AverageAge returns the mean student age, 0 when there are no students
func (s *studentServiceImpl) AverageAge(ctx context.Context) (float64, error) {
	count, err := s.CountStudents(ctx)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, nil
	}

	avg, err := s.studentRepo.AverageAge(ctx)
	if err != nil {
		return 0, fmt.Errorf("error computing average age: %w", err)
	}
	return avg, nil
}

// LastFive returns up to five of the most recently created students, newest first
func (s *studentServiceImpl) LastFive(ctx context.Context) ([]*models.Student, error) {
	students, err := s.studentRepo.LastFive(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving last students: %w", err)
	}
	return students, nil
}

// NamesStartingWithA returns upper-cased names that begin with "A" in either case,
// sorted ascending
func (s *studentServiceImpl) NamesStartingWithA(ctx context.Context) ([]string, error) {
	names, err := s.studentRepo.ListNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student names: %w", err)
	}

	// A Caser is stateful and must not be shared between requests.
	caser := cases.Upper(language.Und)
	result := []string{}
	for _, name := range names {
		upper := caser.String(name)
		if strings.HasPrefix(upper, "A") {
			result = append(result, upper)
		}
	}
	sort.Strings(result)
	return result, nil
}

// PrintNamesConcurrently loads all names and prints them from a worker pool in the
// background. Only loading errors are reported.
func (s *studentServiceImpl) PrintNamesConcurrently(ctx context.Context) error {
	names, err := s.studentRepo.ListNames(ctx)
	if err != nil {
		return fmt.Errorf("error retrieving student names: %w", err)
	}
	s.printer.PrintConcurrently(names)
	return nil
}

// PrintNamesSequentially loads all names and prints them in order from one
// background worker
func (s *studentServiceImpl) PrintNamesSequentially(ctx context.Context) error {
	names, err := s.studentRepo.ListNames(ctx)
	if err != nil {
		return fmt.Errorf("error retrieving student names: %w", err)
	}
	s.printer.PrintSequentially(names)
	return nil
}
