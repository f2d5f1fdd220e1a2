package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yigit/school/internal/app/models"
	"github.com/yigit/school/internal/pkg/apperrors"
	"github.com/yigit/school/internal/pkg/logger"
	"github.com/yigit/school/internal/pkg/validation"
)

// FacultyService defines the interface for faculty-related operations
type FacultyService interface {
	CreateFaculty(ctx context.Context, faculty *models.Faculty) (*models.Faculty, error)
	GetFacultyByID(ctx context.Context, id int64) (*models.Faculty, error)
	GetAllFaculties(ctx context.Context) ([]*models.Faculty, error)
	UpdateFaculty(ctx context.Context, faculty *models.Faculty) (*models.Faculty, error)
	DeleteFaculty(ctx context.Context, id int64) error
	FilterByColor(ctx context.Context, color string) ([]*models.Faculty, error)
	FindByNameOrColor(ctx context.Context, term string) ([]*models.Faculty, error)
	GetStudentsOfFaculty(ctx context.Context, id int64) ([]*models.Student, error)
	LongestFacultyName(ctx context.Context) (string, error)
}

// facultyServiceImpl implements the FacultyService interface
type facultyServiceImpl struct {
	facultyRepo FacultyRepository
	studentRepo StudentRepository
}

// NewFacultyService creates a new faculty service instance
func NewFacultyService(facultyRepo FacultyRepository, studentRepo StudentRepository) FacultyService {
	return &facultyServiceImpl{
		facultyRepo: facultyRepo,
		studentRepo: studentRepo,
	}
}

// validateFaculty validates faculty data before database operations
func (s *facultyServiceImpl) validateFaculty(faculty *models.Faculty) error {
	if faculty == nil {
		return fmt.Errorf("%w: faculty is nil", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(faculty.Name) == "" || !validation.IsValidName(faculty.Name) {
		return fmt.Errorf("%w: name must be between %d and %d characters",
			apperrors.ErrValidationFailed, validation.NameMinLength, validation.NameMaxLength)
	}
	if strings.TrimSpace(faculty.Color) == "" || !validation.IsValidColor(faculty.Color) {
		return fmt.Errorf("%w: color must be between 1 and %d characters",
			apperrors.ErrValidationFailed, validation.ColorMaxLength)
	}
	return nil
}

// CreateFaculty creates a new faculty and returns it with its assigned id
func (s *facultyServiceImpl) CreateFaculty(ctx context.Context, faculty *models.Faculty) (*models.Faculty, error) {
	if err := s.validateFaculty(faculty); err != nil {
		return nil, err
	}

	id, err := s.facultyRepo.Create(ctx, faculty)
	if err != nil {
		return nil, fmt.Errorf("error creating faculty: %w", err)
	}

	created := *faculty
	created.ID = id
	logger.Info().Int64("facultyID", id).Str("name", created.Name).Msg("Faculty created")
	return &created, nil
}

// GetFacultyByID retrieves a faculty by ID
func (s *facultyServiceImpl) GetFacultyByID(ctx context.Context, id int64) (*models.Faculty, error) {
	faculty, err := s.facultyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrFacultyNotFound) {
			return nil, apperrors.ErrFacultyNotFound
		}
		return nil, fmt.Errorf("error retrieving faculty: %w", err)
	}
	return faculty, nil
}

// GetAllFaculties retrieves all faculties
func (s *facultyServiceImpl) GetAllFaculties(ctx context.Context) ([]*models.Faculty, error) {
	faculties, err := s.facultyRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving faculties: %w", err)
	}
	return faculties, nil
}

// UpdateFaculty replaces the faculty with the same id. A missing id is ErrFacultyNotFound.
func (s *facultyServiceImpl) UpdateFaculty(ctx context.Context, faculty *models.Faculty) (*models.Faculty, error) {
	if err := s.validateFaculty(faculty); err != nil {
		return nil, err
	}

	if err := s.facultyRepo.Update(ctx, faculty); err != nil {
		if errors.Is(err, apperrors.ErrFacultyNotFound) {
			return nil, apperrors.ErrFacultyNotFound
		}
		return nil, fmt.Errorf("error updating faculty: %w", err)
	}
	return faculty, nil
}

// DeleteFaculty deletes a faculty. Students of the faculty keep existing without one.
func (s *facultyServiceImpl) DeleteFaculty(ctx context.Context, id int64) error {
	if err := s.facultyRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting faculty: %w", err)
	}
	return nil
}

// FilterByColor returns faculties whose color matches exactly
func (s *facultyServiceImpl) FilterByColor(ctx context.Context, color string) ([]*models.Faculty, error) {
	faculties, err := s.facultyRepo.FilterByColor(ctx, color)
	if err != nil {
		return nil, fmt.Errorf("error filtering faculties: %w", err)
	}
	return faculties, nil
}

// FindByNameOrColor returns faculties whose name or color equals term, ignoring case
func (s *facultyServiceImpl) FindByNameOrColor(ctx context.Context, term string) ([]*models.Faculty, error) {
	faculties, err := s.facultyRepo.FindByNameOrColor(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("error searching faculties: %w", err)
	}
	return faculties, nil
}

// GetStudentsOfFaculty lists the students that belong to a faculty
func (s *facultyServiceImpl) GetStudentsOfFaculty(ctx context.Context, id int64) ([]*models.Student, error) {
	if _, err := s.GetFacultyByID(ctx, id); err != nil {
		return nil, err
	}

	students, err := s.studentRepo.ListByFaculty(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students of faculty: %w", err)
	}
	return students, nil
}

// LongestFacultyName returns the faculty name with the most characters. The first one
// in id order wins a tie; "" is returned when there are no faculties.
func (s *facultyServiceImpl) LongestFacultyName(ctx context.Context) (string, error) {
	faculties, err := s.GetAllFaculties(ctx)
	if err != nil {
		return "", err
	}

	longest, longestLen := "", 0
	for _, f := range faculties {
		if n := utf8.RuneCountInString(f.Name); n > longestLen {
			longest, longestLen = f.Name, n
		}
	}
	return longest, nil
}
