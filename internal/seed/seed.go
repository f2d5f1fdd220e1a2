package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/school/internal/app/models"
)

// FacultyStore is the persistence the seeder needs
type FacultyStore interface {
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, faculty *models.Faculty) (int64, error)
}

// DefaultFaculties are created on first start when the faculties table is empty
var DefaultFaculties = []models.Faculty{
	{Name: "Gryffindor", Color: "Red"},
	{Name: "Slytherin", Color: "Green"},
	{Name: "Ravenclaw", Color: "Blue"},
	{Name: "Hufflepuff", Color: "Yellow"},
}

// CreateDefaultData creates the default faculties if no faculty exists yet.
// A failure on one faculty does not stop the others; all errors are returned joined.
func CreateDefaultData(ctx context.Context, faculties FacultyStore, lgr zerolog.Logger) error {
	count, err := faculties.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count faculties: %w", err)
	}
	if count > 0 {
		lgr.Info().Int64("faculties", count).Msg("Faculties already present, skipping default data")
		return nil
	}

	lgr.Info().Msg("Creating default faculties...")
	var finalErr error
	for _, f := range DefaultFaculties {
		faculty := f
		id, err := faculties.Create(ctx, &faculty)
		if err != nil {
			lgr.Error().Err(err).Str("faculty", faculty.Name).Msg("Error creating default faculty")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		lgr.Debug().Int64("facultyID", id).Str("faculty", faculty.Name).Msg("Default faculty created")
	}

	if finalErr == nil {
		lgr.Info().Int("faculties", len(DefaultFaculties)).Msg("Default faculties created")
	}
	return finalErr
}
