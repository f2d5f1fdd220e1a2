package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/school/internal/app/models"
	"github.com/yigit/school/internal/pkg/apperrors"
)

func newFacultyFixture(t *testing.T, faculties ...models.Faculty) (FacultyService, *fakeFacultyRepo, *fakeStudentRepo) {
	t.Helper()
	facultyRepo := newFakeFacultyRepo()
	studentRepo := newFakeStudentRepo(facultyRepo)
	for i := range faculties {
		_, err := facultyRepo.Create(context.Background(), &faculties[i])
		require.NoError(t, err)
	}
	return NewFacultyService(facultyRepo, studentRepo), facultyRepo, studentRepo
}

func TestCreateFacultyAssignsID(t *testing.T) {
	svc, _, _ := newFacultyFixture(t)
	ctx := context.Background()

	created, err := svc.CreateFaculty(ctx, &models.Faculty{Name: "Gryffindor", Color: "Red"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := svc.GetFacultyByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCreateFacultyRejectsInvalidInput(t *testing.T) {
	svc, _, _ := newFacultyFixture(t)

	tests := []struct {
		name    string
		faculty *models.Faculty
	}{
		{"nil", nil},
		{"blank name", &models.Faculty{Name: "  ", Color: "Red"}},
		{"missing color", &models.Faculty{Name: "Gryffindor"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateFaculty(context.Background(), tt.faculty)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}
}

func TestGetFacultyByIDNotFound(t *testing.T) {
	svc, _, _ := newFacultyFixture(t)

	_, err := svc.GetFacultyByID(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrFacultyNotFound)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestUpdateFaculty(t *testing.T) {
	svc, _, _ := newFacultyFixture(t, models.Faculty{Name: "Gryffindor", Color: "Red"})
	ctx := context.Background()

	updated, err := svc.UpdateFaculty(ctx, &models.Faculty{ID: 1, Name: "Gryffindor", Color: "Scarlet"})
	require.NoError(t, err)
	assert.Equal(t, "Scarlet", updated.Color)

	_, err = svc.UpdateFaculty(ctx, &models.Faculty{ID: 99, Name: "Nowhere", Color: "Grey"})
	assert.ErrorIs(t, err, apperrors.ErrFacultyNotFound)
}

func TestDeleteFacultyIgnoresUnknownID(t *testing.T) {
	svc, _, _ := newFacultyFixture(t, models.Faculty{Name: "Gryffindor", Color: "Red"})
	ctx := context.Background()

	require.NoError(t, svc.DeleteFaculty(ctx, 1))
	require.NoError(t, svc.DeleteFaculty(ctx, 1))

	_, err := svc.GetFacultyByID(ctx, 1)
	assert.ErrorIs(t, err, apperrors.ErrFacultyNotFound)
}

func TestFilterByColorIsExact(t *testing.T) {
	svc, _, _ := newFacultyFixture(t,
		models.Faculty{Name: "Gryffindor", Color: "Red"},
		models.Faculty{Name: "Slytherin", Color: "Green"},
	)
	ctx := context.Background()

	found, err := svc.FilterByColor(ctx, "Red")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Gryffindor", found[0].Name)

	found, err = svc.FilterByColor(ctx, "red")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestFindByNameOrColorIgnoresCase(t *testing.T) {
	svc, _, _ := newFacultyFixture(t,
		models.Faculty{Name: "Gryffindor", Color: "Red"},
		models.Faculty{Name: "Slytherin", Color: "Green"},
	)
	ctx := context.Background()

	byColor, err := svc.FindByNameOrColor(ctx, "red")
	require.NoError(t, err)
	require.Len(t, byColor, 1)
	assert.Equal(t, "Gryffindor", byColor[0].Name)

	byName, err := svc.FindByNameOrColor(ctx, "SLYTHERIN")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Green", byName[0].Color)

	none, err := svc.FindByNameOrColor(ctx, "Blue")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetStudentsOfFaculty(t *testing.T) {
	svc, _, students := newFacultyFixture(t,
		models.Faculty{Name: "Gryffindor", Color: "Red"},
		models.Faculty{Name: "Slytherin", Color: "Green"},
	)
	ctx := context.Background()

	_, err := students.Create(ctx, &models.Student{Name: "Harry", Age: 17, FacultyID: int64Ptr(1)})
	require.NoError(t, err)
	_, err = students.Create(ctx, &models.Student{Name: "Draco", Age: 17, FacultyID: int64Ptr(2)})
	require.NoError(t, err)
	_, err = students.Create(ctx, &models.Student{Name: "Luna", Age: 16})
	require.NoError(t, err)

	members, err := svc.GetStudentsOfFaculty(ctx, 1)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "Harry", members[0].Name)

	_, err = svc.GetStudentsOfFaculty(ctx, 99)
	assert.ErrorIs(t, err, apperrors.ErrFacultyNotFound)
}

func TestLongestFacultyName(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		svc, _, _ := newFacultyFixture(t)
		name, err := svc.LongestFacultyName(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "", name)
	})

	t.Run("first of equal length wins", func(t *testing.T) {
		svc, _, _ := newFacultyFixture(t,
			models.Faculty{Name: "Ravenclaw", Color: "Blue"},
			models.Faculty{Name: "Hufflepuff", Color: "Yellow"},
			models.Faculty{Name: "Gryffindor", Color: "Red"},
		)
		name, err := svc.LongestFacultyName(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Hufflepuff", name)
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		svc, _, _ := newFacultyFixture(t,
			models.Faculty{Name: "Ölçüm", Color: "Blue"},
			models.Faculty{Name: "Abcdef", Color: "Red"},
		)
		name, err := svc.LongestFacultyName(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Abcdef", name)
	})
}
