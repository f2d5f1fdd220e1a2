package repositories

import (
	"context"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/school/internal/app/models"
	"github.com/yigit/school/internal/pkg/apperrors"
)

func TestFacultyRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewFacultyRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO faculties (name,color) VALUES ($1,$2) RETURNING id")).
		WithArgs("Gryffindor", "Red").
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow(int64(1)))

	id, err := repo.Create(context.Background(), &models.Faculty{Name: "Gryffindor", Color: "Red"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestFacultyRepository_FindByNameOrColor(t *testing.T) {
	mock := newMock(t)
	repo := NewFacultyRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, name, color FROM faculties WHERE (LOWER(name) = LOWER($1) OR LOWER(color) = LOWER($2)) ORDER BY id ASC")).
		WithArgs("Test", "Test").
		WillReturnRows(mock.NewRows([]string{"id", "name", "color"}).
			AddRow(int64(1), "Test", "Blue").
			AddRow(int64(2), "Gryffindor", "Test"))

	faculties, err := repo.FindByNameOrColor(context.Background(), "Test")
	require.NoError(t, err)
	require.Len(t, faculties, 2)
	assert.Equal(t, "Blue", faculties[0].Color)
	assert.Equal(t, "Gryffindor", faculties[1].Name)
}

func TestFacultyRepository_FilterByColor(t *testing.T) {
	mock := newMock(t)
	repo := NewFacultyRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("FROM faculties WHERE color = $1 ORDER BY id ASC")).
		WithArgs("Green").
		WillReturnRows(mock.NewRows([]string{"id", "name", "color"}).AddRow(int64(2), "Slytherin", "Green"))

	faculties, err := repo.FilterByColor(context.Background(), "Green")
	require.NoError(t, err)
	require.Len(t, faculties, 1)
	assert.Equal(t, "Slytherin", faculties[0].Name)
}

func TestFacultyRepository_Update(t *testing.T) {
	mock := newMock(t)
	repo := NewFacultyRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE faculties SET name = $1, color = $2 WHERE id = $3")).
		WithArgs("Ravenclaw", "Blue", int64(3)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE faculties").
		WithArgs("Nobody", "Grey", int64(9)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	ctx := context.Background()
	assert.NoError(t, repo.Update(ctx, &models.Faculty{ID: 3, Name: "Ravenclaw", Color: "Blue"}))
	assert.ErrorIs(t, repo.Update(ctx, &models.Faculty{ID: 9, Name: "Nobody", Color: "Grey"}), apperrors.ErrFacultyNotFound)
}

func TestFacultyRepository_DeleteMissingIsNoop(t *testing.T) {
	mock := newMock(t)
	repo := NewFacultyRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM faculties WHERE id = $1")).
		WithArgs(int64(12)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.NoError(t, repo.Delete(context.Background(), 12))
}
