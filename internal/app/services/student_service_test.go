package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/school/internal/app/models"
	"github.com/yigit/school/internal/pkg/apperrors"
)

type studentFixture struct {
	svc       StudentService
	students  *fakeStudentRepo
	faculties *fakeFacultyRepo
	output    *syncBuffer
}

func newStudentFixture(t *testing.T) *studentFixture {
	t.Helper()
	faculties := newFakeFacultyRepo()
	students := newFakeStudentRepo(faculties)
	output := &syncBuffer{}
	printer := NewNamePrinter(zerolog.New(output), 2)
	return &studentFixture{
		svc:       NewStudentService(students, faculties, printer),
		students:  students,
		faculties: faculties,
		output:    output,
	}
}

func (f *studentFixture) addStudents(t *testing.T, students ...models.Student) {
	t.Helper()
	for i := range students {
		_, err := f.svc.CreateStudent(context.Background(), &students[i])
		require.NoError(t, err)
	}
}

func TestCreateAndGetStudent(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateStudent(ctx, &models.Student{Name: "Hermione", Age: 17})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := f.svc.GetStudentByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Nil(t, got.FacultyID)
}

func TestCreateStudentValidation(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateStudent(ctx, &models.Student{Name: "Neville", Age: -1})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = f.svc.CreateStudent(ctx, &models.Student{Name: "", Age: 11})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = f.svc.CreateStudent(ctx, &models.Student{Name: "Neville", Age: 11, FacultyID: int64Ptr(7)})
	assert.ErrorIs(t, err, apperrors.ErrUnknownFaculty)

	_, err = f.svc.CreateStudent(ctx, &models.Student{Name: "Neville", Age: 11, FacultyID: int64Ptr(0)})
	assert.ErrorIs(t, err, apperrors.ErrUnknownFaculty)
}

func TestGetStudentNotFound(t *testing.T) {
	f := newStudentFixture(t)

	_, err := f.svc.GetStudentByID(context.Background(), 5)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestUpdateStudent(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()
	f.addStudents(t, models.Student{Name: "Ron", Age: 17})

	updated, err := f.svc.UpdateStudent(ctx, &models.Student{ID: 1, Name: "Ron Weasley", Age: 18})
	require.NoError(t, err)
	assert.Equal(t, "Ron Weasley", updated.Name)

	_, err = f.svc.UpdateStudent(ctx, &models.Student{ID: 50, Name: "Nobody", Age: 18})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestDeleteStudentIgnoresUnknownID(t *testing.T) {
	f := newStudentFixture(t)
	f.addStudents(t, models.Student{Name: "Ron", Age: 17})

	require.NoError(t, f.svc.DeleteStudent(context.Background(), 1))
	require.NoError(t, f.svc.DeleteStudent(context.Background(), 1))

	count, err := f.svc.CountStudents(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestFilterByAge(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()
	f.addStudents(t,
		models.Student{Name: "A", Age: 10},
		models.Student{Name: "B", Age: 20},
		models.Student{Name: "C", Age: 20},
	)

	found, err := f.svc.FilterByAge(ctx, 20)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	_, err = f.svc.FilterByAge(ctx, -3)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestFilterByAgeRangeIsInclusive(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()
	f.addStudents(t,
		models.Student{Name: "A", Age: 10},
		models.Student{Name: "B", Age: 15},
		models.Student{Name: "C", Age: 20},
		models.Student{Name: "D", Age: 21},
	)

	found, err := f.svc.FilterByAgeRange(ctx, 10, 20)
	require.NoError(t, err)
	var names []string
	for _, s := range found {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"A", "B", "C"}, names)

	_, err = f.svc.FilterByAgeRange(ctx, 30, 20)
	assert.ErrorIs(t, err, apperrors.ErrInvalidAgeRange)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestGetFacultyOfStudent(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()
	_, err := f.faculties.Create(ctx, &models.Faculty{Name: "Ravenclaw", Color: "Blue"})
	require.NoError(t, err)
	f.addStudents(t,
		models.Student{Name: "Luna", Age: 16, FacultyID: int64Ptr(1)},
		models.Student{Name: "Dobby", Age: 40},
	)

	faculty, err := f.svc.GetFacultyOfStudent(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, faculty)
	assert.Equal(t, "Ravenclaw", faculty.Name)

	faculty, err = f.svc.GetFacultyOfStudent(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, faculty)

	_, err = f.svc.GetFacultyOfStudent(ctx, 3)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestAverageAge(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()

	avg, err := f.svc.AverageAge(ctx)
	require.NoError(t, err)
	assert.Zero(t, avg)

	f.addStudents(t, models.Student{Name: "A", Age: 10}, models.Student{Name: "B", Age: 30})
	avg, err = f.svc.AverageAge(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, avg, 1e-9)
}

func TestAverageAgePropagatesErrors(t *testing.T) {
	f := newStudentFixture(t)
	f.students.err = errDatabaseDown

	_, err := f.svc.AverageAge(context.Background())
	assert.ErrorIs(t, err, errDatabaseDown)
}

func TestLastFiveNewestFirst(t *testing.T) {
	f := newStudentFixture(t)
	for _, name := range []string{"s1", "s2", "s3", "s4", "s5", "s6", "s7"} {
		f.addStudents(t, models.Student{Name: name, Age: 11})
	}

	last, err := f.svc.LastFive(context.Background())
	require.NoError(t, err)
	require.Len(t, last, 5)
	assert.Equal(t, int64(7), last[0].ID)
	assert.Equal(t, int64(3), last[4].ID)
}

func TestNamesStartingWithA(t *testing.T) {
	f := newStudentFixture(t)
	f.addStudents(t,
		models.Student{Name: "anna", Age: 11},
		models.Student{Name: "Bob", Age: 12},
		models.Student{Name: "alex", Age: 13},
		models.Student{Name: "Chris", Age: 14},
	)

	names, err := f.svc.NamesStartingWithA(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ALEX", "ANNA"}, names)
}

func TestNamesStartingWithAEmpty(t *testing.T) {
	f := newStudentFixture(t)

	names, err := f.svc.NamesStartingWithA(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)
}

func TestPrintNamesSequentially(t *testing.T) {
	f := newStudentFixture(t)
	f.addStudents(t,
		models.Student{Name: "Harry", Age: 17},
		models.Student{Name: "Ron", Age: 17},
		models.Student{Name: "Hermione", Age: 17},
	)

	require.NoError(t, f.svc.PrintNamesSequentially(context.Background()))

	require.Eventually(t, func() bool { return len(f.output.Lines()) == 3 }, time.Second, 10*time.Millisecond)
	lines := f.output.Lines()
	assert.Contains(t, lines[0], `"name":"Harry"`)
	assert.Contains(t, lines[1], `"name":"Ron"`)
	assert.Contains(t, lines[2], `"name":"Hermione"`)
}

func TestPrintNamesConcurrently(t *testing.T) {
	f := newStudentFixture(t)
	f.addStudents(t,
		models.Student{Name: "Harry", Age: 17},
		models.Student{Name: "Ron", Age: 17},
		models.Student{Name: "Hermione", Age: 17},
		models.Student{Name: "Ginny", Age: 16},
		models.Student{Name: "Neville", Age: 17},
	)

	require.NoError(t, f.svc.PrintNamesConcurrently(context.Background()))

	require.Eventually(t, func() bool { return len(f.output.Lines()) == 5 }, time.Second, 10*time.Millisecond)
	output := strings.Join(f.output.Lines(), "\n")
	for _, name := range []string{"Harry", "Ron", "Hermione", "Ginny", "Neville"} {
		assert.Contains(t, output, `"name":"`+name+`"`)
	}
}

func TestPrintNamesReportsLoadErrors(t *testing.T) {
	f := newStudentFixture(t)
	f.students.err = errDatabaseDown

	assert.ErrorIs(t, f.svc.PrintNamesConcurrently(context.Background()), errDatabaseDown)
	assert.ErrorIs(t, f.svc.PrintNamesSequentially(context.Background()), errDatabaseDown)
	assert.Zero(t, f.output.Len())
}
