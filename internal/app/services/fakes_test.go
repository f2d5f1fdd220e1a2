package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/school/internal/app/models"
	"github.com/yigit/school/internal/db"
	"github.com/yigit/school/internal/pkg/apperrors"
)

type fakeFacultyRepo struct {
	mu        sync.Mutex
	nextID    int64
	faculties map[int64]models.Faculty
}

func newFakeFacultyRepo() *fakeFacultyRepo {
	return &fakeFacultyRepo{faculties: map[int64]models.Faculty{}}
}

func (r *fakeFacultyRepo) exists(id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.faculties[id]
	return ok
}

func (r *fakeFacultyRepo) Create(_ context.Context, f *models.Faculty) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	stored := *f
	stored.ID = r.nextID
	r.faculties[stored.ID] = stored
	return stored.ID, nil
}

func (r *fakeFacultyRepo) GetByID(_ context.Context, id int64) (*models.Faculty, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.faculties[id]
	if !ok {
		return nil, apperrors.ErrFacultyNotFound
	}
	return &f, nil
}

func (r *fakeFacultyRepo) list(keep func(models.Faculty) bool) []*models.Faculty {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []*models.Faculty{}
	for _, f := range r.faculties {
		if keep(f) {
			f := f
			result = append(result, &f)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (r *fakeFacultyRepo) GetAll(context.Context) ([]*models.Faculty, error) {
	return r.list(func(models.Faculty) bool { return true }), nil
}

func (r *fakeFacultyRepo) Update(_ context.Context, f *models.Faculty) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.faculties[f.ID]; !ok {
		return apperrors.ErrFacultyNotFound
	}
	r.faculties[f.ID] = *f
	return nil
}

func (r *fakeFacultyRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.faculties, id)
	return nil
}

func (r *fakeFacultyRepo) FilterByColor(_ context.Context, color string) ([]*models.Faculty, error) {
	return r.list(func(f models.Faculty) bool { return f.Color == color }), nil
}

func (r *fakeFacultyRepo) FindByNameOrColor(_ context.Context, term string) ([]*models.Faculty, error) {
	return r.list(func(f models.Faculty) bool {
		return strings.EqualFold(f.Name, term) || strings.EqualFold(f.Color, term)
	}), nil
}

type fakeStudentRepo struct {
	mu        sync.Mutex
	nextID    int64
	students  map[int64]models.Student
	faculties *fakeFacultyRepo
	err       error
}

func newFakeStudentRepo(faculties *fakeFacultyRepo) *fakeStudentRepo {
	return &fakeStudentRepo{students: map[int64]models.Student{}, faculties: faculties}
}

func (r *fakeStudentRepo) checkFaculty(s *models.Student) error {
	if s.FacultyID != nil && (r.faculties == nil || !r.faculties.exists(*s.FacultyID)) {
		return apperrors.ErrUnknownFaculty
	}
	return nil
}

func (r *fakeStudentRepo) Create(_ context.Context, s *models.Student) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	if err := r.checkFaculty(s); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	stored := *s
	stored.ID = r.nextID
	r.students[stored.ID] = stored
	return stored.ID, nil
}

func (r *fakeStudentRepo) GetByID(_ context.Context, id int64) (*models.Student, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return &s, nil
}

func (r *fakeStudentRepo) list(keep func(models.Student) bool) ([]*models.Student, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []*models.Student{}
	for _, s := range r.students {
		if keep(s) {
			s := s
			result = append(result, &s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *fakeStudentRepo) GetAll(context.Context) ([]*models.Student, error) {
	return r.list(func(models.Student) bool { return true })
}

func (r *fakeStudentRepo) Update(_ context.Context, s *models.Student) error {
	if err := r.checkFaculty(s); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.students[s.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	r.students[s.ID] = *s
	return nil
}

func (r *fakeStudentRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.students, id)
	return nil
}

func (r *fakeStudentRepo) FilterByAge(_ context.Context, age int) ([]*models.Student, error) {
	return r.list(func(s models.Student) bool { return s.Age == age })
}

func (r *fakeStudentRepo) FilterByAgeRange(_ context.Context, minAge, maxAge int) ([]*models.Student, error) {
	return r.list(func(s models.Student) bool { return s.Age >= minAge && s.Age <= maxAge })
}

func (r *fakeStudentRepo) ListByFaculty(_ context.Context, facultyID int64) ([]*models.Student, error) {
	return r.list(func(s models.Student) bool { return s.FacultyID != nil && *s.FacultyID == facultyID })
}

func (r *fakeStudentRepo) LastFive(ctx context.Context) ([]*models.Student, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return all[:min(5, len(all))], nil
}

func (r *fakeStudentRepo) Count(context.Context) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.students)), nil
}

func (r *fakeStudentRepo) AverageAge(ctx context.Context) (float64, error) {
	all, err := r.GetAll(ctx)
	if err != nil || len(all) == 0 {
		return 0, err
	}
	total := 0
	for _, s := range all {
		total += s.Age
	}
	return float64(total) / float64(len(all)), nil
}

func (r *fakeStudentRepo) ListNames(ctx context.Context) ([]string, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(all))
	for _, s := range all {
		names = append(names, s.Name)
	}
	return names, nil
}

type fakeAvatarRepo struct {
	mu        sync.Mutex
	nextID    int64
	avatars   map[int64]models.Avatar
	upsertErr error
}

func newFakeAvatarRepo() *fakeAvatarRepo {
	return &fakeAvatarRepo{avatars: map[int64]models.Avatar{}}
}

func (r *fakeAvatarRepo) GetByStudentID(_ context.Context, studentID int64) (*models.Avatar, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.avatars[studentID]
	if !ok {
		return nil, fmt.Errorf("%w: no avatar for student %d", apperrors.ErrResourceNotFound, studentID)
	}
	return &a, nil
}

func (r *fakeAvatarRepo) UpsertTx(_ context.Context, _ pgx.Tx, avatar *models.Avatar) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.avatars[avatar.StudentID]; ok {
		avatar.ID = existing.ID
	} else {
		r.nextID++
		avatar.ID = r.nextID
	}
	stored := *avatar
	stored.Data = bytes.Clone(avatar.Data)
	r.avatars[avatar.StudentID] = stored
	return nil
}

func (r *fakeAvatarRepo) ListAll(context.Context) ([]*models.Avatar, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []*models.Avatar{}
	for _, a := range r.avatars {
		a := a
		result = append(result, &a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *fakeAvatarRepo) ListPage(ctx context.Context, page, size int) ([]*models.Avatar, error) {
	all, _ := r.ListAll(ctx)
	start := min(page*size, len(all))
	end := min(start+size, len(all))
	return all[start:end], nil
}

// fakeTransactor runs fn without a database; a failed fn or commit is counted as a rollback
type fakeTransactor struct {
	commits   int
	rollbacks int
	commitErr error
}

func (t *fakeTransactor) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	if err := fn(ctx, nil); err != nil {
		t.rollbacks++
		return err
	}
	if t.commitErr != nil {
		t.rollbacks++
		return fmt.Errorf("failed to commit transaction: %w", t.commitErr)
	}
	t.commits++
	return nil
}

// syncBuffer is a bytes.Buffer safe for the background print workers
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Split(strings.TrimSpace(b.buf.String()), "\n")
}

func (b *syncBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Len()
}

var errDatabaseDown = errors.New("database down")

func int64Ptr(v int64) *int64 { return &v }
