package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsForeignKeyViolation(t *testing.T) {
	err := &pgconn.PgError{Code: "23503", ConstraintName: "students_faculty_id_fkey"}

	assert.True(t, IsForeignKeyViolation(err, ""))
	assert.True(t, IsForeignKeyViolation(err, "students_faculty_id_fkey"))
	assert.False(t, IsForeignKeyViolation(err, "avatars_student_id_fkey"))
	assert.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}, ""))
	assert.False(t, IsForeignKeyViolation(errors.New("boom"), ""))
	assert.True(t, IsForeignKeyViolation(fmt.Errorf("insert: %w", err), ""))
}
