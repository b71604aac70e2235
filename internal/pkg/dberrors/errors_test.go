package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	pgDup := &pgconn.PgError{Code: "23505", ConstraintName: "enrollments_user_course_key"}
	pgFK := &pgconn.PgError{Code: "23503"}

	assert.True(t, IsUniqueViolation(pgDup))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", pgDup)))
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(fmt.Errorf("create: %w", gorm.ErrDuplicatedKey)))

	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(pgFK))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
}

func TestIsDuplicateConstraintError(t *testing.T) {
	pgDup := &pgconn.PgError{Code: "23505", ConstraintName: "enrollments_user_course_key"}

	assert.True(t, IsDuplicateConstraintError(pgDup, "enrollments_user_course_key"))
	assert.False(t, IsDuplicateConstraintError(pgDup, "progress_user_lesson_key"))
	assert.False(t, IsDuplicateConstraintError(gorm.ErrDuplicatedKey, "enrollments_user_course_key"))
}
