package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainErrorsMatchTheirCategory(t *testing.T) {
	wrapped := fmt.Errorf("loading lesson 7: %w", ErrLessonNotFound)

	assert.True(t, errors.Is(wrapped, ErrLessonNotFound))
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsForbidden(wrapped))
	assert.False(t, errors.Is(wrapped, ErrCourseNotFound))

	assert.True(t, IsForbidden(ErrNotEnrolled))
	assert.False(t, IsNotFound(ErrNotEnrolled))
}

func TestWithDetailsKeepsIdentity(t *testing.T) {
	err := ErrCourseNotFound.WithDetails(map[string]interface{}{"courseId": 3})

	assert.True(t, errors.Is(err, ErrCourseNotFound))
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "course not found", err.Error())
	assert.Equal(t, 3, err.Details["courseId"])
}
