package gormstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/lms/internal/app/models"
	"github.com/yigit/lms/internal/app/repositories"
	"github.com/yigit/lms/internal/db"
	"github.com/yigit/lms/internal/pkg/apperrors"
)

func newTestRepos(t *testing.T) *repositories.Repositories {
	t.Helper()
	sqlite, err := db.NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })
	require.NoError(t, AutoMigrate(sqlite.Gorm))
	return NewRepositories(sqlite.Gorm)
}

func TestUsers_FirstReturnsLowestID(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	_, err := repos.Users.First(ctx)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	firstID, err := repos.Users.Create(ctx, &models.User{Username: "student"})
	require.NoError(t, err)
	_, err = repos.Users.Create(ctx, &models.User{Username: "other"})
	require.NoError(t, err)

	user, err := repos.Users.First(ctx)
	require.NoError(t, err)
	assert.Equal(t, firstID, user.ID)
	assert.Equal(t, "student", user.Username)

	byName, err := repos.Users.GetByUsername(ctx, "other")
	require.NoError(t, err)
	assert.NotEqual(t, firstID, byName.ID)

	_, err = repos.Users.GetByID(ctx, 9999)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUsers_UsernameUnique(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	_, err := repos.Users.Create(ctx, &models.User{Username: "student"})
	require.NoError(t, err)
	_, err = repos.Users.Create(ctx, &models.User{Username: "student"})
	assert.Error(t, err)
}

func TestCoursesAndLessons(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	count, err := repos.Courses.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	courseID, err := repos.Courses.Create(ctx, &models.Course{Title: "Go"})
	require.NoError(t, err)
	otherID, err := repos.Courses.Create(ctx, &models.Course{Title: "Rust"})
	require.NoError(t, err)

	first, err := repos.Lessons.Create(ctx, &models.Lesson{CourseID: courseID, Title: "A", Content: "a"})
	require.NoError(t, err)
	second, err := repos.Lessons.Create(ctx, &models.Lesson{CourseID: courseID, Title: "B", Content: "b"})
	require.NoError(t, err)
	_, err = repos.Lessons.Create(ctx, &models.Lesson{CourseID: otherID, Title: "C", Content: "c"})
	require.NoError(t, err)

	courses, err := repos.Courses.List(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "Go", courses[0].Title)
	assert.Equal(t, "Rust", courses[1].Title)

	lessons, err := repos.Lessons.ListByCourse(ctx, courseID)
	require.NoError(t, err)
	require.Len(t, lessons, 2)
	assert.Equal(t, []int64{first, second}, []int64{lessons[0].ID, lessons[1].ID})

	empty, err := repos.Lessons.ListByCourse(ctx, 9999)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	lesson, err := repos.Lessons.GetByID(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, courseID, lesson.CourseID)
	assert.Equal(t, "b", lesson.Content)

	_, err = repos.Courses.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	_, err = repos.Lessons.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, apperrors.ErrLessonNotFound)
}

func TestEnrollments_CreateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	userID, err := repos.Users.Create(ctx, &models.User{Username: "student"})
	require.NoError(t, err)
	courseID, err := repos.Courses.Create(ctx, &models.Course{Title: "Go"})
	require.NoError(t, err)

	exists, err := repos.Enrollments.Exists(ctx, userID, courseID)
	require.NoError(t, err)
	assert.False(t, exists)

	created, err := repos.Enrollments.Create(ctx, userID, courseID)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repos.Enrollments.Create(ctx, userID, courseID)
	require.NoError(t, err)
	assert.False(t, created)

	exists, err = repos.Enrollments.Exists(ctx, userID, courseID)
	require.NoError(t, err)
	assert.True(t, exists)

	ids, err := repos.Enrollments.CourseIDsByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []int64{courseID}, ids)
}

func TestProgress_CompletedLessonIDsScopedToCourse(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	userID, err := repos.Users.Create(ctx, &models.User{Username: "student"})
	require.NoError(t, err)
	courseID, err := repos.Courses.Create(ctx, &models.Course{Title: "Go"})
	require.NoError(t, err)
	otherID, err := repos.Courses.Create(ctx, &models.Course{Title: "Rust"})
	require.NoError(t, err)
	lessonID, err := repos.Lessons.Create(ctx, &models.Lesson{CourseID: courseID, Title: "A", Content: "a"})
	require.NoError(t, err)
	otherLessonID, err := repos.Lessons.Create(ctx, &models.Lesson{CourseID: otherID, Title: "B", Content: "b"})
	require.NoError(t, err)

	created, err := repos.Progress.Create(ctx, userID, lessonID)
	require.NoError(t, err)
	assert.True(t, created)
	created, err = repos.Progress.Create(ctx, userID, lessonID)
	require.NoError(t, err)
	assert.False(t, created)
	_, err = repos.Progress.Create(ctx, userID, otherLessonID)
	require.NoError(t, err)

	done, err := repos.Progress.Exists(ctx, userID, lessonID)
	require.NoError(t, err)
	assert.True(t, done)

	ids, err := repos.Progress.CompletedLessonIDs(ctx, userID, courseID)
	require.NoError(t, err)
	assert.Equal(t, []int64{lessonID}, ids)

	ids, err = repos.Progress.CompletedLessonIDs(ctx, userID+1, courseID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
