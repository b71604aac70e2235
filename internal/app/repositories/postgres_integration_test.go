//go:build integration

package repositories_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/yigit/lms/internal/app/migrations"
	"github.com/yigit/lms/internal/app/models"
	"github.com/yigit/lms/internal/app/repositories"
	"github.com/yigit/lms/internal/config"
	"github.com/yigit/lms/internal/db"
	"github.com/yigit/lms/internal/pkg/apperrors"
	"github.com/yigit/lms/internal/seed"
)

// startPostgres runs a throwaway PostgreSQL container and returns a migrated pool
func startPostgres(t *testing.T) *db.PostgresDB {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "lms",
			"POSTGRES_PASSWORD": "lms",
			"POSTGRES_DB":       "lms",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate postgres container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://lms:lms@%s:%s/lms?sslmode=disable", host, port.Port())
	database, err := db.NewPostgresDBFromDSN(ctx, dsn, config.DatabaseConfig{MaxOpenConns: 4, ConnMaxLifetime: "5m"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	migrator := migrations.NewMigrator(database.Pool, zerolog.Nop())
	require.NoError(t, migrator.Migrate(ctx))
	// Second run finds every version recorded
	require.NoError(t, migrator.Migrate(ctx))

	return database
}

func TestPostgresRepositories(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping container-based test in short mode")
	}

	ctx := context.Background()
	database := startPostgres(t)
	repos := repositories.NewRepositories(database.Pool)

	require.NoError(t, seed.CreateDefaultData(ctx, repos, zerolog.Nop()))
	require.NoError(t, seed.CreateDefaultData(ctx, repos, zerolog.Nop()))

	courses, err := repos.Courses.List(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	courseID := courses[0].ID

	lessons, err := repos.Lessons.ListByCourse(ctx, courseID)
	require.NoError(t, err)
	require.Len(t, lessons, 2)
	assert.Equal(t, "Основы Python", lessons[0].Title)

	user, err := repos.Users.First(ctx)
	require.NoError(t, err)
	assert.Equal(t, seed.DefaultUsername, user.Username)

	t.Run("not found", func(t *testing.T) {
		_, err := repos.Courses.GetByID(ctx, 9999)
		assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
		_, err = repos.Lessons.GetByID(ctx, 9999)
		assert.ErrorIs(t, err, apperrors.ErrLessonNotFound)
		_, err = repos.Users.GetByID(ctx, 9999)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("enrollment is unique", func(t *testing.T) {
		created, err := repos.Enrollments.Create(ctx, user.ID, courseID)
		require.NoError(t, err)
		assert.True(t, created)

		created, err = repos.Enrollments.Create(ctx, user.ID, courseID)
		require.NoError(t, err)
		assert.False(t, created)

		ids, err := repos.Enrollments.CourseIDsByUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, []int64{courseID}, ids)

		exists, err := repos.Enrollments.Exists(ctx, user.ID, courseID)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("progress is unique and scoped to course", func(t *testing.T) {
		otherCourseID, err := repos.Courses.Create(ctx, &models.Course{Title: "Other"})
		require.NoError(t, err)
		otherLessonID, err := repos.Lessons.Create(ctx, &models.Lesson{CourseID: otherCourseID, Title: "x", Content: "y"})
		require.NoError(t, err)

		for i := 0; i < 2; i++ {
			_, err := repos.Progress.Create(ctx, user.ID, lessons[0].ID)
			require.NoError(t, err)
		}
		_, err = repos.Progress.Create(ctx, user.ID, otherLessonID)
		require.NoError(t, err)

		ids, err := repos.Progress.CompletedLessonIDs(ctx, user.ID, courseID)
		require.NoError(t, err)
		assert.Equal(t, []int64{lessons[0].ID}, ids)

		done, err := repos.Progress.Exists(ctx, user.ID, lessons[1].ID)
		require.NoError(t, err)
		assert.False(t, done)
	})
}
