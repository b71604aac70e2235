package seed

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/lms/internal/app/repositories"
	"github.com/yigit/lms/internal/app/repositories/gormstore"
	"github.com/yigit/lms/internal/db"
)

func newTestRepos(t *testing.T) *repositories.Repositories {
	t.Helper()
	sqlite, err := db.NewSQLiteDB(filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })
	require.NoError(t, gormstore.AutoMigrate(sqlite.Gorm))
	return gormstore.NewRepositories(sqlite.Gorm)
}

func TestCreateDefaultData_FreshDatabase(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	require.NoError(t, CreateDefaultData(ctx, repos, zerolog.Nop()))

	courses, err := repos.Courses.List(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Python для начинающих", courses[0].Title)

	lessons, err := repos.Lessons.ListByCourse(ctx, courses[0].ID)
	require.NoError(t, err)
	require.Len(t, lessons, 2)
	assert.Equal(t, "Основы Python", lessons[0].Title)
	assert.Equal(t, "Это контент первого урока.", lessons[0].Content)
	assert.Equal(t, "Циклы и условия", lessons[1].Title)
	assert.Equal(t, "Это контент второго урока.", lessons[1].Content)

	user, err := repos.Users.First(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultUsername, user.Username)
}

func TestCreateDefaultData_Idempotent(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	require.NoError(t, CreateDefaultData(ctx, repos, zerolog.Nop()))
	require.NoError(t, CreateDefaultData(ctx, repos, zerolog.Nop()))

	count, err := repos.Courses.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	courses, err := repos.Courses.List(ctx)
	require.NoError(t, err)
	lessons, err := repos.Lessons.ListByCourse(ctx, courses[0].ID)
	require.NoError(t, err)
	assert.Len(t, lessons, 2)
}
