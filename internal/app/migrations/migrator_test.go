package migrations

import (
	"io/fs"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersions_SortedAndSQLOnly(t *testing.T) {
	m := NewMigrator(nil, zerolog.Nop())

	files, err := m.Versions()
	require.NoError(t, err)
	require.NotEmpty(t, files)
	assert.Equal(t, "001_init.sql", files[0])
	assert.IsIncreasing(t, files)
}

func TestInitMigration_DeclaresUniquePairs(t *testing.T) {
	content, err := fs.ReadFile(embeddedSQL, "sql/001_init.sql")
	require.NoError(t, err)

	sql := string(content)
	for _, table := range []string{"users", "courses", "lessons", "enrollments", "progress"} {
		assert.Contains(t, sql, "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
	assert.Contains(t, sql, "UNIQUE (user_id, course_id)")
	assert.Contains(t, sql, "UNIQUE (user_id, lesson_id)")
}
