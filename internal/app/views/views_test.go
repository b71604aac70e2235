package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates_AllPagesParsed(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, name := range []string{"index.html", "course.html", "lesson.html", "forbidden.html", "not_found.html", "error.html"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}
