package media

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniqueName(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9a-f-]{36}\.png$`)

	a := UniqueName("png")
	b := UniqueName("png")
	assert.Regexp(t, pattern, a)
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(UniqueName("jpeg"), ".jpeg"))
}

func fileExists(s *Store, rel string) bool {
	_, err := os.Stat(filepath.Join(s.Root(), filepath.FromSlash(rel)))
	return err == nil
}

func TestSaveRemove(t *testing.T) {
	root := t.TempDir()
	s := New(root, "/media/")

	rel := "uploads/recipe/a.png"
	require.NoError(t, s.Save(rel, strings.NewReader("data")))
	assert.True(t, fileExists(s, rel))

	content, err := os.ReadFile(filepath.Join(root, "uploads", "recipe", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(content))

	// 同名文件不覆盖
	assert.Error(t, s.Save(rel, strings.NewReader("other")))

	require.NoError(t, s.Remove(rel))
	assert.False(t, fileExists(s, rel))
	assert.NoError(t, s.Remove(rel))
}

func TestPathsStayInsideRoot(t *testing.T) {
	root := t.TempDir()
	s := New(root, "/media/")

	require.NoError(t, s.Save("../../escape.png", strings.NewReader("x")))
	_, err := os.Stat(filepath.Join(root, "escape.png"))
	assert.NoError(t, err)

	assert.ErrorIs(t, s.Save("", strings.NewReader("x")), ErrInvalidPath)
	assert.ErrorIs(t, s.Remove("/"), ErrInvalidPath)
}

func TestURL(t *testing.T) {
	s := New(t.TempDir(), "/media/")
	assert.Equal(t, "/media/uploads/recipe/a.png", s.URL("uploads/recipe/a.png"))
	assert.Equal(t, "/media/a.png", s.URL("../a.png"))
}
