package mapfs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vippsas/sqlscript"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestMapFS(t *testing.T) {
	dir := t.TempDir()
	m := make(MapFS)
	require.NoError(t, m.Add(writeFile(t, dir, "one/b.sql", "select 2;")))
	require.NoError(t, m.Add(writeFile(t, dir, "two/a.sql", "select 1;")))

	t.Run("read file", func(t *testing.T) {
		data, err := fs.ReadFile(m, "a.sql")
		require.NoError(t, err)
		assert.Equal(t, "select 1;", string(data))
	})

	t.Run("root lists base names in order", func(t *testing.T) {
		entries, err := fs.ReadDir(m, ".")
		require.NoError(t, err)
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
			assert.False(t, e.IsDir())
		}
		assert.Equal(t, []string{"a.sql", "b.sql"}, names)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := m.Open("c.sql")
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})

	t.Run("same base name", func(t *testing.T) {
		err := m.Add(writeFile(t, dir, "three/a.sql", "select 3;"))
		assert.Error(t, err)
		// adding the same path again is fine
		assert.NoError(t, m.Add(filepath.Join(dir, "two/a.sql")))
	})

	t.Run("include", func(t *testing.T) {
		scripts, err := sqlscript.Include(sqlscript.Options{}, m)
		require.NoError(t, err)
		require.Len(t, scripts, 2)
		assert.Equal(t, "select 1", scripts[0].Statements[0].Value)
		assert.Equal(t, "select 2", scripts[1].Statements[0].Value)
	})
}
