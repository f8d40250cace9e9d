package sample

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/launchdarkly/go-test-helpers/v2"
	m "github.com/launchdarkly/go-test-helpers/v2/matchers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	helpers.WithTempFileData([]byte("// adds\nEXPECTED: 3\nprint(1 + 2);\n"), func(path string) {
		p, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, path, p.Path)
		assert.Equal(t, filepath.Base(path), p.Name)
		assert.Equal(t, Expectations{"3"}, p.Expected)
	})
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.tos"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"while.tos", "add.tos", "README"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "deep.tos"), []byte("x"), 0o600))

	paths, err := List(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "README"),
		filepath.Join(dir, "add.tos"),
		filepath.Join(dir, "while.tos"),
	}, paths)
}

func TestListEmptyDirectory(t *testing.T) {
	paths, err := List(t.TempDir())
	require.NoError(t, err)
	assert.Len(t, paths, 0)
}

func TestListMissingDirectory(t *testing.T) {
	_, err := List(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	m.In(t).Assert(err.Error(), m.StringHasPrefix("cannot list sample directory: "))
}
