package locator

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, fs afero.Fs, path string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(fs, path, nil, 0o644))
}

func TestFind_CurrentDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	touch(t, fs, "/proj/.gen_root")

	root, err := Find(fs, "/proj", "")
	require.NoError(t, err)
	require.Equal(t, filepath.Clean("/proj"), root)
}

func TestFind_WalksUp(t *testing.T) {
	fs := afero.NewMemMapFs()
	touch(t, fs, "/proj/.gen_root")
	require.NoError(t, fs.MkdirAll("/proj/db/migrations/2026", 0o755))

	root, err := Find(fs, "/proj/db/migrations/2026", DefaultMarker)
	require.NoError(t, err)
	require.Equal(t, filepath.Clean("/proj"), root)
}

func TestFind_NearestAncestorWins(t *testing.T) {
	fs := afero.NewMemMapFs()
	touch(t, fs, "/proj/.gen_root")
	touch(t, fs, "/proj/services/billing/.gen_root")
	require.NoError(t, fs.MkdirAll("/proj/services/billing/sql", 0o755))

	root, err := Find(fs, "/proj/services/billing/sql", DefaultMarker)
	require.NoError(t, err)
	require.Equal(t, filepath.Clean("/proj/services/billing"), root)
}

func TestFind_CustomMarker(t *testing.T) {
	fs := afero.NewMemMapFs()
	touch(t, fs, "/proj/.gen_root")
	touch(t, fs, "/proj/.migrations")
	require.NoError(t, fs.MkdirAll("/proj/a", 0o755))

	root, err := Find(fs, "/proj/a", ".migrations")
	require.NoError(t, err)
	require.Equal(t, filepath.Clean("/proj"), root)
}

func TestFind_DirectoryNamedLikeMarkerIgnored(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/proj/.gen_root", 0o755))

	_, err := Find(fs, "/proj", DefaultMarker)
	require.ErrorIs(t, err, ErrRootNotFound)
}

func TestFind_NotFound(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/a/b/c", 0o755))

	_, err := Find(fs, "/a/b/c", DefaultMarker)
	require.ErrorIs(t, err, ErrRootNotFound)
}
