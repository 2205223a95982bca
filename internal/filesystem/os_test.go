package filesystem

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOSFileSystem(t *testing.T) {
	dir := t.TempDir()
	osfs := NewOSFileSystem()

	script := filepath.Join(dir, "apps", "android", "gradlew")
	require.NoError(t, osfs.MkdirAll(filepath.Dir(script), 0755))
	require.NoError(t, osfs.WriteFile(script, []byte("#!/bin/sh\n"), 0644))

	info, err := osfs.Stat(script)
	require.NoError(t, err)
	require.Equal(t, fs.FileMode(0644), info.Mode().Perm())

	// Rewriting an existing file applies the new mode.
	require.NoError(t, osfs.WriteFile(script, []byte("#!/bin/sh\nexec gradle \"$@\"\n"), 0755))
	info, err = osfs.Stat(script)
	require.NoError(t, err)
	require.Equal(t, fs.FileMode(0755), info.Mode().Perm())

	data, err := osfs.ReadFile(script)
	require.NoError(t, err)
	require.Contains(t, string(data), "exec gradle")

	entries, err := osfs.ReadDir(filepath.Join(dir, "apps"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "android", entries[0].Name())
	require.True(t, entries[0].IsDir())

	require.NoError(t, osfs.RemoveAll(filepath.Join(dir, "apps")))
	require.False(t, osfs.Exists(script))

	_, err = osfs.ReadFile(script)
	require.True(t, errors.Is(err, fs.ErrNotExist))
}
