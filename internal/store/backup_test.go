package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "MacDive.sqlite")
	require.NoError(t, os.WriteFile(path, []byte("payload"), 0644))

	backup, err := Backup(path)

	require.NoError(t, err)
	assert.Equal(t, path+".bak", backup)
	got, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)
}

func TestBackup_OverwritesPrevious(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "MacDive.sqlite")
	require.NoError(t, os.WriteFile(path, []byte("new"), 0644))
	require.NoError(t, os.WriteFile(path+".bak", []byte("stale"), 0644))

	_, err := Backup(path)

	require.NoError(t, err)
	got, _ := os.ReadFile(path + ".bak")
	assert.Equal(t, []byte("new"), got)
}

func TestBackup_MissingSource(t *testing.T) {
	_, err := Backup(filepath.Join(t.TempDir(), "nope.sqlite"))
	assert.Error(t, err)
}
