package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAbsolutePathExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := GetAbsolutePath("~/notes.db")
	require.NoError(t, err)
	resolvedHome, err := filepath.EvalSymlinks(home)
	require.NoError(t, err)
	assert.Contains(t, []string{filepath.Join(home, "notes.db"), filepath.Join(resolvedHome, "notes.db")}, got)
}

func TestGetAbsolutePathEmpty(t *testing.T) {
	_, err := GetAbsolutePath("")
	assert.Error(t, err)
}

func TestGetDefaultConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := GetDefaultConfigPath()
	require.NoError(t, err)
	assert.Empty(t, got)

	dir := filepath.Join(home, ".config", "noteweaver")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("vendor: openai\n"), 0o644))

	got, err = GetDefaultConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), got)
}
