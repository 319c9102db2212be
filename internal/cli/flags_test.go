package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, home, content string) string {
	t.Helper()
	dir := filepath.Join(home, ".config", "noteweaver")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseArgsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	got, err := parseArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, "openai", got.Vendor)
	assert.Equal(t, 20000, got.MaxTokens)
	assert.Equal(t, 20000, got.AnswerMaxTokens)
	assert.Equal(t, 5*time.Minute, got.Timeout)
	assert.Equal(t, "sqlite", got.Backend)
	assert.Equal(t, ":8080", got.Address)
}

func TestParseArgsMergesConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfig(t, home, "vendor: ollama\nmodel: llama3\nmaxtokens: 4000\ntimeout: 30s\ntemperature: 0.9\n")

	got, err := parseArgs([]string{"--model=qwen3", "-t", "0.3", "--organize"})
	require.NoError(t, err)
	assert.Equal(t, "ollama", got.Vendor)
	assert.Equal(t, "qwen3", got.Model, "command line wins")
	assert.Equal(t, 0.3, got.Temperature, "short flags count as given")
	assert.Equal(t, 4000, got.MaxTokens)
	assert.Equal(t, 30*time.Second, got.Timeout)
	assert.True(t, got.Organize)
}

func TestParseArgsExplicitConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: supabase\naddress: 127.0.0.1:9000\n"), 0o644))

	got, err := parseArgs([]string{"--config", path})
	require.NoError(t, err)
	assert.Equal(t, "supabase", got.Backend)
	assert.Equal(t, "127.0.0.1:9000", got.Address)

	_, err = parseArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestParseArgsErrors(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := parseArgs([]string{"--backend", "mysql"})
	assert.Error(t, err)

	_, err = parseArgs([]string{"stray"})
	assert.Error(t, err)

	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfig(t, home, "vendor: [unterminated\n")
	_, err = parseArgs(nil)
	assert.Error(t, err)
}

func TestUsedFlags(t *testing.T) {
	parser := flags.NewParser(&Flags{}, flags.Default)
	got := usedFlags(parser, []string{"--vendor=anthropic", "-m", "claude", "-t0.2", "--", "--debug"})
	assert.Equal(t, map[string]bool{"vendor": true, "model": true, "temperature": true}, got)
}

func TestResolveDBPath(t *testing.T) {
	f := &Flags{}
	got, err := f.ResolveDBPath("/cfg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/cfg", "noteweaver.db"), got)

	dir := t.TempDir()
	f.DBPath = filepath.Join(dir, "notes.db")
	got, err = f.ResolveDBPath("/cfg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "notes.db"), got)
}
