package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepModels(t *testing.T) {
	dir := t.TempDir()

	mapping, err := loadStepModels(dir)
	require.NoError(t, err)
	assert.Empty(t, mapping)

	require.NoError(t, setStepModel(dir, "select_folders=gpt-4.1-mini"))
	require.NoError(t, setStepModel(dir, " answer = gpt-4.1 "))

	var out bytes.Buffer
	require.NoError(t, listStepModels(&out, dir))
	assert.Equal(t, "answer: gpt-4.1\nselect_folders: gpt-4.1-mini\n", out.String())

	require.NoError(t, unsetStepModel(dir, "answer"))
	mapping, err = loadStepModels(dir)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"select_folders": "gpt-4.1-mini"}, mapping)

	require.NoError(t, unsetStepModel(dir, "select_folders"))
	_, err = os.Stat(getStepModelFile(dir))
	assert.True(t, os.IsNotExist(err), "empty mapping removes the file")
}

func TestSetStepModelRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, setStepModel(dir, "answer"))
	assert.Error(t, setStepModel(dir, "answer="))
	assert.Error(t, setStepModel(dir, "translate=gpt-4o"))
}

func TestLoadStepModelsInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, stepModelsFileName), []byte("answer: [x"), 0o644))
	_, err := loadStepModels(dir)
	assert.Error(t, err)
}
