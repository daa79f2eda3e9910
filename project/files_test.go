package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadCode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "code.py")
	require.NoError(t, SaveCode("print('hello')", path, false))

	code, err := LoadCode(path)
	require.NoError(t, err)
	assert.Equal(t, "print('hello')", code)
}

func TestSaveCodeCreatesBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "code.py")
	require.NoError(t, SaveCode("v1", path, true))
	require.NoError(t, SaveCode("v2", path, true))

	code, err := LoadCode(path)
	require.NoError(t, err)
	assert.Equal(t, "v2", code)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var backups int
	for _, entry := range entries {
		if entry.Name() != "code.py" {
			assert.Contains(t, entry.Name(), ".backup.")
			backups++
		}
	}
	assert.Equal(t, 1, backups)
}

func TestLoadCodeMissing(t *testing.T) {
	_, err := LoadCode(filepath.Join(t.TempDir(), "missing.py"))
	assert.Error(t, err)
}

func TestCreateStructure(t *testing.T) {
	base := t.TempDir()
	structure, err := CreateStructure(base)
	require.NoError(t, err)
	require.Len(t, structure, 4)
	for _, purpose := range []string{"src", "tests", "docs", "config"} {
		info, err := os.Stat(structure[purpose])
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestWriteRequirements(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requirements.txt")
	require.NoError(t, WriteRequirements([]string{"zeta", "alpha", "zeta", "beta"}, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "alpha\nbeta\nzeta\n", string(data))
}
