package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ".", cfg.Output)
	assert.False(t, cfg.DryRun)
	assert.Equal(t, "Guid", cfg.Naming.IdentifierType)
	assert.Equal(t, "Dto", cfg.Naming.DtoSuffix)
	assert.Equal(t, "DbContext", cfg.Naming.ContextSuffix)
	assert.Equal(t, 64, cfg.Template.CacheSize)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "scaffold.yaml")
	content := "output: out\nnaming:\n  identifier_type: int\n  dto_suffix: Model\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))

	t.Setenv("SCAFFOLD_NAMING_DTO_SUFFIX", "Response")

	cfg, err := Load(NewViper(), file)
	require.NoError(t, err)

	assert.Equal(t, "out", cfg.Output)
	assert.Equal(t, "int", cfg.Naming.IdentifierType)
	assert.Equal(t, "Response", cfg.Naming.DtoSuffix, "environment wins over file")
	assert.Equal(t, "DbContext", cfg.Naming.ContextSuffix, "defaults fill the gaps")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(NewViper(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	assert.Empty(t, findConfigFile(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".scaffold.toml"), []byte("output = \"x\"\n"), 0o644))
	assert.Equal(t, filepath.Join(dir, ".scaffold.toml"), findConfigFile(dir))
}
