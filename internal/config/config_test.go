package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.NotEmpty(t, cfg.DBPath)
	assert.Equal(t, 5, cfg.MaxContextMemories)
	assert.True(t, cfg.EnableExtraction)
	assert.True(t, cfg.EnableCategorization)
	assert.Equal(t, 0.8, cfg.ExtractionConfidenceThreshold)
	assert.Equal(t, 5, cfg.WorkingMemoryLimit)
	assert.Equal(t, ContextModeSearch, cfg.Mode)
	assert.NoError(t, cfg.Validate())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("AIMEMO_DB_PATH", "/tmp/custom.db")
	t.Setenv("AIMEMO_MAX_CONTEXT", "9")
	t.Setenv("AIMEMO_ENABLE_EXTRACTION", "false")
	t.Setenv("AIMEMO_WORKING_MEMORY_LIMIT", "12")
	t.Setenv("AIMEMO_CONTEXT_MODE", "both")

	cfg := Default()
	assert.Equal(t, "/tmp/custom.db", cfg.DBPath)
	assert.Equal(t, 9, cfg.MaxContextMemories)
	assert.False(t, cfg.EnableExtraction)
	assert.Equal(t, 12, cfg.WorkingMemoryLimit)
	assert.Equal(t, ContextModeBoth, cfg.Mode)
}

func TestLoadJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"db_path": "/tmp/from-json.db",
		"working_memory_limit": 7,
		"context_mode": "working"
	}`), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-json.db", cfg.DBPath)
	assert.Equal(t, 7, cfg.WorkingMemoryLimit)
	assert.Equal(t, ContextModeWorking, cfg.Mode)
	// Unset fields keep defaults.
	assert.Equal(t, 5, cfg.MaxContextMemories)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"db_path: /tmp/from-yaml.db\nmax_context_memories: 3\n"), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-yaml.db", cfg.DBPath)
	assert.Equal(t, 3, cfg.MaxContextMemories)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("x = 1"), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	bad := []*Config{
		{DBPath: "x", MaxContextMemories: 5, WorkingMemoryLimit: 0, Mode: ContextModeSearch},
		{DBPath: "x", MaxContextMemories: 0, WorkingMemoryLimit: 5, Mode: ContextModeSearch},
		{DBPath: "x", MaxContextMemories: 5, WorkingMemoryLimit: 5, ExtractionConfidenceThreshold: 1.5, Mode: ContextModeSearch},
		{DBPath: "x", MaxContextMemories: 5, WorkingMemoryLimit: 5, Mode: "sometimes"},
	}
	for i, cfg := range bad {
		assert.Error(t, cfg.Validate(), "case %d", i)
	}
}

func TestLoadFileValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"working_memory_limit": -1}`), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}
