package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oreore-lsp/src/internal/common"
)

func TestGetDefaultConfig(t *testing.T) {
	config := GetDefaultConfig()

	assert.Equal(t, "oreore", config.LanguageID)
	assert.Equal(t, []string{".oreore", ".ore"}, config.FileExtensions)
	assert.Equal(t, "info", config.LogLevel)
	assert.Equal(t, NoResultError, config.NoResult)
	assert.Equal(t, "Hello, world!", config.HelloMessage)
	assert.NoError(t, config.Validate())
}

func TestLoadConfig_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `language_id: fruit
log_level: debug
no_result: silent
hello_message: Hi there
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "fruit", config.LanguageID)
	assert.Equal(t, common.LogDebug, config.Level())
	assert.Equal(t, NoResultSilent, config.NoResult)
	assert.Equal(t, "Hi there", config.HelloMessage)
	// Defaults fill what the file leaves out.
	assert.Equal(t, []string{".oreore", ".ore"}, config.FileExtensions)
}

func TestLoadConfig_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `language_id = "oreore"
file_extensions = [".ore"]
log_level = "warn"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{".ore"}, config.FileExtensions)
	assert.Equal(t, common.LogWarn, config.Level())
	assert.Equal(t, NoResultError, config.NoResult)
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("language_id: [unclosed"), 0644))
	_, err = LoadConfig(broken)
	assert.ErrorContains(t, err, "failed to parse config file")

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("log_level: loud\nno_result: maybe\nfile_extensions: [ore]\n"), 0644))
	_, err = LoadConfig(invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
	assert.Contains(t, err.Error(), "no_result")
	assert.Contains(t, err.Error(), "file_extensions")
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	original := GetDefaultConfig()
	original.HelloMessage = "Saved"

	require.NoError(t, SaveConfig(original, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestGenerateDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, GenerateDefaultConfig(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), loaded)
}

func TestSaveConfig_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := GetDefaultConfig()
	cfg.HelloMessage = "konnichiwa"
	require.NoError(t, SaveConfig(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `hello_message = "konnichiwa"`)

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestClone(t *testing.T) {
	config := GetDefaultConfig()
	clone := config.Clone()
	clone.FileExtensions[0] = ".changed"
	assert.Equal(t, ".oreore", config.FileExtensions[0])
}
