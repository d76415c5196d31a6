package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"oreore-lsp/src/internal/common"
	"oreore-lsp/src/internal/constants"
)

// How a provider rejection is reported to the client
const (
	// NoResultError replies with a RequestFailed JSON-RPC error carrying the provider message
	NoResultError = "error"
	// NoResultSilent replies with a null result
	NoResultSilent = "silent"
)

// Config contains language server configuration
type Config struct {
	LanguageID     string   `yaml:"language_id" toml:"language_id"`
	FileExtensions []string `yaml:"file_extensions" toml:"file_extensions"`
	LogLevel       string   `yaml:"log_level" toml:"log_level"`
	NoResult       string   `yaml:"no_result" toml:"no_result"`
	HelloMessage   string   `yaml:"hello_message" toml:"hello_message"`
}

// LoadConfig loads configuration from a YAML file, or TOML when the
// file extension is .toml
func LoadConfig(path string) (*Config, error) {
	var config Config

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.DecodeFile(path, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// SaveConfig saves configuration to a YAML file, or TOML when the file
// extension is .toml
func SaveConfig(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var data []byte
	var err error
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(config)
		data = buf.Bytes()
	} else {
		data, err = yaml.Marshal(config)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateDefaultConfig generates a default configuration file
func GenerateDefaultConfig(path string) error {
	return SaveConfig(GetDefaultConfig(), path)
}

// Validate reports every problem at once
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.LanguageID) == "" {
		errs = append(errs, errors.New("language_id: must not be empty"))
	}
	for _, ext := range c.FileExtensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Errorf("file_extensions: %q must start with a dot", ext))
		}
	}
	if _, err := common.ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	switch c.NoResult {
	case NoResultError, NoResultSilent:
	default:
		errs = append(errs, fmt.Errorf("no_result: %q is not one of %q, %q", c.NoResult, NoResultError, NoResultSilent))
	}

	return errors.Join(errs...)
}

func (c *Config) applyDefaults() {
	if c.LanguageID == "" {
		c.LanguageID = constants.DefaultLanguageID
	}
	if len(c.FileExtensions) == 0 {
		c.FileExtensions = append([]string{}, constants.DefaultFileExtensions...)
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.NoResult == "" {
		c.NoResult = NoResultError
	}
	if c.HelloMessage == "" {
		c.HelloMessage = constants.DefaultHelloMessage
	}
}

// Level returns the parsed log level, falling back to info
func (c *Config) Level() common.LogLevel {
	level, err := common.ParseLogLevel(c.LogLevel)
	if err != nil {
		return common.LogInfo
	}
	return level
}

// Clone returns a deep copy
func (c *Config) Clone() *Config {
	clone := *c
	clone.FileExtensions = append([]string{}, c.FileExtensions...)
	return &clone
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".oreore-lsp", "config.yaml")
}

// GetDefaultConfig returns the built-in configuration
func GetDefaultConfig() *Config {
	config := &Config{}
	config.applyDefaults()
	return config
}
