package cli

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"oreore-lsp/src/config"
	"oreore-lsp/src/internal/common"
)

// LoadConfigWithFallback loads configPath when given, otherwise the
// default config file when it exists, otherwise the built-in defaults.
// It also returns the file the configuration came from, "" for defaults.
// An explicit path that cannot be loaded is an error; a broken default
// file only produces a warning.
func LoadConfigWithFallback(configPath string) (*config.Config, string, error) {
	if configPath != "" {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
		return cfg, configPath, nil
	}

	defaultConfigPath := config.GetDefaultConfigPath()
	if _, err := os.Stat(defaultConfigPath); err == nil {
		cfg, err := config.LoadConfig(defaultConfigPath)
		if err != nil {
			common.CLILogger.Warn("Failed to load default config from %s, using defaults: %v", defaultConfigPath, err)
			return config.GetDefaultConfig(), "", nil
		}
		return cfg, defaultConfigPath, nil
	}

	return config.GetDefaultConfig(), "", nil
}

// InitConfig writes the default configuration to path, or to the
// default location when path is empty
func InitConfig(out io.Writer, path string, force bool) error {
	if path == "" {
		path = config.GetDefaultConfigPath()
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --%s to overwrite)", path, FlagForce)
	}

	if err := config.GenerateDefaultConfig(path); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "Wrote default configuration to %s\n", path)
	return err
}

// ShowConfig prints the effective configuration as YAML
func ShowConfig(out io.Writer, configPath string) error {
	cfg, source, err := LoadConfigWithFallback(configPath)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if _, err := fmt.Fprintf(out, "# source: %s\n", describeSource(source)); err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
