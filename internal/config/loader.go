package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const DefaultConfigPath = "~/.config/mcp-sync/config.yaml"

// ClientSettings overrides one client's defaults.
type ClientSettings struct {
	ConfigPath string `yaml:"config_path,omitempty"`
	Enabled    *bool  `yaml:"enabled,omitempty"`
}

// Config is the tool's own (optional) configuration. It only tunes which
// client config files get touched; server definitions always come from the
// clients themselves.
type Config struct {
	Clients map[string]ClientSettings `yaml:"clients"`
}

// Load reads the tool configuration from configPath, falling back to
// DefaultConfigPath when empty. A missing file yields an empty config; a
// file that exists but cannot be parsed is an error, since silently
// ignoring user overrides could write to the wrong paths.
func Load(configPath string) (*Config, error) {
	explicit := configPath != ""
	if !explicit {
		configPath = DefaultConfigPath
	}
	configPath = ExpandPath(configPath)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", configPath, err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config file '%s': %w", configPath, err)
	}

	return &config, nil
}

func (c *Config) validate() error {
	for name, settings := range c.Clients {
		if name == "" {
			return fmt.Errorf("client name cannot be empty")
		}
		if settings.ConfigPath == "" && settings.Enabled == nil {
			return fmt.Errorf("client '%s' sets neither config_path nor enabled", name)
		}
	}
	return nil
}

// PathOverrides returns the per-client config path overrides, expanded.
func (c *Config) PathOverrides() map[string]string {
	paths := make(map[string]string)
	for name, settings := range c.Clients {
		if settings.ConfigPath != "" {
			paths[name] = ExpandPath(settings.ConfigPath)
		}
	}
	return paths
}

// DisabledClients returns the set of clients switched off in the config.
func (c *Config) DisabledClients() map[string]bool {
	disabled := make(map[string]bool)
	for name, settings := range c.Clients {
		if settings.Enabled != nil && !*settings.Enabled {
			disabled[name] = true
		}
	}
	return disabled
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
