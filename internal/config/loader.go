package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// configDirPath returns the .snipmark directory under rootDir.
func configDirPath(rootDir string) string {
	return filepath.Join(rootDir, ".snipmark")
}

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (SNIPMARK_*; list keys are comma-delimited)
// 2. Config file (.snipmark/config.yml or .snipmark/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	// Set up config file search
	configDir := configDirPath(l.rootDir)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	// Enable environment variable overrides
	v.SetEnvPrefix("SNIPMARK")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., SNIPMARK_OUTPUT_LANGUAGE)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Bind environment variables to config keys. List-valued keys take
	// comma-delimited values (e.g. SNIPMARK_PATHS_SOURCES="**/*A.cs,**/*B.cs").
	v.BindEnv("paths.sources")
	v.BindEnv("paths.ignore")
	v.BindEnv("paths.snippet_suffix")
	v.BindEnv("metadata.dir")
	v.BindEnv("output.dir")
	v.BindEnv("output.language")

	setDefaults(v)

	// Try to read config file
	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("paths.sources", defaults.Paths.Sources)
	v.SetDefault("paths.ignore", defaults.Paths.Ignore)
	v.SetDefault("paths.snippet_suffix", defaults.Paths.SnippetSuffix)

	v.SetDefault("metadata.dir", defaults.Metadata.Dir)

	v.SetDefault("output.dir", defaults.Output.Dir)
	v.SetDefault("output.language", defaults.Output.Language)
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
