// Package config loads and persists PLCortex configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all PLCortex configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// LLM backend configuration
	LLM LLMConfig `yaml:"llm"`

	// Recent-activity store
	History HistoryConfig `yaml:"history"`

	// Reference table overrides
	Tables TablesConfig `yaml:"tables"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// LLMConfig configures the generative-AI backend.
type LLMConfig struct {
	Provider string `yaml:"provider"` // gemini, openai
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
	Timeout  string `yaml:"timeout"`
}

// HistoryConfig configures the recent-activity store.
type HistoryConfig struct {
	DatabasePath string `yaml:"database_path"`

	// MaxEntries caps the store; older entries are pruned past it.
	MaxEntries int `yaml:"max_entries"`
}

// TablesConfig configures user-supplied reference table overrides.
type TablesConfig struct {
	// OverrideDir holds YAML files merged over the embedded tables.
	OverrideDir string `yaml:"override_dir"`

	// WatchOverrides hot-reloads override files when they change.
	WatchOverrides bool `yaml:"watch_overrides"`
}

// LoggingConfig configures categorized file logging.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level"` // debug, info, warn, error
	Categories map[string]bool `yaml:"categories"`
}

// DefaultAppDir returns the per-user application directory (~/.plcortex).
func DefaultAppDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".plcortex"
	}
	return filepath.Join(home, ".plcortex")
}

// DefaultConfigPath returns the default config file location.
func DefaultConfigPath() string {
	return filepath.Join(DefaultAppDir(), "config.yaml")
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	appDir := DefaultAppDir()
	return &Config{
		Name:    "PLCortex",
		Version: "1.0.0",

		LLM: LLMConfig{
			Provider: "gemini",
			Model:    "gemini-2.0-flash",
			Timeout:  "120s",
		},

		History: HistoryConfig{
			DatabasePath: filepath.Join(appDir, "history.db"),
			MaxEntries:   25,
		},

		Tables: TablesConfig{
			OverrideDir:    filepath.Join(appDir, "tables"),
			WatchOverrides: false,
		},

		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file, falling back to defaults when
// the file does not exist. Environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file, creating the directory if needed.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies PLCORTEX_* environment variables, plus the
// provider-specific API key variables, over file values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PLCORTEX_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("PLCORTEX_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("PLCORTEX_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("PLCORTEX_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if c.LLM.APIKey == "" {
		// Provider-conventional key variables as fallback.
		switch c.LLM.Provider {
		case "gemini":
			c.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
		case "openai":
			c.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}
	if v := os.Getenv("PLCORTEX_HISTORY_DB"); v != "" {
		c.History.DatabasePath = v
	}
	if v := os.Getenv("PLCORTEX_TABLES_DIR"); v != "" {
		c.Tables.OverrideDir = v
	}
}

// LLMTimeout parses the configured LLM timeout, defaulting to two minutes.
func (c *Config) LLMTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil || d <= 0 {
		return 120 * time.Second
	}
	return d
}
