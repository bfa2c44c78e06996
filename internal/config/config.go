// Package config loads clawban configuration from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alekspetrov/clawban/internal/logging"
)

// Config represents the main configuration.
type Config struct {
	Version string          `yaml:"version"`
	GitHub  *GitHubConfig   `yaml:"github"`
	Journal *JournalConfig  `yaml:"journal"`
	Logging *logging.Config `yaml:"logging"`
}

// GitHubConfig holds the GitHub tracker settings.
type GitHubConfig struct {
	Repo          string `yaml:"repo"`            // owner/repo
	Token         string `yaml:"token"`           // supports ${ENV} expansion
	SnapshotPath  string `yaml:"snapshot_path"`   // incremental poll snapshot
	TickStatePath string `yaml:"tick_state_path"` // full tick snapshot
	IssueLimit    int    `yaml:"issue_limit"`
}

// JournalConfig holds event journal settings.
type JournalConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".clawban")
	return &Config{
		Version: "1.0",
		GitHub: &GitHubConfig{
			Token:         "${GITHUB_TOKEN}",
			SnapshotPath:  filepath.Join(dataDir, "poll-snapshot.json"),
			TickStatePath: filepath.Join(dataDir, "tick-state.json"),
			IssueLimit:    100,
		},
		Journal: &JournalConfig{
			Enabled: false,
			Path:    filepath.Join(dataDir, "journal.db"),
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file. Environment variables in the
// file are expanded before parsing.
func Load(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil // Return defaults if no config file
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if config.GitHub != nil {
		config.GitHub.SnapshotPath = expandPath(config.GitHub.SnapshotPath)
		config.GitHub.TickStatePath = expandPath(config.GitHub.TickStatePath)
	}
	if config.Journal != nil {
		config.Journal.Path = expandPath(config.Journal.Path)
	}

	return config, nil
}

// Save saves configuration to a file.
func Save(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// DefaultConfigPath returns the default configuration path.
func DefaultConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".clawban", "config.yaml")
}

// expandPath expands ~ to the home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.GitHub == nil {
		return fmt.Errorf("github configuration is required")
	}
	parts := strings.Split(c.GitHub.Repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return fmt.Errorf("invalid github repo, expected owner/repo: %q", c.GitHub.Repo)
	}
	if c.GitHub.IssueLimit < 1 {
		return fmt.Errorf("github issue_limit must be positive: %d", c.GitHub.IssueLimit)
	}
	if c.Journal != nil && c.Journal.Enabled && c.Journal.Path == "" {
		return fmt.Errorf("journal path is required when the journal is enabled")
	}
	return nil
}
