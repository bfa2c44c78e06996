package main

import (
	"fmt"

	"github.com/alekspetrov/clawban/internal/adapters"
	"github.com/alekspetrov/clawban/internal/adapters/github"
	"github.com/alekspetrov/clawban/internal/config"
	"github.com/alekspetrov/clawban/internal/journal"
	"github.com/alekspetrov/clawban/internal/logging"
)

// loadConfig resolves the config path, loads and validates the config,
// and initializes logging from it.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	if err := logging.Init(cfg.Logging); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	return cfg, nil
}

// newAdapter builds the GitHub adapter from config and registers it so
// other components can resolve it by name.
func newAdapter(cfg *config.Config) (*github.Adapter, error) {
	client := github.NewClient(cfg.GitHub.Token)
	adapter, err := github.NewAdapter(client, cfg.GitHub.Repo,
		github.WithIssueLimit(cfg.GitHub.IssueLimit),
	)
	if err != nil {
		return nil, err
	}
	adapters.Register(adapter)
	return adapter, nil
}

// openJournal opens the event journal when enabled, else returns nil.
func openJournal(cfg *config.Config) (*journal.Journal, error) {
	if cfg.Journal == nil || !cfg.Journal.Enabled {
		return nil, nil
	}
	return journal.Open(cfg.Journal.Path)
}
