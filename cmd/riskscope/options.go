package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/riskscope/riskscope/internal/history"
	"github.com/riskscope/riskscope/pkg/config"
	"github.com/riskscope/riskscope/pkg/logging"
	"github.com/riskscope/riskscope/pkg/validate"
)

// rootOptions carries the persistent flags and the resolved config.
type rootOptions struct {
	configPath string
	logLevel   string
	dataDir    string
	backend    string

	cfg *config.Config
}

// init resolves the config (file, then environment, then flags) and
// installs the logger.
func (o *rootOptions) init() error {
	cfg, err := loadConfig(o.configPath)
	if err != nil {
		return err
	}
	cfg.ApplyEnv()
	cfg.History.Dir = firstNonEmpty(o.dataDir, cfg.History.Dir)
	cfg.History.Backend = firstNonEmpty(o.backend, cfg.History.Backend)
	cfg.Log.Level = firstNonEmpty(o.logLevel, cfg.Log.Level)
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg

	if o.logLevel != "" {
		slog.SetDefault(logging.NewCLILogger(o.logLevel))
	} else {
		logging.SetDefaultCLILogger(cfg.Log.Level)
	}
	return nil
}

// openStore opens the configured history backend.
func (o *rootOptions) openStore(ctx context.Context) (*history.Store, error) {
	backend, err := history.Open(ctx, o.cfg.History.Backend, o.cfg.History.Dir)
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	return history.NewStore(backend, o.cfg.History.Key), nil
}

// loadConfig reads an explicit config path, or discovers one from the
// working directory. A missing discovered file yields the defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		return config.Load(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return config.DefaultConfig(), nil
	}
	cfgFile := config.FindConfigFile(wd)
	if cfgFile == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		return config.DefaultConfig(), nil
	}
	return cfg, nil
}

// parseNow parses an evaluation time given as RFC3339 or as a calendar date.
// An empty value means the current time.
func parseNow(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(validate.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now %q (want RFC3339 or YYYY-MM-DD)", s)
	}
	return t, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
