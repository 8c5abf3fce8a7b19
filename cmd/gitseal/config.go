package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gitseal/gitseal"
)

// fileConfig is the on-disk configuration. Everything here is optional;
// flags override file values, and the core library only ever sees an
// explicit option set.
type fileConfig struct {
	Endpoint          string `yaml:"endpoint"`
	Credential        string `yaml:"credential"`
	TimeoutSeconds    int    `yaml:"timeout_seconds"`
	RetryAttempts     int    `yaml:"retry_attempts"`
	RetryDelaySeconds int    `yaml:"retry_delay_seconds"`
	Submitter         string `yaml:"submitter"`
	ProjectLabel      string `yaml:"project_label"`
	AuditLog          string `yaml:"audit_log"`
}

// loadConfig reads the config file at path, or the default location
// (~/.config/gitseal/config.yaml) when path is empty. A missing default
// file is not an error.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig

	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, ".config", "gitseal", "config.yaml")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// clientOptions translates the merged configuration into client options.
func (cfg fileConfig) clientOptions() []gitseal.Option {
	opts := []gitseal.Option{
		gitseal.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Credential != "" {
		opts = append(opts, gitseal.WithCredential(cfg.Credential))
	}
	if cfg.TimeoutSeconds > 0 {
		opts = append(opts, gitseal.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second))
	}
	if cfg.RetryAttempts > 0 {
		opts = append(opts, gitseal.WithRetryAttempts(cfg.RetryAttempts))
	}
	if cfg.RetryDelaySeconds > 0 {
		opts = append(opts, gitseal.WithRetryDelay(time.Duration(cfg.RetryDelaySeconds)*time.Second))
	}
	if cfg.Submitter != "" {
		opts = append(opts, gitseal.WithSubmitter(cfg.Submitter))
	}
	if cfg.ProjectLabel != "" {
		opts = append(opts, gitseal.WithProjectLabel(cfg.ProjectLabel))
	}
	if cfg.AuditLog != "" {
		opts = append(opts, gitseal.WithAuditLog(cfg.AuditLog))
	}
	return opts
}
