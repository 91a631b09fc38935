package config

import (
	"errors"
	"fmt"
)

func (c *Config) Validate() error {
	var errs []error

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("server: %w", err))
	}

	if err := c.Auth.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("auth: %w", err))
	}

	if err := c.Store.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("store: %w", err))
	}

	if err := c.Persistence.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("persistence: %w", err))
	}

	if err := c.Predictor.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("predictor: %w", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	return errors.Join(errs...)
}

func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", s.Port)
	}
	if s.RateLimit.Enabled {
		if s.RateLimit.RequestsPerSecond <= 0 {
			return fmt.Errorf("rate_limit.requests_per_second must be positive")
		}
		if s.RateLimit.Burst < 1 {
			return fmt.Errorf("rate_limit.burst must be at least 1")
		}
	}
	return nil
}

func (a *AuthConfig) Validate() error {
	if a.Enabled && (a.User == "" || a.Password == "") {
		return fmt.Errorf("user and password are required when auth is enabled")
	}
	return nil
}

func (s *StoreConfig) Validate() error {
	if s.Path == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}

func (p *PersistenceConfig) Validate() error {
	if p.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	return nil
}

func (p *PredictorConfig) Validate() error {
	var errs []error

	if p.StaleThreshold <= 0 || p.StaleThreshold >= 1 {
		errs = append(errs, fmt.Errorf("stale_threshold must be in (0, 1), got %g", p.StaleThreshold))
	}

	switch p.Regressor {
	case "tree", "linear":
	default:
		errs = append(errs, fmt.Errorf("regressor must be one of tree, linear; got %q", p.Regressor))
	}

	if p.Tree.MaxDepth < 1 {
		errs = append(errs, fmt.Errorf("tree.max_depth must be at least 1, got %d", p.Tree.MaxDepth))
	}
	if p.Tree.MinLeafSamples < 1 {
		errs = append(errs, fmt.Errorf("tree.min_leaf_samples must be at least 1, got %d", p.Tree.MinLeafSamples))
	}

	return errors.Join(errs...)
}

func (l *LoggingConfig) Validate() error {
	switch l.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("level must be one of debug, info, warn, error; got %q", l.Level)
	}

	switch l.Format {
	case "json", "text":
	default:
		return fmt.Errorf("format must be json or text, got %q", l.Format)
	}

	return nil
}
