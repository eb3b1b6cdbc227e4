package config

import (
	"errors"
	"fmt"
)

func (c *Config) Validate() error {
	var errs []error

	if err := c.Log.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	if err := c.Source.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("source: %w", err))
	}

	if err := c.Display.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("display: %w", err))
	}

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("server: %w", err))
	}

	return errors.Join(errs...)
}

func (l *LogConfig) Validate() error {
	if l.Path == "" {
		return fmt.Errorf("path cannot be empty")
	}
	return nil
}

func (l *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[l.Level] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", l.Level)
	}

	validFormats := map[string]bool{
		"json": true,
		"text": true,
	}
	if !validFormats[l.Format] {
		return fmt.Errorf("invalid log format: %s (valid: json, text)", l.Format)
	}

	return nil
}

func (s *SourceConfig) Validate() error {
	switch s.Kind {
	case SourceProcStat:
		if s.StatPath == "" {
			return fmt.Errorf("stat_path cannot be empty for kind %s", SourceProcStat)
		}
		return nil
	case SourceGopsutil:
		return nil
	default:
		return fmt.Errorf("invalid source kind: %s (valid: %s, %s)", s.Kind, SourceProcStat, SourceGopsutil)
	}
}

func (d *DisplayConfig) Validate() error {
	switch d.Mode {
	case DisplayPlain, DisplayTUI, DisplayNone:
		return nil
	default:
		return fmt.Errorf("invalid display mode: %s (valid: %s, %s, %s)", d.Mode, DisplayPlain, DisplayTUI, DisplayNone)
	}
}

func (s *ServerConfig) Validate() error {
	if !s.Enabled {
		return nil
	}

	var errs []error

	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("port must be between 1 and 65535, got %d", s.Port))
	}

	if s.RateLimit.Enabled {
		if s.RateLimit.RequestsPerSecond <= 0 {
			errs = append(errs, fmt.Errorf("rate_limit.requests_per_second must be positive"))
		}
		if s.RateLimit.Burst < 1 {
			errs = append(errs, fmt.Errorf("rate_limit.burst must be at least 1"))
		}
	}

	return errors.Join(errs...)
}
