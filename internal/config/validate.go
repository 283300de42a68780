package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validatePoll(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateAPI() error {
	parsed, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("api.base_url: unsupported scheme %q (expected http or https)", parsed.Scheme)
	}
	if parsed.Host == "" {
		return errors.New("api.base_url: host is required")
	}
	if c.API.StatusTimeoutSeconds > c.API.TimeoutSeconds {
		return fmt.Errorf("api.status_timeout_seconds (%d) must not exceed api.timeout_seconds (%d)", c.API.StatusTimeoutSeconds, c.API.TimeoutSeconds)
	}
	return nil
}

func (c *Config) validatePoll() error {
	if c.Poll.TimeoutSeconds < c.Poll.IntervalSeconds {
		return fmt.Errorf("poll.timeout_seconds (%d) must be at least poll.interval_seconds (%d)", c.Poll.TimeoutSeconds, c.Poll.IntervalSeconds)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
