package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"podcastctl/internal/config"
	"podcastctl/internal/logging"
	"podcastctl/internal/services"
	"podcastctl/internal/services/podcast"
)

type rootFlags struct {
	config   string
	apiURL   string
	logLevel string
}

type commandContext struct {
	flags *rootFlags

	configOnce sync.Once
	config     *config.Config
	logger     *slog.Logger
	closeLog   func() error
	configErr  error
}

func newCommandContext(flags *rootFlags) *commandContext {
	return &commandContext{flags: flags}
}

// ensureConfig loads configuration once, applies flag overrides and builds the
// logger. Logs go to the command's stderr so stdout stays parseable.
func (c *commandContext) ensureConfig(cmd *cobra.Command) (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "cli", "load config", "", err)
			return
		}
		if url := strings.TrimSpace(c.flags.apiURL); url != "" {
			cfg.API.BaseURL = strings.TrimRight(url, "/")
		}
		if level := strings.TrimSpace(c.flags.logLevel); level != "" {
			cfg.Logging.Level = strings.ToLower(level)
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "cli", "validate config", "", err)
			return
		}
		logger, closeLog, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr())
		if err != nil {
			c.configErr = fmt.Errorf("init logging: %w", err)
			return
		}
		c.config = cfg
		c.logger = logger
		c.closeLog = closeLog
	})
	return c.config, c.configErr
}

// close releases the log file opened by ensureConfig, if any.
func (c *commandContext) close() error {
	if c.closeLog == nil {
		return nil
	}
	err := c.closeLog()
	c.closeLog = nil
	return err
}

func (c *commandContext) loggerFor(component string) *slog.Logger {
	return logging.NewComponentLogger(c.logger, component)
}

func (c *commandContext) newClient() *podcast.Client {
	cfg := c.config
	return podcast.NewClient(podcast.Config{
		BaseURL:         cfg.API.BaseURL,
		Timeout:         cfg.RequestTimeout(),
		StatusTimeout:   cfg.StatusTimeout(),
		DocumentTimeout: cfg.DocumentTimeout(),
		UserAgent:       cfg.API.UserAgent,
	}, podcast.WithLogger(c.logger))
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func requireID(args []string) (string, error) {
	id := strings.TrimSpace(args[0])
	if id == "" {
		return "", services.Wrap(services.ErrValidation, "cli", "parse args", "podcast id required", nil)
	}
	return id, nil
}
