package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeService(); err != nil {
		return err
	}
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeWorkflow()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeService() error {
	if value, ok := os.LookupEnv(envServerURL); ok && strings.TrimSpace(value) != "" {
		c.Service.BaseURL = value
	}
	c.Service.BaseURL = strings.TrimRight(strings.TrimSpace(c.Service.BaseURL), "/")
	if c.Service.BaseURL == "" {
		c.Service.BaseURL = defaultServiceBaseURL
	}
	var err error
	if c.Service.ExtractPath, err = normalizeEndpointPath(c.Service.ExtractPath, defaultExtractPath); err != nil {
		return fmt.Errorf("service.extract_path: %w", err)
	}
	if c.Service.FeedbackPath, err = normalizeEndpointPath(c.Service.FeedbackPath, defaultFeedbackPath); err != nil {
		return fmt.Errorf("service.feedback_path: %w", err)
	}
	if c.Service.TimeoutSeconds == 0 {
		c.Service.TimeoutSeconds = defaultTimeoutSeconds
	}
	return nil
}

func normalizeEndpointPath(value, fallback string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	if strings.ContainsAny(value, "?#") {
		return "", fmt.Errorf("must not contain a query or fragment: %q", value)
	}
	if !strings.HasPrefix(value, "/") {
		value = "/" + value
	}
	return value, nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv(envExportDir); ok && strings.TrimSpace(value) != "" {
		c.Export.Dir = value
	}
	if strings.TrimSpace(c.Export.Dir) == "" {
		c.Export.Dir = defaultExportDir
	}
	var err error
	if c.Export.Dir, err = expandPath(strings.TrimSpace(c.Export.Dir)); err != nil {
		return fmt.Errorf("export.dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeWorkflow() {
	if value, ok := os.LookupEnv(envClearTitlesOnSelect); ok {
		if parsed, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			c.Workflow.ClearTitlesOnSelect = parsed
		}
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	if value, ok := os.LookupEnv(envLogLevel); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
