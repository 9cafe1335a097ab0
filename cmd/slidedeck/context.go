package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"slidedeck/internal/config"
	"slidedeck/internal/export"
	"slidedeck/internal/logging"
	"slidedeck/internal/selector"
	"slidedeck/internal/workflow"
)

// stdoutTarget selects the writer saver instead of a directory.
const stdoutTarget = "-"

type commandContext struct {
	configFlag *string
	serverFlag *string

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, serverFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		serverFlag: serverFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.configPath, c.configExists = resolved, exists
		if c.serverFlag != nil {
			if server := strings.TrimSpace(*c.serverFlag); server != "" {
				cfg.Service.BaseURL = strings.TrimRight(server, "/")
				if err := cfg.Validate(); err != nil {
					c.configErr = fmt.Errorf("--server: %w", err)
					return
				}
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// newController builds a workflow controller whose exports go to target: a
// directory, "-" for out, or the configured export directory when empty.
func (c *commandContext) newController(target string, out io.Writer) (*workflow.Controller, *slog.Logger, error) {
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, nil, err
	}
	controller, err := c.newControllerWithLogger(target, out, logger)
	return controller, logger, err
}

func (c *commandContext) newControllerWithLogger(target string, out io.Writer, logger *slog.Logger) (*workflow.Controller, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	var saver export.Saver
	switch target = strings.TrimSpace(target); target {
	case stdoutTarget:
		saver = export.WriterSaver{W: out}
	case "":
		saver = export.NewFileSaver(cfg.Export.Dir)
	default:
		dir, err := config.ExpandPath(target)
		if err != nil {
			return nil, fmt.Errorf("resolve output directory: %w", err)
		}
		saver = export.NewFileSaver(dir)
	}
	return workflow.NewFromConfig(cfg, saver, logger), nil
}

// selectPath loads the file at path and hands it to the controller.
func selectPath(ctx context.Context, controller *workflow.Controller, path string) error {
	candidate, err := selector.Load(path)
	if err != nil {
		return err
	}
	return controller.Select(ctx, candidate)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
