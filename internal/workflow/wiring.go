package workflow

import (
	"log/slog"

	"slidedeck/internal/config"
	"slidedeck/internal/export"
	"slidedeck/internal/selector"
	"slidedeck/internal/services/slideapi"
)

// NewFromConfig builds a controller talking to the configured service and
// saving artifacts through saver.
func NewFromConfig(cfg *config.Config, saver export.Saver, logger *slog.Logger, clientOpts ...slideapi.Option) *Controller {
	opts := append([]slideapi.Option{slideapi.WithLogger(logger)}, clientOpts...)
	client := slideapi.NewClient(slideapi.Config{
		ExtractURL:  cfg.ExtractURL(),
		FeedbackURL: cfg.FeedbackURL(),
		Timeout:     cfg.RequestTimeout(),
	}, opts...)

	return NewController(
		selector.New(logger),
		NewUploadOrchestrator(client, logger),
		NewFeedbackOrchestrator(client, logger),
		export.New(saver, logger),
		Options{ClearTitlesOnSelect: cfg.Workflow.ClearTitlesOnSelect},
		logger,
	)
}
