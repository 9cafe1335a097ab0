package workflow

import (
	"context"
	"log/slog"
	"time"

	"slidedeck/internal/logging"
	"slidedeck/internal/selector"
	"slidedeck/internal/services"
	"slidedeck/internal/services/slideapi"
)

// Extractor uploads a presentation and returns its slide titles.
type Extractor interface {
	ExtractTitles(ctx context.Context, filename string, content []byte) slideapi.Result[string]
}

// UploadOrchestrator drives the extraction request lifecycle.
type UploadOrchestrator struct {
	client Extractor
	logger *slog.Logger
	state  *lifecycle
}

// NewUploadOrchestrator constructs an orchestrator over the extraction client.
func NewUploadOrchestrator(client Extractor, logger *slog.Logger) *UploadOrchestrator {
	return &UploadOrchestrator{
		client: client,
		logger: logging.NewComponentLogger(logger, "upload"),
		state:  newLifecycle(LifecycleExtraction),
	}
}

// Submit uploads doc and stores the returned titles. It blocks until the
// request succeeds, fails, or times out. Every failure is recorded on the
// extraction lifecycle and also returned; a call made while a request is
// pending returns ErrBusy and changes nothing.
func (o *UploadOrchestrator) Submit(ctx context.Context, doc *selector.Document) error {
	var precondition *services.RequestError
	if doc == nil {
		precondition = services.NewRequestError(services.KindValidation, MessageNoDocument, nil)
	}
	if err := o.state.start(precondition); err != nil {
		o.logger.Info("submit rejected", logging.Error(err))
		return err
	}

	ctx = services.WithLifecycle(ctx, LifecycleExtraction)
	ctx = services.WithDocument(ctx, doc.Name)
	logger := logging.WithContext(ctx, o.logger)
	logger.Info("extraction started", logging.Int("bytes", doc.Size()))
	start := time.Now()

	result := o.client.ExtractTitles(ctx, doc.Name, doc.Content)
	if !result.OK() {
		reqErr := failureError(result.Failure, FallbackExtractionError)
		o.state.fail(reqErr)
		logger.Warn("extraction failed",
			logging.String("kind", string(reqErr.Kind)),
			logging.String("message", reqErr.Message),
			logging.Duration("elapsed", time.Since(start)),
		)
		return reqErr
	}

	o.state.succeed(result.Value)
	logger.Info("extraction finished",
		logging.Int("titles", len(TitleLines(result.Value))),
		logging.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// State returns the extraction lifecycle.
func (o *UploadOrchestrator) State() Lifecycle {
	view, _ := o.state.snapshot()
	return view
}

// Titles returns the current extraction result, empty when none.
func (o *UploadOrchestrator) Titles() string {
	return o.state.current()
}

// Reset drops the extraction result and returns the lifecycle to Idle.
func (o *UploadOrchestrator) Reset() {
	o.state.reset()
}

// DismissValidation clears a "no file selected" error once a file is chosen.
func (o *UploadOrchestrator) DismissValidation() {
	o.state.dismissValidation()
}
