package workflow

import (
	"context"
	"log/slog"
	"time"

	"slidedeck/internal/logging"
	"slidedeck/internal/services"
	"slidedeck/internal/services/slideapi"
)

// FeedbackProvider returns narrative feedback for a set of titles.
type FeedbackProvider interface {
	GetFeedback(ctx context.Context, titles, audience string) slideapi.Result[string]
}

// FeedbackOrchestrator drives the feedback request lifecycle. It never
// touches the extraction lifecycle.
type FeedbackOrchestrator struct {
	client FeedbackProvider
	logger *slog.Logger
	state  *lifecycle
}

// NewFeedbackOrchestrator constructs an orchestrator over the feedback client.
func NewFeedbackOrchestrator(client FeedbackProvider, logger *slog.Logger) *FeedbackOrchestrator {
	return &FeedbackOrchestrator{
		client: client,
		logger: logging.NewComponentLogger(logger, "feedback"),
		state:  newLifecycle(LifecycleFeedback),
	}
}

// RequestFeedback asks for feedback on titles for the given audience. Blank
// audiences become DefaultAudience. Failures are recorded on the feedback
// lifecycle and returned; a call made while a request is pending returns
// ErrBusy and changes nothing.
func (o *FeedbackOrchestrator) RequestFeedback(ctx context.Context, titles, audienceInput string) error {
	var precondition *services.RequestError
	if titles == "" {
		precondition = services.NewRequestError(services.KindPrecondition, MessageNoTitles, nil)
	}
	if err := o.state.start(precondition); err != nil {
		o.logger.Info("feedback rejected", logging.Error(err))
		return err
	}

	audience := NormalizeAudience(audienceInput)
	ctx = services.WithLifecycle(ctx, LifecycleFeedback)
	logger := logging.WithContext(ctx, o.logger)
	logger.Info("feedback started", logging.String("audience", audience))
	start := time.Now()

	result := o.client.GetFeedback(ctx, titles, audience)
	if !result.OK() {
		reqErr := failureError(result.Failure, FallbackFeedbackError)
		o.state.fail(reqErr)
		logger.Warn("feedback failed",
			logging.String("kind", string(reqErr.Kind)),
			logging.String("message", reqErr.Message),
			logging.Duration("elapsed", time.Since(start)),
		)
		return reqErr
	}

	o.state.succeed(result.Value)
	logger.Info("feedback finished",
		logging.Int("paragraphs", len(Paragraphs(result.Value))),
		logging.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// State returns the feedback lifecycle.
func (o *FeedbackOrchestrator) State() Lifecycle {
	view, _ := o.state.snapshot()
	return view
}

// Feedback returns the current feedback text, empty when none.
func (o *FeedbackOrchestrator) Feedback() string {
	return o.state.current()
}

// Discard drops the feedback text and error message, keeping the state label.
func (o *FeedbackOrchestrator) Discard() {
	o.state.discard()
}
