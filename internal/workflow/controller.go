package workflow

import (
	"context"
	"log/slog"
	"sync"

	"slidedeck/internal/export"
	"slidedeck/internal/logging"
	"slidedeck/internal/selector"
	"slidedeck/internal/services"
)

const (
	LifecycleExtraction = "extraction"
	LifecycleFeedback   = "feedback"
)

// Options tunes controller behaviour.
type Options struct {
	// ClearTitlesOnSelect drops the previous titles and resets extraction to
	// Idle on every successful selection. By default titles stay until the
	// next extraction completes.
	ClearTitlesOnSelect bool
}

// Controller composes selection, extraction, feedback, and export. It is the
// only writer of the current document and the only reader of both
// lifecycles' results.
type Controller struct {
	selector *selector.Selector
	upload   *UploadOrchestrator
	feedback *FeedbackOrchestrator
	exporter *export.Exporter
	opts     Options
	logger   *slog.Logger

	mu           sync.Mutex
	document     *selector.Document
	selectionErr string
}

// NewController wires the components together.
func NewController(sel *selector.Selector, upload *UploadOrchestrator, feedback *FeedbackOrchestrator, exporter *export.Exporter, opts Options, logger *slog.Logger) *Controller {
	return &Controller{
		selector: sel,
		upload:   upload,
		feedback: feedback,
		exporter: exporter,
		opts:     opts,
		logger:   logging.NewComponentLogger(logger, "workflow"),
	}
}

// Select validates candidate and makes it the current document. A rejected
// candidate discards any previously held document. An accepted one clears
// validation errors and the feedback result; the previous titles stay until
// a new extraction completes unless ClearTitlesOnSelect is set.
func (c *Controller) Select(ctx context.Context, candidate selector.Candidate) error {
	doc, err := c.selector.Select(ctx, candidate)

	c.mu.Lock()
	if err != nil {
		c.document = nil
		c.selectionErr = err.Error()
		c.mu.Unlock()
		return err
	}
	c.document = doc
	c.selectionErr = ""
	c.mu.Unlock()

	c.upload.DismissValidation()
	c.feedback.Discard()
	if c.opts.ClearTitlesOnSelect {
		c.upload.Reset()
	}
	c.logger.Info("document selected",
		logging.String(logging.FieldDocument, doc.Name),
		logging.Int("bytes", doc.Size()),
	)
	return nil
}

// Submit extracts titles from the current document.
func (c *Controller) Submit(ctx context.Context) error {
	return c.upload.Submit(ctx, c.currentDocument())
}

// RequestFeedback asks for feedback on the current titles.
func (c *Controller) RequestFeedback(ctx context.Context, audience string) error {
	return c.feedback.RequestFeedback(ctx, c.upload.Titles(), audience)
}

// Export saves the current titles. Without titles there is nothing to offer,
// so a precondition error is returned and nothing is written.
func (c *Controller) Export(ctx context.Context) (export.Artifact, error) {
	titles := c.upload.Titles()
	if titles == "" {
		return export.Artifact{}, services.NewRequestError(services.KindPrecondition, MessageNothingToExport, nil)
	}
	return c.exporter.Export(ctx, titles)
}

// Snapshot is everything a view needs to render the workflow.
type Snapshot struct {
	Document       string
	DocumentBytes  int
	SelectionError string

	Extraction Lifecycle
	Titles     string

	Feedback     Lifecycle
	FeedbackText string
	Paragraphs   []string

	CanSubmit   bool
	CanFeedback bool
	CanExport   bool
}

// Snapshot returns a consistent copy of the current workflow state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	doc := c.document
	selectionErr := c.selectionErr
	c.mu.Unlock()

	extraction, titles := c.upload.state.snapshot()
	feedback, text := c.feedback.state.snapshot()

	snap := Snapshot{
		SelectionError: selectionErr,
		Extraction:     extraction,
		Titles:         titles,
		Feedback:       feedback,
		FeedbackText:   text,
		Paragraphs:     Paragraphs(text),
		CanSubmit:      doc != nil && extraction.State != StateLoading,
		CanFeedback:    titles != "" && feedback.State != StateLoading,
		CanExport:      titles != "",
	}
	if doc != nil {
		snap.Document = doc.Name
		snap.DocumentBytes = doc.Size()
	}
	return snap
}

func (c *Controller) currentDocument() *selector.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.document
}
