package selector

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"slidedeck/internal/logging"
	"slidedeck/internal/services"
)

const (
	// Extension is the only accepted document suffix. The comparison is case-sensitive.
	Extension = ".pptx"

	// MessageInvalidType is shown when a candidate is not a presentation.
	MessageInvalidType = "Please select a .pptx file"
)

// Candidate is a file the user offered for upload.
type Candidate struct {
	Name    string
	Content []byte
}

// Document is a validated presentation ready for extraction.
type Document struct {
	Name    string
	Content []byte
}

// Size returns the document payload size in bytes.
func (d *Document) Size() int {
	if d == nil {
		return 0
	}
	return len(d.Content)
}

// Selector validates candidates before they become the current document.
type Selector struct {
	logger *slog.Logger
}

// New constructs a Selector.
func New(logger *slog.Logger) *Selector {
	return &Selector{logger: logging.NewComponentLogger(logger, "selector")}
}

// Valid reports whether name carries the accepted presentation suffix.
func Valid(name string) bool {
	return strings.HasSuffix(name, Extension)
}

// Select validates the candidate and returns it as a Document. Re-selecting
// the same candidate re-runs the same validation.
func (s *Selector) Select(ctx context.Context, candidate Candidate) (*Document, error) {
	logger := logging.WithContext(ctx, s.logger)
	if !Valid(candidate.Name) {
		logger.Info("candidate rejected",
			logging.String("name", candidate.Name),
			logging.String("reason", "unsupported extension"),
		)
		return nil, services.NewRequestError(services.KindValidation, MessageInvalidType, nil)
	}
	logger.Debug("candidate accepted",
		logging.String("name", candidate.Name),
		logging.Int("bytes", len(candidate.Content)),
	)
	return &Document{Name: candidate.Name, Content: candidate.Content}, nil
}

// Load reads a candidate from disk. The file is only read when its name
// passes validation, so rejected selections never touch the content.
func Load(path string) (Candidate, error) {
	name := filepath.Base(path)
	if !Valid(name) {
		return Candidate{Name: name}, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return Candidate{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Candidate{Name: name, Content: content}, nil
}
