package export

import (
	"context"
	"log/slog"

	"slidedeck/internal/logging"
)

const (
	// Filename is the fixed name of the saved titles artifact.
	Filename = "slide-titles.txt"
	// MIMEType is the media type of the saved titles artifact.
	MIMEType = "text/plain"
)

// Artifact is a text file produced from an extraction result.
type Artifact struct {
	Filename string
	MIMEType string
	Content  string
	// Location is where the saver put the artifact (a path, or "-" for a stream).
	Location string
}

// Saver is the platform save-as capability.
type Saver interface {
	SaveTextArtifact(ctx context.Context, filename, content string) (string, error)
}

// Exporter turns extraction results into saved artifacts.
type Exporter struct {
	saver  Saver
	logger *slog.Logger
}

// New constructs an Exporter over the given saver.
func New(saver Saver, logger *slog.Logger) *Exporter {
	return &Exporter{saver: saver, logger: logging.NewComponentLogger(logger, "export")}
}

// Export saves titles verbatim as slide-titles.txt. Callers only offer export
// when titles are non-empty; an empty string is written as an empty file.
// The returned error comes from the saver's I/O only.
func (e *Exporter) Export(ctx context.Context, titles string) (Artifact, error) {
	artifact := Artifact{Filename: Filename, MIMEType: MIMEType, Content: titles}
	location, err := e.saver.SaveTextArtifact(ctx, artifact.Filename, artifact.Content)
	logger := logging.WithContext(ctx, e.logger)
	if err != nil {
		logger.Error("save artifact failed", logging.String("filename", artifact.Filename), logging.Error(err))
		return artifact, err
	}
	artifact.Location = location
	logger.Info("artifact saved",
		logging.String("filename", artifact.Filename),
		logging.String("location", location),
		logging.Int("bytes", len(titles)),
	)
	return artifact, nil
}
