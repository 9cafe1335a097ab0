package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryDelay = 50 * time.Millisecond

// FileSaver writes artifacts into a directory.
type FileSaver struct {
	Dir string
}

// NewFileSaver returns a saver rooted at dir.
func NewFileSaver(dir string) *FileSaver {
	return &FileSaver{Dir: dir}
}

// SaveTextArtifact writes content to dir/filename. An exclusive lock next to
// the target serializes concurrent exports; the content is staged in a
// temporary file and renamed into place. The lock and the staging file are
// released on every path.
func (s *FileSaver) SaveTextArtifact(ctx context.Context, filename, content string) (path string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if filename == "" || filepath.Base(filename) != filename {
		return "", fmt.Errorf("save artifact: invalid filename %q", filename)
	}
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory %q: %w", dir, err)
	}
	target := filepath.Join(dir, filename)

	lock := flock.New(target + ".lock")
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return "", fmt.Errorf("lock %s: %w", target, err)
	}
	if !locked {
		return "", fmt.Errorf("lock %s: not acquired", target)
	}
	defer func() {
		unlockErr := lock.Unlock()
		removeErr := os.Remove(lock.Path())
		if errors.Is(removeErr, os.ErrNotExist) {
			removeErr = nil
		}
		if err == nil {
			err = errors.Join(unlockErr, removeErr)
		}
	}()

	tmp, err := os.CreateTemp(dir, "."+filename+".*")
	if err != nil {
		return "", fmt.Errorf("stage artifact: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = io.WriteString(tmp, content); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write artifact: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return "", fmt.Errorf("close artifact: %w", err)
	}
	if err = os.Chmod(tmpPath, 0o644); err != nil {
		return "", fmt.Errorf("chmod artifact: %w", err)
	}
	if err = os.Rename(tmpPath, target); err != nil {
		return "", fmt.Errorf("move artifact into place: %w", err)
	}
	return target, nil
}

// WriterSaver streams artifacts to a writer such as stdout.
type WriterSaver struct {
	W io.Writer
}

// SaveTextArtifact writes content to the underlying writer and reports "-" as the location.
func (s WriterSaver) SaveTextArtifact(_ context.Context, _ string, content string) (string, error) {
	if _, err := io.WriteString(s.W, content); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	return "-", nil
}
