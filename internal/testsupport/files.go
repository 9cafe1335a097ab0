package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// deckMagic is the zip local-file header every .pptx starts with.
var deckMagic = []byte("PK\x03\x04")

// WriteDeck writes a small stand-in presentation named name into dir and
// returns its path. The content is never parsed; only the name matters.
func WriteDeck(t testing.TB, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	WriteFile(t, path, deckMagic, 64)
	return path
}

// WriteFile fills the target path with prefix followed by a repeating pattern
// up to size bytes. A size smaller than the prefix writes just the prefix.
func WriteFile(t testing.TB, path string, prefix []byte, size int) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	content := append([]byte(nil), prefix...)
	for len(content) < size {
		content = append(content, 0x42)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
