package selector_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"slidedeck/internal/logging"
	"slidedeck/internal/selector"
	"slidedeck/internal/services"
)

func TestSelectRejectsNonPresentationNames(t *testing.T) {
	sel := selector.New(logging.NewNop())
	names := []string{
		"deck.ppt",
		"deck.PPTX",
		"deck.pptx.pdf",
		"deck",
		"",
		".pptx.txt",
		"notes.txt",
	}
	for _, name := range names {
		doc, err := sel.Select(context.Background(), selector.Candidate{Name: name, Content: []byte("x")})
		if doc != nil {
			t.Fatalf("%q: expected no document, got %+v", name, doc)
		}
		if !errors.Is(err, services.ErrValidation) {
			t.Fatalf("%q: expected validation error, got %v", name, err)
		}
		if err.Error() != selector.MessageInvalidType {
			t.Fatalf("%q: unexpected message %q", name, err.Error())
		}
	}
}

func TestSelectAcceptsPresentation(t *testing.T) {
	sel := selector.New(nil)
	content := []byte("PK\x03\x04")
	doc, err := sel.Select(context.Background(), selector.Candidate{Name: "Quarterly Review.pptx", Content: content})
	if err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	if doc.Name != "Quarterly Review.pptx" {
		t.Fatalf("unexpected name %q", doc.Name)
	}
	if doc.Size() != len(content) {
		t.Fatalf("unexpected size %d", doc.Size())
	}

	again, err := sel.Select(context.Background(), selector.Candidate{Name: "Quarterly Review.pptx", Content: content})
	if err != nil || again.Name != doc.Name {
		t.Fatalf("expected re-selection to succeed identically, got %+v %v", again, err)
	}
}

func TestLoadReadsOnlyValidNames(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "deck.pptx")
	if err := os.WriteFile(valid, []byte("slides"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	candidate, err := selector.Load(valid)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if candidate.Name != "deck.pptx" || string(candidate.Content) != "slides" {
		t.Fatalf("unexpected candidate %+v", candidate)
	}

	missingInvalid := filepath.Join(dir, "missing.docx")
	candidate, err = selector.Load(missingInvalid)
	if err != nil {
		t.Fatalf("expected invalid name to skip reading, got %v", err)
	}
	if candidate.Name != "missing.docx" || candidate.Content != nil {
		t.Fatalf("unexpected candidate %+v", candidate)
	}

	if _, err := selector.Load(filepath.Join(dir, "absent.pptx")); err == nil {
		t.Fatal("expected read error for missing presentation")
	}
}
