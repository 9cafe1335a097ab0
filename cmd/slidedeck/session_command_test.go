package main

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"slidedeck/internal/testsupport"
)

func TestSessionRunsFullWorkflow(t *testing.T) {
	env := setupCLITestEnv(t)

	script := strings.Join([]string{
		"status",
		"select " + env.deckPath,
		"extract",
		"wait",
		"feedback board",
		"wait",
		"status",
		"save",
		"quit",
	}, "\n")
	out, _, err := runCLI(t, env, script, "session", "--output", env.exportDir)
	if err != nil {
		t.Fatalf("session: %v", err)
	}

	requireContains(t, out, "No file selected")
	requireContains(t, out, "Selected deck.pptx")
	requireContains(t, out, "Extracted 3 titles from deck.pptx:")
	requireContains(t, out, "B")
	requireContains(t, out, "Feedback for board:")
	requireContains(t, out, "Para2")
	requireContains(t, out, "[OK] 3 titles")
	requireContains(t, out, "Saved slide-titles.txt")

	if env.svc.LastAudience() != "board" {
		t.Fatalf("unexpected audience %q", env.svc.LastAudience())
	}
	if _, err := os.Stat(filepath.Join(env.exportDir, "slide-titles.txt")); err != nil {
		t.Fatalf("expected artifact: %v", err)
	}
}

func TestSessionReportsPreconditions(t *testing.T) {
	env := setupCLITestEnv(t)

	script := strings.Join([]string{
		"extract",
		"wait",
		"feedback",
		"wait",
		"save",
		"select notes.key",
		"status",
		"bogus",
	}, "\n")
	out, _, err := runCLI(t, env, script, "session")
	if err != nil {
		t.Fatalf("session: %v", err)
	}

	requireContains(t, out, "Please select a file")
	requireContains(t, out, "Please extract titles first before requesting feedback")
	requireContains(t, out, "Please extract titles first before saving")
	requireContains(t, out, "Please select a .pptx file")
	requireContains(t, out, "[ERROR] Please select a .pptx file")
	requireContains(t, out, `Unknown command "bogus"`)
}

func TestSessionFeedbackUsesDefaultAudience(t *testing.T) {
	env := setupCLITestEnv(t)

	script := "select " + env.deckPath + "\nextract\nwait\nfeedback\n"
	out, _, err := runCLI(t, env, script, "session")
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	requireContains(t, out, "Feedback for general audience:")
	if env.svc.LastAudience() != "general audience" {
		t.Fatalf("unexpected audience %q", env.svc.LastAudience())
	}
}

func TestSessionNamesDocumentThatWasExtracted(t *testing.T) {
	env := setupCLITestEnv(t)
	other := testsupport.WriteDeck(t, env.workDir, "other.pptx")
	reply := testsupport.RespondJSON(http.StatusOK, map[string]string{"titles": "A\nB\nC"})
	env.svc.SetExtract(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		reply(w, r)
	})

	script := strings.Join([]string{
		"select " + env.deckPath,
		"extract",
		"select " + other,
		"wait",
	}, "\n")
	out, _, err := runCLI(t, env, script, "session")
	if err != nil {
		t.Fatalf("session: %v", err)
	}

	requireContains(t, out, "Selected other.pptx")
	requireContains(t, out, "Extracted 3 titles from deck.pptx:")
	if strings.Contains(out, "from other.pptx") {
		t.Fatalf("extraction attributed to the later selection:\n%s", out)
	}
}
