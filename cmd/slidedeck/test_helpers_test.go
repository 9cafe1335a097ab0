package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"slidedeck/internal/testsupport"
)

type cliTestEnv struct {
	svc       *testsupport.FakeService
	workDir   string
	deckPath  string
	exportDir string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	workDir := filepath.Join(base, "work")
	for _, dir := range []string{homeDir, workDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("SLIDEDECK_SERVER_URL", "")
	t.Setenv("SLIDEDECK_EXPORT_DIR", "")
	t.Setenv("SLIDEDECK_CLEAR_TITLES_ON_SELECT", "")
	t.Setenv("SLIDEDECK_LOG_LEVEL", "error")
	t.Chdir(workDir)

	return &cliTestEnv{
		svc:       testsupport.NewFakeService(t),
		workDir:   workDir,
		deckPath:  testsupport.WriteDeck(t, workDir, "deck.pptx"),
		exportDir: filepath.Join(base, "exports"),
	}
}

// runCLI executes the command tree against the fake service.
func runCLI(t *testing.T, env *cliTestEnv, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--server", env.svc.URL()}, args...))

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\noutput:\n%s", needle, haystack)
	}
}
