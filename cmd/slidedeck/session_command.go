package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"slidedeck/internal/logging"
	"slidedeck/internal/services"
	"slidedeck/internal/workflow"
)

const sessionPrompt = "slidedeck> "

const sessionHelp = `Commands:
  select FILE        choose the .pptx file to work on
  extract            extract slide titles from the selected file
  feedback [AUDIENCE] request feedback on the titles (default: general audience)
  titles             print the current titles
  table              print the current titles as a numbered table
  save               save the titles to slide-titles.txt
  status             show the document and request states
  wait               block until running requests finish
  help               show this help
  quit               leave the session`

func newSessionCommand(ctx *commandContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Run an interactive extraction session",
		Long: "Start a line-oriented shell around one workflow. Extraction and feedback run in the\n" +
			"background so status can be checked while a request is in flight.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			sessionID := uuid.NewString()
			logger = logging.WithSessionID(logger, sessionID)

			out := &lockedWriter{w: cmd.OutOrStdout()}
			controller, err := ctx.newControllerWithLogger(output, out, logger)
			if err != nil {
				return err
			}

			s := newSession(cmd.Context(), controller, logger, out, shouldColorize(cmd.OutOrStdout()))
			return s.run(cmd.InOrStdin())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Directory for slide-titles.txt, or - for stdout")
	return cmd
}

// lockedWriter serializes writes from the prompt loop and background requests.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

type session struct {
	controller *workflow.Controller
	logger     *slog.Logger
	out        io.Writer
	colorize   bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	closed atomic.Bool
}

func newSession(parent context.Context, controller *workflow.Controller, logger *slog.Logger, out io.Writer, colorize bool) *session {
	ctx, cancel := context.WithCancel(parent)
	return &session{
		controller: controller,
		logger:     logging.NewComponentLogger(logger, "session"),
		out:        out,
		colorize:   colorize,
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (s *session) run(in io.Reader) error {
	defer s.cancel()
	s.logger.Info("session started")
	s.print("Type help for commands.")

	scanner := bufio.NewScanner(in)
	s.prompt()
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			if quit := s.dispatch(line); quit {
				s.shutdown()
				return nil
			}
		}
		s.prompt()
	}
	if err := scanner.Err(); err != nil {
		s.shutdown()
		return fmt.Errorf("read input: %w", err)
	}
	// End of input lets pending requests land before exiting.
	s.wg.Wait()
	s.logger.Info("session finished")
	return nil
}

func (s *session) dispatch(line string) bool {
	verb, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(verb) {
	case "select":
		s.selectFile(rest)
	case "extract":
		s.extract()
	case "feedback":
		s.feedback(rest)
	case "titles":
		s.showTitles(false)
	case "table":
		s.showTitles(true)
	case "save":
		s.save()
	case "status":
		s.print(renderSnapshot(s.controller.Snapshot(), s.colorize)...)
	case "wait":
		s.wg.Wait()
	case "help", "?":
		s.print(sessionHelp)
	case "quit", "exit":
		return true
	default:
		s.print(fmt.Sprintf("Unknown command %q. Type help for commands.", verb))
	}
	return false
}

func (s *session) selectFile(path string) {
	if path == "" {
		s.print("Usage: select FILE")
		return
	}
	if err := selectPath(s.ctx, s.controller, path); err != nil {
		s.print(err.Error())
		return
	}
	snap := s.controller.Snapshot()
	s.print(fmt.Sprintf("Selected %s (%d bytes)", snap.Document, snap.DocumentBytes))
}

func (s *session) extract() {
	snap := s.controller.Snapshot()
	if snap.Extraction.State == workflow.StateLoading {
		s.print("Extraction is already running.")
		return
	}
	source := snap.Document
	if source != "" {
		s.print(fmt.Sprintf("Extracting titles from %s: processing...", source))
	}
	s.background("extraction", s.controller.Submit, func() {
		snap := s.controller.Snapshot()
		lines := []string{fmt.Sprintf("Extracted %s from %s:", pluralize(len(workflow.TitleLines(snap.Titles)), "title"), source)}
		s.print(append(lines, strings.TrimRight(snap.Titles, "\n"))...)
	})
}

func (s *session) feedback(audience string) {
	snap := s.controller.Snapshot()
	if snap.Feedback.State == workflow.StateLoading {
		s.print("Feedback is already running.")
		return
	}
	normalized := workflow.NormalizeAudience(audience)
	if snap.CanFeedback {
		s.print(fmt.Sprintf("Requesting feedback for %s: processing...", normalized))
	}
	s.background("feedback", func(ctx context.Context) error {
		return s.controller.RequestFeedback(ctx, audience)
	}, func() {
		snap := s.controller.Snapshot()
		lines := append([]string{fmt.Sprintf("Feedback for %s:", normalized)}, snap.Paragraphs...)
		s.print(lines...)
	})
}

func (s *session) showTitles(asTable bool) {
	titles := s.controller.Snapshot().Titles
	if titles == "" {
		s.print("No titles yet. Run extract first.")
		return
	}
	var buf strings.Builder
	renderTitles(&buf, titles, asTable)
	s.print(strings.TrimRight(buf.String(), "\n"))
}

func (s *session) save() {
	artifact, err := s.controller.Export(s.ctx)
	if err != nil {
		s.print(err.Error())
		return
	}
	if artifact.Location == stdoutTarget {
		s.print("")
		return
	}
	s.print(fmt.Sprintf("Saved %s to %s", artifact.Filename, artifact.Location))
}

// background runs one request off the prompt loop. Results that land after
// the session has shut down are dropped.
func (s *session) background(lifecycle string, run func(context.Context) error, onSuccess func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		err := run(s.ctx)
		if s.closed.Load() {
			return
		}
		switch {
		case err == nil:
			onSuccess()
		case errors.Is(err, services.ErrBusy):
			s.print(fmt.Sprintf("%s is already running.", heading(lifecycle)))
		default:
			s.print(err.Error())
		}
		s.prompt()
	}()
}

func (s *session) shutdown() {
	s.closed.Store(true)
	s.cancel()
	s.wg.Wait()
	s.logger.Info("session closed")
}

func (s *session) print(lines ...string) {
	if len(lines) == 0 {
		return
	}
	_, _ = io.WriteString(s.out, strings.Join(lines, "\n")+"\n")
}

func (s *session) prompt() {
	_, _ = io.WriteString(s.out, sessionPrompt)
}
