package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"slidedeck/internal/workflow"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 12
	statusIndent     = "  "
)

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := statusKindLabel(kind)
	if message != "" {
		statusText = fmt.Sprintf("[%s] %s", statusText, message)
	} else {
		statusText = fmt.Sprintf("[%s]", statusText)
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	if colorize {
		if color := statusKindColor(kind); color != "" {
			return color + base + ansiReset
		}
	}
	return base
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WAIT"
	case statusError:
		return "ERROR"
	default:
		return "IDLE"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	case statusInfo:
		return ansiBlue
	default:
		return ""
	}
}

func statusKindFromState(state workflow.RequestState) statusKind {
	switch state {
	case workflow.StateSuccess:
		return statusOK
	case workflow.StateLoading:
		return statusWarn
	case workflow.StateError:
		return statusError
	default:
		return statusInfo
	}
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", heading(strings.TrimSpace(title)))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

// renderSnapshot draws the document and both lifecycles.
func renderSnapshot(snap workflow.Snapshot, colorize bool) []string {
	lines := renderSectionHeader("workflow status", colorize)

	switch {
	case snap.SelectionError != "":
		lines = append(lines, renderStatusLine("Document", statusError, snap.SelectionError, colorize))
	case snap.Document == "":
		lines = append(lines, renderStatusLine("Document", statusInfo, "No file selected", colorize))
	default:
		lines = append(lines, renderStatusLine("Document", statusOK, fmt.Sprintf("%s (%d bytes)", snap.Document, snap.DocumentBytes), colorize))
	}

	lines = append(lines, renderLifecycleLine("Extraction", snap.Extraction, extractionDetail(snap), colorize))
	lines = append(lines, renderLifecycleLine("Feedback", snap.Feedback, feedbackDetail(snap), colorize))
	return lines
}

func renderLifecycleLine(label string, lc workflow.Lifecycle, detail string, colorize bool) string {
	message := detail
	switch {
	case lc.State == workflow.StateLoading:
		message = "processing..."
	case lc.Message != "":
		message = lc.Message
	}
	return renderStatusLine(label, statusKindFromState(lc.State), message, colorize)
}

func extractionDetail(snap workflow.Snapshot) string {
	if snap.Titles == "" {
		return ""
	}
	return pluralize(len(workflow.TitleLines(snap.Titles)), "title")
}

func feedbackDetail(snap workflow.Snapshot) string {
	if snap.FeedbackText == "" {
		return ""
	}
	return pluralize(len(snap.Paragraphs), "line")
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
