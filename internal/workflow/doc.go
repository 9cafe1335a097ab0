// Package workflow sequences document selection, title extraction, feedback,
// and export.
//
// Two orchestrators each own one request lifecycle (Idle, Loading, Success,
// Error): UploadOrchestrator for extraction and FeedbackOrchestrator for
// feedback. Neither writes the other's state. The Controller holds the
// current document, routes user actions to the right orchestrator, and
// enforces ordering: feedback needs titles, export needs titles, and a
// lifecycle that is Loading rejects a second request with ErrBusy.
//
// Orchestrator calls block for one request. Surfaces that must stay
// responsive run them on a goroutine and render Controller.Snapshot.
package workflow
