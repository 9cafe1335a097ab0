// Package services defines shared utilities consumed by the workflow
// orchestrators and the remote service client.
//
// Key responsibilities:
//   - Context helpers that stamp lifecycle names, document filenames, and
//     correlation identifiers for logging.
//   - The failure taxonomy (validation, precondition, network, server) as
//     sentinel markers plus RequestError, which carries the user-facing
//     message alongside the marker.
//   - The Wrap helper and ExitCode mapping so command failures surface with
//     consistent text and process status.
package services
