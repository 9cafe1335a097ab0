package workflow

import (
	"strings"

	"slidedeck/internal/services"
	"slidedeck/internal/services/slideapi"
)

const (
	MessageNoDocument       = "Please select a file"
	MessageNoTitles         = "Please extract titles first before requesting feedback"
	MessageNothingToExport  = "Please extract titles first before saving"
	MessageNetwork          = "Network error - Please check if the server is running and try again"
	FallbackExtractionError = "Error processing file. Please try again."
	FallbackFeedbackError   = "Error getting feedback. Please try again."
	serverErrorPrefix       = "Error: "
)

// failureError converts a client failure into the user-facing error. Server
// failures take the first non-empty source among the server detail, the
// transport message, and the endpoint fallback.
func failureError(failure *slideapi.Failure, fallback string) *services.RequestError {
	if failure.Kind == services.KindNetwork {
		return services.NewRequestError(services.KindNetwork, MessageNetwork, failure.Cause)
	}
	message := serverErrorPrefix + firstMessage(failure.Detail, failure.TransportMessage, fallback)
	return services.NewRequestError(services.KindServer, message, failure.Cause)
}

func firstMessage(sources ...string) string {
	for _, source := range sources {
		if trimmed := strings.TrimSpace(source); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
