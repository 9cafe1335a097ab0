package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrPrecondition  = errors.New("precondition failed")
	ErrNetwork       = errors.New("network error")
	ErrServer        = errors.New("server error")
	ErrBusy          = errors.New("request already in flight")
	ErrConfiguration = errors.New("configuration error")
)

// Kind classifies a failure surfaced to the user.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindPrecondition Kind = "precondition"
	KindNetwork      Kind = "network"
	KindServer       Kind = "server"
)

// Marker returns the sentinel error matching the kind.
func (k Kind) Marker() error {
	switch k {
	case KindValidation:
		return ErrValidation
	case KindPrecondition:
		return ErrPrecondition
	case KindNetwork:
		return ErrNetwork
	case KindServer:
		return ErrServer
	default:
		return ErrServer
	}
}

// RequestError carries the human-readable message shown for a failed action.
// It matches its kind's sentinel marker and the underlying cause with errors.Is.
type RequestError struct {
	Kind    Kind
	Message string
	Err     error
}

// NewRequestError builds a RequestError for the given kind.
func NewRequestError(kind Kind, message string, err error) *RequestError {
	return &RequestError{Kind: kind, Message: message, Err: err}
}

func (e *RequestError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *RequestError) Unwrap() []error {
	if e == nil {
		return nil
	}
	if e.Err == nil {
		return []error{e.Kind.Marker()}
	}
	return []error{e.Kind.Marker(), e.Err}
}

// KindOf reports the failure kind carried by err. The second value is false
// when err holds no RequestError.
func KindOf(err error) (Kind, bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Kind, true
	}
	return "", false
}

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrServer
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ExitCode maps a command failure to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrValidation), errors.Is(err, ErrPrecondition):
		return 2
	case errors.Is(err, ErrNetwork):
		return 3
	case errors.Is(err, ErrServer):
		return 4
	case errors.Is(err, ErrBusy):
		return 5
	default:
		return 1
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
