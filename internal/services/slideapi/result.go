package slideapi

import (
	"encoding/json"
	"strings"

	"slidedeck/internal/services"
)

// Failure describes why a request produced no usable body.
type Failure struct {
	// Kind is KindNetwork when no response arrived, KindServer otherwise.
	Kind services.Kind
	// Status is the HTTP status of a failed response, zero when none arrived.
	Status int
	// Detail is the server-supplied explanation, if any.
	Detail string
	// TransportMessage is the error raised while sending the request or
	// reading the response, if any.
	TransportMessage string
	Cause            error
}

// Outcome is the raw tagged result of a single exchange: a body or a failure.
type Outcome struct {
	Status  int
	Body    []byte
	Failure *Failure
}

// Result is the decoded tagged result handed to orchestrators.
type Result[T any] struct {
	Value   T
	Failure *Failure
}

// OK reports whether the request succeeded.
func (r Result[T]) OK() bool {
	return r.Failure == nil
}

func ok[T any](value T) Result[T] {
	return Result[T]{Value: value}
}

func failed[T any](failure *Failure) Result[T] {
	return Result[T]{Failure: failure}
}

// parseDetail extracts the "detail" field of an error body. Validation
// errors from the service carry a list of {"msg": ...} objects instead of a
// string; their messages are joined.
func parseDetail(raw []byte) string {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return ""
	}
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(envelope.Detail, &text); err == nil {
		return strings.TrimSpace(text)
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if msg := strings.TrimSpace(item.Msg); msg != "" {
				msgs = append(msgs, msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
