package workflow

import (
	"fmt"
	"sync"

	"slidedeck/internal/services"
)

// RequestState is the position of one request lifecycle.
type RequestState string

const (
	StateIdle    RequestState = "idle"
	StateLoading RequestState = "loading"
	StateSuccess RequestState = "success"
	StateError   RequestState = "error"
)

// Lifecycle is a point-in-time view of one request lifecycle.
type Lifecycle struct {
	State RequestState
	// Message is the user-facing text for StateError; empty otherwise or after
	// the error was dismissed.
	Message string
	Kind    services.Kind
}

// lifecycle owns one request state machine and the value it produced.
//
//	Idle -> Loading -> Success | Error
//	Success | Error -> Loading (retry or resubmit)
type lifecycle struct {
	name string

	mu    sync.Mutex
	view  Lifecycle
	value string
}

func newLifecycle(name string) *lifecycle {
	return &lifecycle{name: name, view: Lifecycle{State: StateIdle}}
}

// start moves the lifecycle to Loading. A pending request makes it return
// ErrBusy without touching state; a precondition failure moves it to Error
// and is returned unchanged.
func (l *lifecycle) start(precondition *services.RequestError) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.view.State == StateLoading {
		return fmt.Errorf("%s: %w", l.name, services.ErrBusy)
	}
	if precondition != nil {
		l.view = Lifecycle{State: StateError, Message: precondition.Message, Kind: precondition.Kind}
		return precondition
	}
	l.view = Lifecycle{State: StateLoading}
	return nil
}

func (l *lifecycle) succeed(value string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.value = value
	l.view = Lifecycle{State: StateSuccess}
}

// fail records the error. The previously produced value is kept.
func (l *lifecycle) fail(reqErr *services.RequestError) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.view = Lifecycle{State: StateError, Message: reqErr.Message, Kind: reqErr.Kind}
}

func (l *lifecycle) snapshot() (Lifecycle, string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.view, l.value
}

func (l *lifecycle) current() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.value
}

// discard drops the value and any error message. The state itself is left
// as it is, so a discarded Success or Error keeps its label.
func (l *lifecycle) discard() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.value = ""
	l.view.Message = ""
	l.view.Kind = ""
}

// dismissValidation undoes a validation failure only. The lifecycle falls
// back to Success when a value is still held, Idle otherwise.
func (l *lifecycle) dismissValidation() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.view.State != StateError || l.view.Kind != services.KindValidation {
		return
	}
	if l.value != "" {
		l.view = Lifecycle{State: StateSuccess}
		return
	}
	l.view = Lifecycle{State: StateIdle}
}

// reset drops the value and returns to Idle. A pending request keeps its
// Loading state and will still land its result.
func (l *lifecycle) reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.value = ""
	if l.view.State != StateLoading {
		l.view = Lifecycle{State: StateIdle}
	}
}
