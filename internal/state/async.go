package state

import "fmt"

// Phase names the active variant of an Async value.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseFailure
)

var phaseName = map[Phase]string{
	PhaseIdle:    "idle",
	PhaseLoading: "loading",
	PhaseSuccess: "success",
	PhaseFailure: "failure",
}

func (p Phase) String() string {
	if name, ok := phaseName[p]; ok {
		return name
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Async is the state of one asynchronous operation: idle, loading,
// succeeded with a value, or failed with a message. Fields are unexported
// so only the constructors below can produce a value, and each produces
// exactly one variant.
type Async[T any] struct {
	phase   Phase
	value   T
	message string
}

// Idle returns the initial state.
func Idle[T any]() Async[T] { return Async[T]{phase: PhaseIdle} }

// Loading returns the in-flight state.
func Loading[T any]() Async[T] { return Async[T]{phase: PhaseLoading} }

// Succeeded returns a success carrying v.
func Succeeded[T any](v T) Async[T] { return Async[T]{phase: PhaseSuccess, value: v} }

// Failed returns a failure carrying a user-facing message.
func Failed[T any](message string) Async[T] {
	return Async[T]{phase: PhaseFailure, message: message}
}

// Phase reports the active variant.
func (a Async[T]) Phase() Phase { return a.phase }

// IsLoading reports whether the operation is in flight.
func (a Async[T]) IsLoading() bool { return a.phase == PhaseLoading }

// Value returns the success value.
func (a Async[T]) Value() (T, bool) {
	if a.phase != PhaseSuccess {
		var zero T
		return zero, false
	}
	return a.value, true
}

// Err returns the failure message.
func (a Async[T]) Err() (string, bool) {
	if a.phase != PhaseFailure {
		return "", false
	}
	return a.message, true
}

func (a Async[T]) String() string {
	switch a.phase {
	case PhaseSuccess:
		return fmt.Sprintf("success(%+v)", a.value)
	case PhaseFailure:
		return fmt.Sprintf("failure(%q)", a.message)
	default:
		return a.phase.String()
	}
}
