// Package fetch models the request/response lifecycle shared by every remote
// call the store issues, and the sequencing that rejects stale responses.
package fetch

// Phase is the position of a Lifecycle in its request protocol.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhasePending Phase = "pending"
	PhaseSuccess Phase = "success"
	PhaseFailure Phase = "failure"
)

// Lifecycle tracks one remote operation producing a T. A failed attempt keeps
// the last good Data, so Loading == false with a non-empty Error means the
// data may be stale. Retrying is a fresh Request.
type Lifecycle[T any] struct {
	Phase   Phase
	Loading bool
	Error   string
	Data    T
}

// Request enters the pending phase and clears any previous error.
func (l Lifecycle[T]) Request() Lifecycle[T] {
	l.Phase = PhasePending
	l.Loading = true
	l.Error = ""
	return l
}

// Succeed stores the normalized payload.
func (l Lifecycle[T]) Succeed(data T) Lifecycle[T] {
	l.Phase = PhaseSuccess
	l.Loading = false
	l.Error = ""
	l.Data = data
	return l
}

// Fail records a human readable failure and leaves Data untouched.
func (l Lifecycle[T]) Fail(message string) Lifecycle[T] {
	l.Phase = PhaseFailure
	l.Loading = false
	l.Error = message
	return l
}

// Stale reports whether the last attempt failed while older data is still held.
func (l Lifecycle[T]) Stale() bool {
	return !l.Loading && l.Error != ""
}
