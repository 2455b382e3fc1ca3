// control.go — Cooperative stop conditions polled from inside spin loops
// ============================================================================
// RUN CONTROL
// ============================================================================
//
// Control package provides the stop conditions that both handshake roles check
// on every spin iteration. There is no cross-thread signal: each side reads the
// clock itself and compares it against the same precomputed instant.
//
// Architecture overview:
//   • Deadline is an immutable value copied into each spinning goroutine
//   • The zero Deadline never expires, so fixed-count runs pay one branch
//   • Expiry uses the monotonic clock reading carried by time.Time
//
// Threading model:
//   • Computed once at startup, before either thread is armed
//   • Read-only afterwards; safe to share by value

package control

import "time"

// ============================================================================
// DEADLINE
// ============================================================================

// Deadline is an optional absolute stop time.
type Deadline struct {
	at  time.Time
	set bool
}

// None is the deadline of an unbounded run.
var None Deadline

// At returns a deadline that expires at t.
func At(t time.Time) Deadline {
	return Deadline{at: t, set: true}
}

// After returns a deadline timeout from now. A zero or negative timeout yields
// a deadline that has already passed.
func After(timeout time.Duration) Deadline {
	return At(time.Now().Add(timeout))
}

// Time returns the expiry instant and whether one is set.
func (d Deadline) Time() (time.Time, bool) {
	return d.at, d.set
}

// Expired reports whether the deadline is set and the current time has reached it.
// Called inside spin loops; keep it free of allocation and locking.
//
//go:norace
//go:nocheckptr
//go:inline
func (d Deadline) Expired() bool {
	return d.set && !time.Now().Before(d.at)
}
