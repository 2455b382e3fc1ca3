// ════════════════════════════════════════════════════════════════════════════════════════════════
// ⚡ HANDSHAKE CHANNEL
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Core-to-Core Latency Benchmark
// Component: Strict Alternation Over Two Shared Counters
//
// Description:
//   Two monotonically increasing counters, each written by exactly one role. The initiator
//   advances s1 once it sees s2 catch up; the responder advances s2 once it sees s1 move.
//   The channel owns no goroutines, only the shared state and the two role loops.
//
// Invariants:
//   - s1 and s2 never decrease
//   - 0 ≤ s1 − s2 ≤ 1 at every instant: s1 leads by at most one round, s2 never leads
//   - Both start at zero; a Channel is scoped to one run
//
// Memory ordering:
//   - Increments are sequentially consistent read-modify-writes (atomic Add)
//   - Go's atomic loads are already sequentially consistent; the protocol would be correct
//     with relaxed polling, since only the alternation itself needs ordering
//
// Spin policy:
//   - Pure busy-spin, no PAUSE hint, no runtime.Gosched, no sleep: any suspension point
//     would become part of the measured latency
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package handshake

import (
	"math"
	"sync/atomic"

	"corelat/constants"
	"corelat/control"

	"golang.org/x/sys/cpu"
)

// unbounded is a target that no run reaches; the role stops only on its deadline.
const unbounded uint64 = math.MaxUint64

// Outcome reports why a role loop returned.
type Outcome uint8

const (
	// Completed means the role reached its target count.
	Completed Outcome = iota
	// TimedOut means the deadline was observed before the target.
	TimedOut
)

func (o Outcome) String() string {
	switch o {
	case Completed:
		return "completed"
	case TimedOut:
		return "timed out"
	}
	return "unknown"
}

// Channel is the shared handshake state.
//
// Each counter sits on its own cache line so a poll of one never drags the other
// role's line along.
type Channel struct {
	_  cpu.CacheLinePad
	s1 atomic.Uint64 // Written by the initiator only
	_  cpu.CacheLinePad
	s2 atomic.Uint64 // Written by the responder only
	_  cpu.CacheLinePad
}

// New returns a channel with both counters at zero.
func New() *Channel {
	return &Channel{}
}

// Initiate runs the initiator role until s1 reaches target or d expires.
//
// Each round waits for s2 to equal the value s1 had after the previous increment,
// then advances s1. The deadline is checked on every spin iteration, including the
// first poll of a round, so a stalled partner cannot hold the loop past d. The
// target is checked before the deadline: a run that hits both reports Completed.
//
//go:norace
//go:nocheckptr
func (c *Channel) Initiate(target uint64, d control.Deadline) Outcome {
	expected := c.s1.Load()
	for expected < target {
		for {
			if d.Expired() {
				return TimedOut
			}
			if c.s2.Load() == expected {
				break
			}
		}
		expected = c.s1.Add(1)
	}
	return Completed
}

// Respond runs the responder role until s2 reaches target or d expires.
//
// Each round waits for s1 to move past the last value the responder matched, then
// advances s2. With the initiator's target as its own, the responder returns right
// after matching the final round.
//
//go:norace
//go:nocheckptr
func (c *Channel) Respond(target uint64, d control.Deadline) Outcome {
	seen := c.s2.Load()
	for seen < target {
		for {
			if d.Expired() {
				return TimedOut
			}
			if c.s1.Load() != seen {
				break
			}
		}
		seen = c.s2.Add(1)
	}
	return Completed
}

// Counters returns the current values of s1 and s2. s1 is read first.
// While both roles are live the pair is not a single snapshot; read it after the
// initiator has returned for a consistent report.
func (c *Channel) Counters() (s1, s2 uint64) {
	s1 = c.s1.Load()
	s2 = c.s2.Load()
	return s1, s2
}

// Ops returns the completed operation count derived from s1: two per round.
// A round cut short after the s1 increment is counted whole.
func Ops(s1 uint64) uint64 {
	return constants.OpsPerRound * s1
}
