package bench

import (
	"time"

	"corelat/handshake"
)

// Result holds what a run actually reached. Metrics derive from S1, not from the
// configured target, so a run cut short by its deadline still reports correctly.
type Result struct {
	Outcome handshake.Outcome
	Elapsed time.Duration // From arming to initiator loop exit
	Procs   int           // GOMAXPROCS while the roles were spinning
	S1, S2  uint64        // Counter values after the initiator returned
}

// Ops is the completed operation count, 2 × S1. If the run stopped after an s1
// increment that the responder had not yet matched, that round still counts.
func (r Result) Ops() uint64 {
	return handshake.Ops(r.S1)
}

// Empty reports whether no operation completed. Rates are undefined then.
func (r Result) Empty() bool {
	return r.Ops() == 0
}

// NsPerOp is elapsed nanoseconds per operation, zero for an empty result.
func (r Result) NsPerOp() float64 {
	if r.Empty() {
		return 0
	}
	return float64(r.elapsedNs()) / float64(r.Ops())
}

// OpsPerSec is ops × 1e9 / elapsed, zero for an empty result.
func (r Result) OpsPerSec() float64 {
	if r.Empty() {
		return 0
	}
	return float64(r.Ops()) * 1e9 / float64(r.elapsedNs())
}

// elapsedNs never returns less than one nanosecond so a non-empty result always
// yields finite rates, even on a coarse clock.
func (r Result) elapsedNs() int64 {
	if ns := r.Elapsed.Nanoseconds(); ns > 0 {
		return ns
	}
	return 1
}
