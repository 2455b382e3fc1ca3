// ════════════════════════════════════════════════════════════════════════════════════════════════
// ⚡ PINNED RESPONDER
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Core-to-Core Latency Benchmark
// Component: Detached Responder Thread
//
// Description:
//   Launches the responder goroutine on a dedicated OS thread and hands its thread id back so
//   the harness can pin the live thread. The responder waits for a go/no-go before it enters
//   the spin loop, so a failed pin never leaves a spinner behind.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package bench

import (
	"runtime"

	"corelat/affinity"
	"corelat/control"
	"corelat/handshake"
)

// responder is the harness's handle on the spawned thread.
type responder struct {
	thread affinity.Thread
	arm    chan<- bool
	done   <-chan handshake.Outcome
}

// spawnResponder starts the responder goroutine and blocks until its thread id is
// known. The goroutine never calls runtime.UnlockOSThread: once pinned, its thread
// exits with it.
func spawnResponder(ch *handshake.Channel, target uint64, d control.Deadline) *responder {
	ready := make(chan affinity.Thread)
	arm := make(chan bool, 1)
	done := make(chan handshake.Outcome, 1)

	go func() {
		runtime.LockOSThread()
		ready <- affinity.Current()
		if !<-arm {
			return
		}
		done <- ch.Respond(target, d)
	}()

	return &responder{thread: <-ready, arm: arm, done: done}
}

// release lets the responder start spinning, or tells it to exit.
func (r *responder) release(run bool) {
	r.arm <- run
}
