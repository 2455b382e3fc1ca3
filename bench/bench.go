// ════════════════════════════════════════════════════════════════════════════════════════════════
// BENCHMARK HARNESS
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Core-to-Core Latency Benchmark
// Component: Run Orchestration & Metrics
//
// Description:
//   Pins the calling thread, spawns and pins the responder thread, runs the initiator side of
//   the handshake until completion or deadline, and derives metrics from the counters the run
//   actually reached.
//
// Lifecycle:
//   Idle → Armed → Running → Completed | TimedOut → Reporting
//
// Threading model:
//   - Exactly two OS threads spin: the caller (initiator) and one responder goroutine
//   - Both goroutines stay locked to their threads for good; a pinned thread is discarded
//     when its goroutine exits rather than handed back to the scheduler
//   - The responder is detached: it is never joined and may outlive Run by up to one
//     round, or until the process exits
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package bench

import (
	"fmt"
	"runtime"
	"strconv"
	"time"

	"corelat/affinity"
	"corelat/constants"
	"corelat/control"
	"corelat/debug"
	"corelat/handshake"
)

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// CONFIGURATION
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Config is immutable for the duration of a run.
type Config struct {
	MainCore   int    // Core for the calling (initiator) thread
	WorkerCore int    // Core for the responder thread
	Iterations uint64 // Target value of s1

	// Bounded enables deadline mode. The deadline is Timeout after Run starts;
	// a zero Timeout is already past when the run is armed.
	Bounded bool
	Timeout time.Duration
}

// DefaultConfig returns a fixed-count configuration for the given cores.
func DefaultConfig(mainCore, workerCore int) Config {
	return Config{
		MainCore:   mainCore,
		WorkerCore: workerCore,
		Iterations: constants.DefaultIterations,
	}
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// STATE MACHINE
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Phase is the harness lifecycle state.
type Phase uint8

const (
	Idle Phase = iota
	Armed
	Running
	Completed
	TimedOut
	Reporting
)

var phaseNames = [...]string{
	Idle:      "idle",
	Armed:     "armed",
	Running:   "running",
	Completed: "completed",
	TimedOut:  "timed out",
	Reporting: "reporting",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "phase(" + strconv.Itoa(int(p)) + ")"
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// HARNESS
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Harness runs one benchmark. It is not reusable: each Run gets fresh counters,
// but the phase record belongs to the last run.
type Harness struct {
	cfg    Config
	binder affinity.Binder
	phase  Phase
	worker <-chan handshake.Outcome // Responder outcome of the last run, never awaited by Run
}

// Option customizes a Harness.
type Option func(*Harness)

// WithBinder replaces the OS affinity binder.
func WithBinder(b affinity.Binder) Option {
	return func(h *Harness) { h.binder = b }
}

// New creates a harness for cfg.
func New(cfg Config, opts ...Option) *Harness {
	h := &Harness{cfg: cfg, binder: affinity.OS}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Phase returns the state the last Run reached. Call it from the goroutine that
// called Run.
func (h *Harness) Phase() Phase { return h.phase }

// Run executes the benchmark on the calling goroutine, which is locked to its OS
// thread and pinned to MainCore for the rest of its life.
//
// Both roles spin at once, so Run needs one P per role. A lower GOMAXPROCS is
// raised to constants.MinProcs for the run and restored before Run returns.
//
// Any affinity failure aborts before timing starts; the error is an
// *affinity.Error naming the rejected core. There are no retries.
func (h *Harness) Run() (Result, error) {
	h.phase = Idle

	if prev := runtime.GOMAXPROCS(0); prev < constants.MinProcs {
		runtime.GOMAXPROCS(constants.MinProcs)
		defer runtime.GOMAXPROCS(prev)
		debug.DropMessage("PROCS", "GOMAXPROCS raised from "+strconv.Itoa(prev)+" to "+strconv.Itoa(constants.MinProcs))
	}

	deadline := control.None
	if h.cfg.Bounded {
		deadline = control.After(h.cfg.Timeout)
	}
	if at, ok := deadline.Time(); ok {
		debug.DropMessage("RUN", "deadline "+at.Format(time.RFC3339Nano))
	}

	runtime.LockOSThread()
	if err := h.binder.Bind(affinity.Self, h.cfg.MainCore); err != nil {
		// Nothing was pinned; the thread may go back to the scheduler.
		runtime.UnlockOSThread()
		return Result{}, fmt.Errorf("pin initiator: %w", err)
	}
	if err := h.verify(affinity.Self, h.cfg.MainCore, "initiator"); err != nil {
		return Result{}, fmt.Errorf("pin initiator: %w", err)
	}

	ch := handshake.New()
	w := spawnResponder(ch, h.cfg.Iterations, deadline)
	who := "responder " + strconv.Itoa(int(w.thread))
	err := h.binder.Bind(w.thread, h.cfg.WorkerCore)
	if err == nil {
		err = h.verify(w.thread, h.cfg.WorkerCore, who)
	}
	if err != nil {
		w.release(false)
		return Result{}, fmt.Errorf("pin responder: %w", err)
	}

	h.phase = Armed
	h.worker = w.done
	procs := runtime.GOMAXPROCS(0)
	w.release(true)

	h.phase = Running
	start := time.Now()
	outcome := ch.Initiate(h.cfg.Iterations, deadline)
	elapsed := time.Since(start)

	if outcome == handshake.TimedOut {
		h.phase = TimedOut
	} else {
		h.phase = Completed
	}
	debug.DropMessage("RUN", outcome.String()+" after "+elapsed.String())

	s1, s2 := ch.Counters()
	h.phase = Reporting
	return Result{
		Outcome: outcome,
		Elapsed: elapsed,
		Procs:   procs,
		S1:      s1,
		S2:      s2,
	}, nil
}

// verify runs after a successful Bind. When the binder can also read masks back,
// the applied mask must be exactly [core].
func (h *Harness) verify(thread affinity.Thread, core int, who string) error {
	debug.DropMessage("BIND", who+" pinned to cpu "+strconv.Itoa(core))

	r, ok := h.binder.(affinity.MaskReader)
	if !ok {
		return nil
	}
	mask, err := affinity.Verify(r, thread, core)
	if err != nil {
		return err
	}
	debug.DropMessage("BIND", who+" mask "+fmt.Sprint(mask))
	return nil
}

// Run is a convenience wrapper for New(cfg, opts...).Run().
func Run(cfg Config, opts ...Option) (Result, error) {
	return New(cfg, opts...).Run()
}
