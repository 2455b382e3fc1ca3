// ════════════════════════════════════════════════════════════════════════════════════════════════
// CPU Affinity Binder
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Core-to-Core Latency Benchmark
// Component: Hard Thread-to-Core Pinning
//
// Description:
//   Platform-neutral surface for restricting a live OS thread to exactly one logical CPU.
//   Platform implementations live in affinity_linux.go and affinity_stub.go, selected by
//   build tags.
//
// Contract:
//   - A successful Bind is a hard restriction, not a scheduling preference
//   - Core indices are passed through to the kernel; an index the host cannot honor fails
//   - Platforms without core affinity fail with ErrUnsupported instead of doing nothing
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package affinity

import (
	"errors"
	"fmt"
	"strconv"
	"syscall"
)

// Thread identifies an OS thread that can be pinned. Self names the calling thread.
// On Linux a Thread is a kernel task id as returned by Current.
type Thread int

// Self refers to the calling OS thread. The caller must have locked its goroutine
// to the thread with runtime.LockOSThread for the binding to stay meaningful.
const Self Thread = 0

// ErrUnsupported is reported on platforms that cannot restrict a thread to one core.
var ErrUnsupported = errors.New("affinity: core pinning not supported on this platform")

// ErrMaskMismatch is reported when the mask read back after a bind is not exactly
// the requested core.
var ErrMaskMismatch = errors.New("affinity: applied mask differs from requested core")

// Binder pins a thread to a single core.
type Binder interface {
	Bind(thread Thread, core int) error
}

// BinderFunc adapts a function to the Binder interface.
type BinderFunc func(thread Thread, core int) error

// Bind calls f(thread, core).
func (f BinderFunc) Bind(thread Thread, core int) error { return f(thread, core) }

// MaskReader reads back the set of CPUs a thread may run on.
type MaskReader interface {
	Cores(thread Thread) ([]int, error)
}

// osBinder binds and reads masks through the operating system.
type osBinder struct{}

func (osBinder) Bind(thread Thread, core int) error { return bind(thread, core) }
func (osBinder) Cores(thread Thread) ([]int, error) { return Cores(thread) }

// OS binds through the operating system's scheduling-affinity facility. It also
// implements MaskReader.
var OS Binder = osBinder{}

// Error describes a rejected pinning request.
type Error struct {
	Thread Thread        // Target thread, Self for the caller
	Core   int           // Requested logical CPU
	Errno  syscall.Errno // OS error code, zero when the failure is not an OS rejection
	Err    error         // Underlying cause
}

func (e *Error) Error() string {
	who := "main thread"
	if e.Thread != Self {
		who = "thread " + strconv.Itoa(int(e.Thread))
	}
	msg := "failed to set affinity of " + who + " to cpu " + strconv.Itoa(e.Core)
	if e.Errno != 0 {
		return msg + ": error code " + strconv.Itoa(int(e.Errno)) + " (" + e.Errno.Error() + ")"
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Bind pins thread to core using the OS binder.
func Bind(thread Thread, core int) error {
	return OS.Bind(thread, core)
}

// Verify reads back the mask of thread through r and checks that it is exactly
// [core]. The mask is returned even when it does not match.
func Verify(r MaskReader, thread Thread, core int) ([]int, error) {
	mask, err := r.Cores(thread)
	if err != nil {
		var errno syscall.Errno
		errors.As(err, &errno)
		return nil, &Error{Thread: thread, Core: core, Errno: errno, Err: err}
	}
	if len(mask) != 1 || mask[0] != core {
		return mask, &Error{Thread: thread, Core: core, Err: fmt.Errorf("%w: got %v", ErrMaskMismatch, mask)}
	}
	return mask, nil
}
