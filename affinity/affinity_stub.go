// affinity_stub.go - platforms without per-thread core affinity
//
// macOS only offers affinity tags as scheduler hints, Windows and the BSDs are not
// wired here. Every request fails so a run never times unpinned threads.

//go:build !linux

package affinity

func bind(thread Thread, core int) error {
	return &Error{Thread: thread, Core: core, Err: ErrUnsupported}
}

// Current returns Self; there is no addressable thread id on this platform.
func Current() Thread { return Self }

// Cores is unsupported on this platform.
func Cores(Thread) ([]int, error) { return nil, ErrUnsupported }

// Available is unsupported on this platform.
func Available() ([]int, error) { return nil, ErrUnsupported }
