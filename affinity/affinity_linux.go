// affinity_linux.go - Linux CPU affinity via sched_setaffinity(2)

//go:build linux

package affinity

import (
	"errors"
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"
)

// maxCore is the first index a cpu_set_t cannot represent.
const maxCore = int(unsafe.Sizeof(unix.CPUSet{})) * 8

// bind restricts thread to core. Thread 0 targets the calling thread, any other
// value is a task id inside this process.
func bind(thread Thread, core int) error {
	if core < 0 || core >= maxCore {
		// CPUSet.Set drops out-of-range bits; reject here with the code the kernel
		// would give for an empty mask.
		return &Error{Thread: thread, Core: core, Errno: unix.EINVAL, Err: unix.EINVAL}
	}

	var set unix.CPUSet
	set.Zero()
	set.Set(core)

	if err := unix.SchedSetaffinity(int(thread), &set); err != nil {
		var errno syscall.Errno
		errors.As(err, &errno)
		return &Error{Thread: thread, Core: core, Errno: errno, Err: err}
	}
	return nil
}

// Current returns the kernel task id of the calling thread. The caller must hold
// runtime.LockOSThread for the id to keep naming the goroutine's thread.
func Current() Thread {
	return Thread(unix.Gettid())
}

// Cores reads back the set of CPUs thread may run on.
func Cores(thread Thread) ([]int, error) {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(int(thread), &set); err != nil {
		return nil, err
	}
	cores := make([]int, 0, set.Count())
	for i := 0; i < maxCore && len(cores) < cap(cores); i++ {
		if set.IsSet(i) {
			cores = append(cores, i)
		}
	}
	return cores, nil
}

// Available returns the CPUs the calling thread may use. For a thread that has
// not been pinned this is the process-wide allowed set.
func Available() ([]int, error) {
	return Cores(Self)
}
