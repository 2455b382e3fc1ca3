//go:build linux

package bench

import (
	"errors"
	"testing"
	"time"

	"corelat/affinity"
	"corelat/constants"
)

func availableCores(t *testing.T, n int) []int {
	t.Helper()
	cores, err := affinity.Available()
	if err != nil {
		t.Fatalf("Available: %v", err)
	}
	if len(cores) < n {
		t.Skipf("needs %d usable cores, have %v", n, cores)
	}
	return cores
}

func TestHarness_PinnedCrossCoreRun(t *testing.T) {
	requireProcs(t, 2)
	cores := availableCores(t, 2)

	h := New(Config{MainCore: cores[0], WorkerCore: cores[1], Iterations: 1000})
	r, err := runIsolated(h)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if r.S1 != 1000 || r.Ops() != 2000 {
		t.Fatalf("result = %+v, want s1=1000", r)
	}
	if r.NsPerOp() <= 0 || r.OpsPerSec() <= 0 {
		t.Fatalf("rates not positive: %v, %v", r.NsPerOp(), r.OpsPerSec())
	}
}

func TestHarness_PinnedSameCoreHonorsDeadline(t *testing.T) {
	cores := availableCores(t, 1)

	h := New(Config{
		MainCore:   cores[0],
		WorkerCore: cores[0],
		Iterations: constants.DefaultIterations,
		Bounded:    true,
		Timeout:    time.Second,
	})

	start := time.Now()
	r, err := runIsolated(h)
	wall := time.Since(start)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if wall > 4*time.Second {
		t.Fatalf("same-core run took %v with a 1s deadline", wall)
	}
	checkConsistent(t, r)
}

func TestHarness_CoreBeyondHostFails(t *testing.T) {
	cores := availableCores(t, 1)
	beyond := 1023
	for _, c := range cores {
		if c == beyond {
			t.Skip("host exposes cpu 1023")
		}
	}

	_, err := runIsolated(New(Config{MainCore: cores[0], WorkerCore: beyond, Iterations: 10}))
	var aerr *affinity.Error
	if !errors.As(err, &aerr) {
		t.Fatalf("Run error = %v, want *affinity.Error", err)
	}
	if aerr.Core != beyond || aerr.Errno == 0 {
		t.Fatalf("error = %+v, want core %d with an OS code", aerr, beyond)
	}
}
