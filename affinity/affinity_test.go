package affinity

import (
	"errors"
	"syscall"
	"testing"
)

type fixedMask struct {
	mask []int
	err  error
}

func (f fixedMask) Cores(Thread) ([]int, error) { return f.mask, f.err }

func TestVerify_ExactCorePasses(t *testing.T) {
	mask, err := Verify(fixedMask{mask: []int{3}}, 77, 3)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if len(mask) != 1 || mask[0] != 3 {
		t.Fatalf("mask = %v, want [3]", mask)
	}
}

func TestVerify_MismatchIsAffinityError(t *testing.T) {
	for _, mask := range [][]int{nil, {}, {2}, {3, 4}} {
		got, err := Verify(fixedMask{mask: mask}, 77, 3)
		var aerr *Error
		if !errors.As(err, &aerr) {
			t.Fatalf("Verify(%v) = %v, want *Error", mask, err)
		}
		if aerr.Thread != 77 || aerr.Core != 3 || aerr.Errno != 0 {
			t.Errorf("Verify(%v) error = %+v", mask, aerr)
		}
		if !errors.Is(err, ErrMaskMismatch) {
			t.Errorf("Verify(%v) does not wrap ErrMaskMismatch: %v", mask, err)
		}
		if len(got) != len(mask) {
			t.Errorf("Verify(%v) returned mask %v", mask, got)
		}
	}
}

func TestVerify_ReadFailureKeepsCode(t *testing.T) {
	_, err := Verify(fixedMask{err: syscall.ESRCH}, 77, 3)
	var aerr *Error
	if !errors.As(err, &aerr) {
		t.Fatalf("Verify = %v, want *Error", err)
	}
	if aerr.Errno != syscall.ESRCH || !errors.Is(err, syscall.ESRCH) {
		t.Fatalf("error = %+v, want ESRCH", aerr)
	}
}

func TestOS_ReadsMasksBack(t *testing.T) {
	if _, ok := OS.(MaskReader); !ok {
		t.Fatal("OS binder does not implement MaskReader")
	}
}
