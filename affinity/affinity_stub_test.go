//go:build !linux

package affinity

import (
	"errors"
	"testing"
)

func TestBind_UnsupportedIsExplicit(t *testing.T) {
	err := Bind(Self, 0)
	if err == nil {
		t.Fatal("Bind succeeded on a platform without core affinity")
	}
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("Bind error = %v, want ErrUnsupported", err)
	}
	var aerr *Error
	if !errors.As(err, &aerr) || aerr.Core != 0 {
		t.Fatalf("Bind error = %#v, want *Error for core 0", err)
	}
}

func TestCores_Unsupported(t *testing.T) {
	if _, err := Cores(Self); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("Cores error = %v, want ErrUnsupported", err)
	}
}
