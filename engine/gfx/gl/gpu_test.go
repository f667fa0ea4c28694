package glbackend

import (
	"testing"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/hubastard/xpanel/engine/core"
)

func TestColorBuffer(t *testing.T) {
	tests := []struct {
		fb   core.Framebuffer
		want uint32
	}{
		{0, gl.BACK},
		{1, gl.COLOR_ATTACHMENT0},
		{42, gl.COLOR_ATTACHMENT0},
	}
	for _, tt := range tests {
		if got := colorBuffer(tt.fb); got != tt.want {
			t.Errorf("colorBuffer(%d) = 0x%x, want 0x%x", tt.fb, got, tt.want)
		}
	}
}

func TestDrainErrors(t *testing.T) {
	errorsFrom := func(codes ...uint32) func() uint32 {
		return func() uint32 {
			if len(codes) == 0 {
				return gl.NO_ERROR
			}
			c := codes[0]
			codes = codes[1:]
			return c
		}
	}

	if n := drainErrors(errorsFrom()); n != 0 {
		t.Errorf("no errors: drained %d", n)
	}
	if n := drainErrors(errorsFrom(gl.INVALID_OPERATION, gl.INVALID_ENUM)); n != 2 {
		t.Errorf("two errors: drained %d", n)
	}

	stuck := func() uint32 { return gl.INVALID_OPERATION }
	if n := drainErrors(stuck); n != maxPendingErrors {
		t.Errorf("stuck flag: drained %d", n)
	}
}
