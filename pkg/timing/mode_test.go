package timing

import "testing"

func TestInterlaceFactor(t *testing.T) {
	progressive := DisplayMode{Doubling: XY{X: 0, Y: 0}}
	if got := progressive.InterlaceFactor(); got != 1 {
		t.Errorf("progressive InterlaceFactor() = %d, want 1", got)
	}
	if progressive.Interlaced() {
		t.Error("progressive mode reported as interlaced")
	}

	interlaced := DisplayMode{Doubling: XY{X: 1, Y: -1}}
	if got := interlaced.InterlaceFactor(); got != 2 {
		t.Errorf("interlaced InterlaceFactor() = %d, want 2", got)
	}
	if !interlaced.Interlaced() {
		t.Error("interlaced mode not reported as interlaced")
	}
}
