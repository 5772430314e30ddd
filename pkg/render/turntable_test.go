package render

import (
	"context"
	"math"
	"testing"

	"github.com/taigrr/tracearoom/pkg/math3d"
)

type countingSpinner struct {
	calls int
	total float64
}

func (c *countingSpinner) RotateAround(_ math3d.Vec3, angle float64, _ math3d.Vec3) {
	c.calls++
	c.total += angle
}

func TestTurntableAngles(t *testing.T) {
	tt := NewTurntable(math3d.Up(), 2*math.Pi, 60, 12)
	angles := tt.Angles()

	if len(angles) != 60 {
		t.Fatalf("len = %d, want 60", len(angles))
	}
	for i := 1; i < len(angles); i++ {
		if angles[i] < angles[i-1]-1e-12 {
			t.Fatalf("angle %d went backwards: %f < %f", i, angles[i], angles[i-1])
		}
	}
	if last := angles[len(angles)-1]; math.Abs(last-2*math.Pi) > 0.01 {
		t.Errorf("last angle = %f, want close to 2π", last)
	}
	if tt.Delay() != 8 {
		t.Errorf("Delay = %d, want 8", tt.Delay())
	}
}

func TestTurntableRender(t *testing.T) {
	tt := NewTurntable(math3d.Up(), math.Pi, 5, 10)
	spin := &countingSpinner{}
	r := testRenderer(t, 4, 4, 1)

	frames, err := tt.Render(context.Background(), r, []Spinner{spin})
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 5 {
		t.Errorf("frames = %d, want 5", len(frames))
	}
	if spin.calls != 5 {
		t.Errorf("rotations = %d, want 5", spin.calls)
	}

	angles := tt.Angles()
	if math.Abs(spin.total-angles[len(angles)-1]) > 1e-12 {
		t.Errorf("summed deltas = %f, want final angle %f", spin.total, angles[len(angles)-1])
	}
}
