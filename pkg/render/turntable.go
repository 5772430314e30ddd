package render

import (
	"context"
	"fmt"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/tracearoom/pkg/math3d"
)

// Spinner is an object the turntable can turn.
type Spinner interface {
	RotateAround(pivot math3d.Vec3, angle float64, axis math3d.Vec3)
}

// Turntable eases a rotation from 0 toward Target radians over Frames
// frames, driven by a critically damped spring.
type Turntable struct {
	Axis   math3d.Vec3
	Pivot  math3d.Vec3 // relative to each object's reference point
	Target float64
	Frames int
	FPS    int

	// Frequency 4.0 = moderate speed, damping 1.0 = no overshoot
	Frequency float64
	Damping   float64
}

// NewTurntable creates a turntable with the default spring.
func NewTurntable(axis math3d.Vec3, target float64, frames, fps int) *Turntable {
	return &Turntable{
		Axis:      axis.Normalize(),
		Target:    target,
		Frames:    frames,
		FPS:       fps,
		Frequency: 4.0,
		Damping:   1.0,
	}
}

// Angles returns the absolute rotation for every frame.
func (t *Turntable) Angles() []float64 {
	spring := harmonica.NewSpring(harmonica.FPS(t.FPS), t.Frequency, t.Damping)
	angles := make([]float64, t.Frames)

	var pos, vel float64
	for i := range angles {
		pos, vel = spring.Update(pos, vel, t.Target)
		angles[i] = pos
	}
	return angles
}

// Delay returns the per-frame GIF delay in 100ths of a second.
func (t *Turntable) Delay() int {
	if t.FPS <= 0 {
		return 10
	}
	return max(1, 100/t.FPS)
}

// Render turns objects frame by frame and renders each pose. Objects are
// left at the final pose. Rotation and rendering alternate strictly, so the
// renderer never sees a mesh mid-transform.
func (t *Turntable) Render(ctx context.Context, r *Renderer, objects []Spinner) ([]*Framebuffer, error) {
	frames := make([]*Framebuffer, 0, t.Frames)

	prev := 0.0
	for i, angle := range t.Angles() {
		for _, obj := range objects {
			obj.RotateAround(t.Pivot, angle-prev, t.Axis)
		}
		prev = angle

		fb, err := r.Frame(ctx)
		if err != nil {
			return frames, fmt.Errorf("frame %d: %w", i, err)
		}
		frames = append(frames, fb)
	}
	return frames, nil
}
