package lighting

import (
	"math"
	"testing"

	"github.com/taigrr/tracearoom/pkg/math3d"
)

const tol = 1e-9

func TestPointLightPosition(t *testing.T) {
	l := NewPointLight(math3d.Translate(math3d.V3(0, 0, -15)), math3d.V3(1, 1, 1), 580)
	if !l.Position().ApproxEqual(math3d.V3(0, 0, -15), tol) {
		t.Errorf("Position = %v, want (0, 0, -15)", l.Position())
	}

	// A rotation about the origin leaves a light at the origin in place.
	r := NewPointLight(math3d.RotateY(1.2), math3d.V3(1, 1, 1), 1)
	if !r.Position().ApproxEqual(math3d.Zero3(), tol) {
		t.Errorf("rotated light moved to %v", r.Position())
	}
}

func TestIlluminate(t *testing.T) {
	l := NewPointLightAt(math3d.V3(0, 0, -15), math3d.V3(1, 0.5, 0), 580)

	dir, intensity, dist := l.Illuminate(math3d.V3(0, 0, -23))

	if !dir.ApproxEqual(math3d.V3(0, 0, -1), tol) {
		t.Errorf("dir = %v, want (0, 0, -1) pointing away from the light", dir)
	}
	if math.Abs(dist-8) > tol {
		t.Errorf("distance = %f, want 8", dist)
	}
	want := 580 / (4 * math.Pi * 64)
	if math.Abs(intensity.X-want) > tol || math.Abs(intensity.Y-want/2) > tol || intensity.Z != 0 {
		t.Errorf("intensity = %v, want (%f, %f, 0)", intensity, want, want/2)
	}
}

func TestInverseSquareFalloff(t *testing.T) {
	l := NewPointLightAt(math3d.Zero3(), math3d.V3(1, 1, 1), 100)

	tests := []struct {
		name string
		dir  math3d.Vec3
	}{
		{"x", math3d.V3(1, 0, 0)},
		{"y", math3d.V3(0, -1, 0)},
		{"diagonal", math3d.V3(1, 1, 1).Normalize()},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, near, _ := l.Illuminate(tc.dir.Scale(2))
			_, far, _ := l.Illuminate(tc.dir.Scale(4))
			if math.Abs(far.X*4-near.X) > tol {
				t.Errorf("doubling distance: %f -> %f, want a quarter", near.X, far.X)
			}
		})
	}
}

func BenchmarkIlluminate(b *testing.B) {
	l := NewPointLightAt(math3d.V3(0, 0, -15), math3d.V3(1, 1, 1), 580)
	p := math3d.V3(1, 2, -23)
	for b.Loop() {
		l.Illuminate(p)
	}
}
