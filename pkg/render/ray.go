package render

import "github.com/taigrr/tracearoom/pkg/math3d"

// Ray is a half-line with a unit direction.
type Ray struct {
	Origin math3d.Vec3
	Dir    math3d.Vec3
}

// NewRay builds a ray and normalizes dir.
func NewRay(origin, dir math3d.Vec3) Ray {
	return Ray{Origin: origin, Dir: dir.Normalize()}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) math3d.Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}
