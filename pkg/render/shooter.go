package render

import (
	"math"

	"github.com/taigrr/tracearoom/pkg/math3d"
)

// Hit records the nearest intersection of a ray with the scene.
type Hit struct {
	T        float64
	Object   Object
	Triangle int
	UV       math3d.Vec2
}

// Shooter casts primary rays into a fixed set of objects and lights.
//
// Shoot reads but never writes the scene, so one Shooter may serve many
// goroutines as long as nothing transforms the objects meanwhile.
type Shooter struct {
	objects    []Object
	lights     []Light
	background math3d.Vec3
}

// NewShooter creates a shooter over objects and lights. Rays that hit
// nothing return background.
func NewShooter(objects []Object, lights []Light, background math3d.Vec3) *Shooter {
	return &Shooter{
		objects:    append([]Object(nil), objects...),
		lights:     append([]Light(nil), lights...),
		background: background,
	}
}

// Objects returns the objects in traversal order.
func (s *Shooter) Objects() []Object {
	return s.objects
}

// Lights returns the lights in summation order.
func (s *Shooter) Lights() []Light {
	return s.lights
}

// Background returns the miss color.
func (s *Shooter) Background() math3d.Vec3 {
	return s.background
}

// SetObjects replaces the object list. An empty list is ignored.
func (s *Shooter) SetObjects(objects []Object) {
	if len(objects) == 0 {
		return
	}
	s.objects = append([]Object(nil), objects...)
}

// SetBackground sets the miss color.
func (s *Shooter) SetBackground(c math3d.Vec3) {
	s.background = c
}

// Nearest finds the closest hit over all objects. Each object is queried
// with the best distance so far, so only strictly nearer hits replace it.
func (s *Shooter) Nearest(ray Ray) (Hit, bool) {
	best := Hit{T: math.Inf(1)}
	found := false
	for _, obj := range s.objects {
		t, tri, uv, ok := obj.Intersect(ray.Origin, ray.Dir, best.T)
		if ok {
			best = Hit{T: t, Object: obj, Triangle: tri, UV: uv}
			found = true
		}
	}
	return best, found
}

// Shoot returns the color seen along ray: the background on a miss, else
// the diffuse sum over all lights. There is no ambient term, no shadowing
// and no clamping.
func (s *Shooter) Shoot(ray Ray) math3d.Vec3 {
	hit, ok := s.Nearest(ray)
	if !ok {
		return s.background
	}

	p := ray.At(hit.T)
	n, _ := hit.Object.SurfaceProperties(p, ray.Dir, hit.Triangle, hit.UV)
	albedo := hit.Object.Albedo()

	var c math3d.Vec3
	for _, l := range s.lights {
		dir, intensity, _ := l.Illuminate(p)
		lambert := max(0, n.Dot(dir.Negate()))
		c = c.Add(albedo.Mul(intensity).Scale(lambert))
	}
	return c
}

// ShootAt is Shoot for a ray built from orig and dir.
func (s *Shooter) ShootAt(orig, dir math3d.Vec3) math3d.Vec3 {
	return s.Shoot(NewRay(orig, dir))
}
