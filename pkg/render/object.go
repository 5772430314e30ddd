// Package render turns a scene of meshes and lights into pixels: the
// Shooter resolves one ray at a time and the Renderer drives a camera over
// a framebuffer.
package render

import "github.com/taigrr/tracearoom/pkg/math3d"

// Object is anything a ray can hit and shade.
type Object interface {
	// Intersect returns the closest hit strictly nearer than tNear.
	Intersect(orig, dir math3d.Vec3, tNear float64) (t float64, tri int, uv math3d.Vec2, ok bool)
	// SurfaceProperties returns the unit shading normal and texture
	// coordinates at a hit.
	SurfaceProperties(hitPoint, viewDir math3d.Vec3, tri int, uv math3d.Vec2) (normal math3d.Vec3, st math3d.Vec2)
	// Albedo returns the surface color.
	Albedo() math3d.Vec3
}

// Light is anything that illuminates a point.
type Light interface {
	// Illuminate returns the direction from the light toward p, the
	// arriving intensity and the distance to p.
	Illuminate(p math3d.Vec3) (dir, intensity math3d.Vec3, distance float64)
}
