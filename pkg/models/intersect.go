package models

import (
	"math"

	"github.com/taigrr/tracearoom/pkg/math3d"
)

// Epsilon is the determinant threshold below which a ray is treated as
// parallel to a triangle.
const Epsilon = 1e-8

// rayTriangle is the Möller–Trumbore test. It returns the distance t along
// dir and the barycentric (u, v) of the hit.
func rayTriangle(orig, dir, v0, v1, v2 math3d.Vec3) (t, u, v float64, ok bool) {
	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)
	pvec := dir.Cross(edge2)
	det := edge1.Dot(pvec)

	if math.Abs(det) < Epsilon {
		return 0, 0, 0, false
	}
	invDet := 1 / det

	tvec := orig.Sub(v0)
	u = tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}

	qvec := tvec.Cross(edge1)
	v = dir.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}

	t = edge2.Dot(qvec) * invDet
	return t, u, v, true
}

// Intersect tests the ray against every triangle and returns the closest hit
// whose distance is strictly below tNear. Callers seed tNear with
// math.Inf(1) for an unbounded query. Hits behind the origin are not
// filtered out.
func (m *Mesh) Intersect(orig, dir math3d.Vec3, tNear float64) (t float64, tri int, uv math3d.Vec2, ok bool) {
	t = tNear
	for i := range m.numTris {
		v0, v1, v2 := m.Triangle(i)
		ti, u, v, hit := rayTriangle(orig, dir, v0, v1, v2)
		if hit && ti < t {
			t = ti
			tri = i
			uv = math3d.V2(u, v)
			ok = true
		}
	}
	return t, tri, uv, ok
}

// SurfaceProperties returns the shading normal and the interpolated texture
// coordinates at a hit on triangle tri with barycentric uv.
//
// With ShadingFlat the normal is the normalized (v1-v0)×(v2-v0). With
// ShadingSmooth the stored corner normals are blended instead, falling back
// to the face normal when they sum to zero.
func (m *Mesh) SurfaceProperties(hitPoint, viewDir math3d.Vec3, tri int, uv math3d.Vec2) (normal math3d.Vec3, st math3d.Vec2) {
	v0, v1, v2 := m.Triangle(tri)
	normal = v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()

	base := tri * CornersPerTriangle
	st = math3d.Barycentric2(m.texCoords[base], m.texCoords[base+1], m.texCoords[base+2], uv)

	if m.Shading == ShadingSmooth {
		n := math3d.Barycentric3(m.normals[base], m.normals[base+1], m.normals[base+2], uv)
		if n.LenSq() > 0 {
			normal = n.Normalize()
		}
	}
	return normal, st
}
