package models

import "github.com/taigrr/tracearoom/pkg/math3d"

// apply runs one full pass of mat over the vertex buffer.
func (m *Mesh) apply(mat math3d.Mat4) {
	for i := range m.vertices {
		m.vertices[i] = mat.MulVec3(m.vertices[i])
	}
}

// Transform applies mat to every vertex position in place. Unlike the rigid
// helpers below it leaves the accumulated translation and rotation alone,
// so it is meant for one-off placement right after loading.
func (m *Mesh) Transform(mat math3d.Mat4) {
	m.apply(mat)
	m.CalculateBounds()
}

// Translate moves the mesh by v and folds v into the accumulated
// translation.
func (m *Mesh) Translate(v math3d.Vec3) {
	t := math3d.Translate(v)
	m.translation = t.Mul(m.translation)
	m.apply(t)
	m.CalculateBounds()
}

// Rotate turns the mesh by angle radians about an axis through its
// reference point (the accumulated translation), not the world origin.
func (m *Mesh) Rotate(angle float64, axis math3d.Vec3) {
	rot := math3d.Rotate(axis, angle)
	m.rotation = rot.Mul(m.rotation)

	m.apply(m.translation.Inverse())
	m.apply(rot)
	m.apply(m.translation)
	m.CalculateBounds()
}

// RotateAround turns the mesh by angle radians about an axis through pivot,
// where pivot is expressed relative to the mesh reference point.
func (m *Mesh) RotateAround(pivot math3d.Vec3, angle float64, axis math3d.Vec3) {
	pivotTransl := math3d.Translate(pivot)
	rot := math3d.Rotate(axis, angle)
	m.rotation = rot.Mul(m.rotation)

	m.apply(m.translation.Inverse())
	m.apply(pivotTransl.Inverse())
	m.apply(rot)
	m.apply(pivotTransl)
	m.apply(m.translation)
	m.CalculateBounds()
}
