// Package models provides the triangle mesh primitive for tracearoom: how a
// mesh is built from polygons, intersected by rays, shaded at a hit, and
// moved around the scene.
package models

import (
	"errors"
	"fmt"

	"github.com/taigrr/tracearoom/pkg/math3d"
)

// CornersPerTriangle is the stride of the index, normal and texture
// coordinate buffers.
const CornersPerTriangle = 3

// Mesh construction errors.
var (
	ErrAttributeMismatch = errors.New("vertex index, normal and texture coordinate arrays differ in length")
	ErrNoVertices        = errors.New("mesh has no vertices")
	ErrDegenerateFace    = errors.New("face has fewer than 3 corners")
	ErrFaceOverrun       = errors.New("face sizes exceed the vertex index array")
	ErrIndexOutOfRange   = errors.New("vertex index out of range")
)

// ShadingMode selects how SurfaceProperties computes the hit normal.
type ShadingMode int

const (
	ShadingFlat   ShadingMode = iota // Geometric face normal
	ShadingSmooth                    // Interpolated per-corner normals
)

// String implements fmt.Stringer.
func (s ShadingMode) String() string {
	switch s {
	case ShadingSmooth:
		return "smooth"
	default:
		return "flat"
	}
}

// PolygonMesh is the polygonal description a Mesh is built from.
// VertexIndices, Normals and TexCoords hold one entry per face corner,
// faces laid out back to back in the order given by FaceSizes.
type PolygonMesh struct {
	Name          string
	FaceSizes     []uint32
	VertexIndices []uint32
	Vertices      []math3d.Vec3
	Normals       []math3d.Vec3
	TexCoords     []math3d.Vec2
	Color         math3d.Vec3
}

// Mesh is a triangulated mesh that owns flat vertex, index and per-corner
// attribute buffers.
//
// Only the vertex positions change after construction, through Translate,
// Rotate and RotateAround. Those must not run while the mesh is being
// traversed.
type Mesh struct {
	Name    string
	Color   math3d.Vec3
	Shading ShadingMode

	vertices  []math3d.Vec3
	indices   []uint32
	normals   []math3d.Vec3
	texCoords []math3d.Vec2
	numTris   int

	translation math3d.Mat4
	rotation    math3d.Mat4

	boundsMin math3d.Vec3
	boundsMax math3d.Vec3
}

// NewTriangleMesh validates desc and fan-triangulates every face into the
// mesh buffers. Attribute values are copied, never referenced.
func NewTriangleMesh(desc PolygonMesh) (*Mesh, error) {
	if len(desc.VertexIndices) != len(desc.Normals) || len(desc.VertexIndices) != len(desc.TexCoords) {
		return nil, fmt.Errorf("%w: %d indices, %d normals, %d texture coordinates",
			ErrAttributeMismatch, len(desc.VertexIndices), len(desc.Normals), len(desc.TexCoords))
	}
	if len(desc.Vertices) == 0 {
		return nil, ErrNoVertices
	}

	numTris := 0
	maxVertIndex := uint32(0)
	k := 0
	for i, size := range desc.FaceSizes {
		if size < 3 {
			return nil, fmt.Errorf("face %d: %w (%d)", i, ErrDegenerateFace, size)
		}
		if k+int(size) > len(desc.VertexIndices) {
			return nil, fmt.Errorf("face %d: %w", i, ErrFaceOverrun)
		}
		numTris += int(size) - 2
		for _, idx := range desc.VertexIndices[k : k+int(size)] {
			maxVertIndex = max(maxVertIndex, idx)
		}
		k += int(size)
	}
	if int(maxVertIndex) >= len(desc.Vertices) {
		return nil, fmt.Errorf("%w: index %d with %d vertices", ErrIndexOutOfRange, maxVertIndex, len(desc.Vertices))
	}

	m := &Mesh{
		Name:        desc.Name,
		Color:       desc.Color,
		vertices:    make([]math3d.Vec3, maxVertIndex+1),
		indices:     make([]uint32, 0, numTris*CornersPerTriangle),
		normals:     make([]math3d.Vec3, 0, numTris*CornersPerTriangle),
		texCoords:   make([]math3d.Vec2, 0, numTris*CornersPerTriangle),
		numTris:     numTris,
		translation: math3d.Translate(math3d.V3(0, 0, desc.Vertices[0].Z)),
		rotation:    math3d.Identity(),
	}
	copy(m.vertices, desc.Vertices)

	k = 0
	for _, size := range desc.FaceSizes {
		for j := 0; j < int(size)-2; j++ {
			for _, c := range [CornersPerTriangle]int{k, k + j + 1, k + j + 2} {
				m.indices = append(m.indices, desc.VertexIndices[c])
				m.normals = append(m.normals, desc.Normals[c])
				m.texCoords = append(m.texCoords, desc.TexCoords[c])
			}
		}
		k += int(size)
	}

	m.CalculateBounds()
	return m, nil
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return m.numTris
}

// VertexCount returns the number of unique vertices.
func (m *Mesh) VertexCount() int {
	return len(m.vertices)
}

// Vertices returns a copy of the vertex position buffer.
func (m *Mesh) Vertices() []math3d.Vec3 {
	return append([]math3d.Vec3(nil), m.vertices...)
}

// Indices returns a copy of the triangle index buffer.
func (m *Mesh) Indices() []uint32 {
	return append([]uint32(nil), m.indices...)
}

// Normals returns a copy of the per-corner normal buffer.
func (m *Mesh) Normals() []math3d.Vec3 {
	return append([]math3d.Vec3(nil), m.normals...)
}

// TexCoords returns a copy of the per-corner texture coordinate buffer.
func (m *Mesh) TexCoords() []math3d.Vec2 {
	return append([]math3d.Vec2(nil), m.texCoords...)
}

// Triangle returns the three vertex positions of triangle tri.
func (m *Mesh) Triangle(tri int) (v0, v1, v2 math3d.Vec3) {
	base := tri * CornersPerTriangle
	return m.vertices[m.indices[base]], m.vertices[m.indices[base+1]], m.vertices[m.indices[base+2]]
}

// Albedo returns the flat surface color.
func (m *Mesh) Albedo() math3d.Vec3 {
	return m.Color
}

// Translation returns the accumulated translation, starting from the
// resting Z offset of the first input vertex.
func (m *Mesh) Translation() math3d.Mat4 {
	return m.translation
}

// Rotation returns the accumulated rotation.
func (m *Mesh) Rotation() math3d.Mat4 {
	return m.rotation
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.vertices) == 0 {
		return
	}

	m.boundsMin = m.vertices[0]
	m.boundsMax = m.vertices[0]

	for _, v := range m.vertices[1:] {
		m.boundsMin = m.boundsMin.Min(v)
		m.boundsMax = m.boundsMax.Max(v)
	}
}

// Bounds returns the axis-aligned bounding box.
func (m *Mesh) Bounds() (lo, hi math3d.Vec3) {
	return m.boundsMin, m.boundsMax
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.boundsMin.Add(m.boundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.boundsMax.Sub(m.boundsMin)
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := *m
	clone.vertices = m.Vertices()
	clone.indices = m.Indices()
	clone.normals = m.Normals()
	clone.texCoords = m.TexCoords()
	return &clone
}
