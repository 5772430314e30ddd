package models

import "github.com/taigrr/tracearoom/pkg/math3d"

// QuadPolygon describes a two-triangle quad in the XY plane spanning
// [-scaleX, scaleX] × [-scaleY, scaleY] at depth z. The winding gives a +Z
// face normal. Normals and texture coordinates are zero, as nothing samples
// them for a flat-shaded quad.
func QuadPolygon(name string, scaleX, scaleY, z float64, color math3d.Vec3) PolygonMesh {
	return PolygonMesh{
		Name:      name,
		FaceSizes: []uint32{3, 3},
		VertexIndices: []uint32{
			0, 1, 2,
			2, 3, 0,
		},
		Vertices: []math3d.Vec3{
			math3d.V3(scaleX, scaleY, z),
			math3d.V3(-scaleX, scaleY, z),
			math3d.V3(-scaleX, -scaleY, z),
			math3d.V3(scaleX, -scaleY, z),
		},
		Normals:   make([]math3d.Vec3, 6),
		TexCoords: make([]math3d.Vec2, 6),
		Color:     color,
	}
}

// NewQuad builds the mesh described by QuadPolygon.
func NewQuad(name string, scaleX, scaleY, z float64, color math3d.Vec3) (*Mesh, error) {
	return NewTriangleMesh(QuadPolygon(name, scaleX, scaleY, z, color))
}
