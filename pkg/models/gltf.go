package models

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/tracearoom/pkg/math3d"
)

// glTF decoding errors.
var (
	ErrNoGeometry   = errors.New("gltf document has no triangle geometry")
	ErrBadReference = errors.New("gltf reference out of range")
)

// GLTFLoader loads GLTF/GLB files into a PolygonMesh.
type GLTFLoader struct {
	// Color is used when the document has no base color factor.
	Color math3d.Vec3
	// SmoothNormals selects ShadingSmooth for meshes that carry normals.
	SmoothNormals bool
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		Color:         math3d.V3(0.8, 0.8, 0.8),
		SmoothNormals: true,
	}
}

// LoadGLB loads a GLTF or GLB file with default options and builds the mesh.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load reads the document at path and builds a single mesh from all of its
// triangle primitives.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	desc, hasNormals, err := l.Polygon(path)
	if err != nil {
		return nil, err
	}

	mesh, err := NewTriangleMesh(desc)
	if err != nil {
		return nil, fmt.Errorf("build mesh %q: %w", desc.Name, err)
	}
	if l.SmoothNormals && hasNormals {
		mesh.Shading = ShadingSmooth
	}
	return mesh, nil
}

// Polygon reads the document at path into a triangle-only PolygonMesh.
// hasNormals reports whether the document supplied vertex normals.
func (l *GLTFLoader) Polygon(path string) (desc PolygonMesh, hasNormals bool, err error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return desc, false, fmt.Errorf("open gltf: %w", err)
	}

	desc = PolygonMesh{
		Name:  filepath.Base(path),
		Color: l.Color,
	}
	colorSet := false

	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			primNormals, err := appendPrimitive(doc, prim, &desc)
			if err != nil {
				return desc, false, fmt.Errorf("process mesh %q: %w", m.Name, err)
			}
			hasNormals = hasNormals || primNormals

			if !colorSet {
				if c, ok := baseColor(doc, prim); ok {
					desc.Color = c
					colorSet = true
				}
			}
		}
	}

	if len(desc.FaceSizes) == 0 {
		return desc, false, ErrNoGeometry
	}
	return desc, hasNormals, nil
}

// appendPrimitive adds one primitive's triangles to desc as 3-corner faces.
func appendPrimitive(doc *gltf.Document, prim *gltf.Primitive, desc *PolygonMesh) (hasNormals bool, err error) {
	if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
		// Lines and points carry no surface.
		return false, nil
	}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return false, nil
	}

	positions, err := readPositions(doc, posIdx)
	if err != nil {
		return false, fmt.Errorf("read positions: %w", err)
	}

	var normals []math3d.Vec3
	if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err = readNormals(doc, normIdx)
		if err != nil {
			return false, fmt.Errorf("read normals: %w", err)
		}
	}

	var uvs []math3d.Vec2
	if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		uvs, err = readTexCoords(doc, uvIdx)
		if err != nil {
			return false, fmt.Errorf("read uvs: %w", err)
		}
	}

	var indices []int
	if prim.Indices != nil {
		indices, err = readIndices(doc, *prim.Indices)
		if err != nil {
			return false, fmt.Errorf("read indices: %w", err)
		}
	} else {
		indices = make([]int, len(positions))
		for i := range indices {
			indices[i] = i
		}
	}

	base := uint32(len(desc.Vertices))
	desc.Vertices = append(desc.Vertices, positions...)

	// glTF front faces are counter-clockwise, which matches the
	// (v1-v0)×(v2-v0) face normal, so the winding is kept as is.
	for i := 0; i+2 < len(indices); i += CornersPerTriangle {
		desc.FaceSizes = append(desc.FaceSizes, CornersPerTriangle)
		for _, idx := range indices[i : i+CornersPerTriangle] {
			if idx >= len(positions) {
				return false, fmt.Errorf("%w: index %d with %d positions", ErrIndexOutOfRange, idx, len(positions))
			}
			desc.VertexIndices = append(desc.VertexIndices, base+uint32(idx))

			var n math3d.Vec3
			if idx < len(normals) {
				n = normals[idx]
			}
			desc.Normals = append(desc.Normals, n)

			var st math3d.Vec2
			if idx < len(uvs) {
				// glTF puts V=0 at the top; flip to a bottom-left origin.
				st = math3d.V2(uvs[idx].X, 1.0-uvs[idx].Y)
			}
			desc.TexCoords = append(desc.TexCoords, st)
		}
	}

	return len(normals) > 0, nil
}

// baseColor returns the primitive material's base color factor.
func baseColor(doc *gltf.Document, prim *gltf.Primitive) (math3d.Vec3, bool) {
	if prim.Material == nil || *prim.Material >= len(doc.Materials) {
		return math3d.Vec3{}, false
	}
	pbr := doc.Materials[*prim.Material].PBRMetallicRoughness
	if pbr == nil || pbr.BaseColorFactor == nil {
		return math3d.Vec3{}, false
	}
	f := pbr.BaseColorFactor
	return math3d.V3(f[0], f[1], f[2]), true
}

// accessorAt returns accessor idx once it, its buffer view and that view's
// buffer are known to exist.
func accessorAt(doc *gltf.Document, idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, fmt.Errorf("%w: accessor %d of %d", ErrBadReference, idx, len(doc.Accessors))
	}
	acr := doc.Accessors[idx]
	if acr.Count < 0 || acr.ByteOffset < 0 {
		return nil, fmt.Errorf("%w: accessor %d has negative count or offset", ErrBadReference, idx)
	}
	if acr.BufferView == nil {
		return acr, nil
	}

	bv := *acr.BufferView
	if bv < 0 || bv >= len(doc.BufferViews) {
		return nil, fmt.Errorf("%w: buffer view %d of %d", ErrBadReference, bv, len(doc.BufferViews))
	}
	view := doc.BufferViews[bv]
	if view.Buffer < 0 || view.Buffer >= len(doc.Buffers) {
		return nil, fmt.Errorf("%w: buffer %d of %d", ErrBadReference, view.Buffer, len(doc.Buffers))
	}
	if view.ByteOffset < 0 || view.ByteLength < 0 || acr.ByteOffset > view.ByteLength {
		return nil, fmt.Errorf("%w: accessor %d offset outside buffer view %d", ErrBadReference, idx, bv)
	}
	if buf := doc.Buffers[view.Buffer]; buf.URI != "" && buf.Data == nil {
		return nil, fmt.Errorf("external buffers not supported yet")
	}
	return acr, nil
}

// readPositions reads a POSITION accessor.
func readPositions(doc *gltf.Document, idx int) ([]math3d.Vec3, error) {
	acr, err := accessorAt(doc, idx)
	if err != nil {
		return nil, err
	}
	data, err := modeler.ReadPosition(doc, acr, nil)
	if err != nil {
		return nil, err
	}
	return toVec3(data), nil
}

// readNormals reads a NORMAL accessor.
func readNormals(doc *gltf.Document, idx int) ([]math3d.Vec3, error) {
	acr, err := accessorAt(doc, idx)
	if err != nil {
		return nil, err
	}
	data, err := modeler.ReadNormal(doc, acr, nil)
	if err != nil {
		return nil, err
	}
	return toVec3(data), nil
}

// readTexCoords reads a TEXCOORD_0 accessor; normalized integer
// coordinates come back as floats in [0, 1].
func readTexCoords(doc *gltf.Document, idx int) ([]math3d.Vec2, error) {
	acr, err := accessorAt(doc, idx)
	if err != nil {
		return nil, err
	}
	data, err := modeler.ReadTextureCoord(doc, acr, nil)
	if err != nil {
		return nil, err
	}
	result := make([]math3d.Vec2, len(data))
	for i, f := range data {
		result[i] = math3d.V2(float64(f[0]), float64(f[1]))
	}
	return result, nil
}

// readIndices reads an index accessor of any unsigned component type.
func readIndices(doc *gltf.Document, idx int) ([]int, error) {
	acr, err := accessorAt(doc, idx)
	if err != nil {
		return nil, err
	}
	data, err := modeler.ReadIndices(doc, acr, nil)
	if err != nil {
		return nil, err
	}
	result := make([]int, len(data))
	for i, x := range data {
		result[i] = int(x)
	}
	return result, nil
}

func toVec3(data [][3]float32) []math3d.Vec3 {
	result := make([]math3d.Vec3, len(data))
	for i, f := range data {
		result[i] = math3d.V3(float64(f[0]), float64(f[1]), float64(f[2]))
	}
	return result
}
