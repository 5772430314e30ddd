package models

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/tracearoom/pkg/math3d"
)

// twoTriangleDoc builds a document with two single-triangle primitives. The
// first carries normals, texture coordinates and a material; the second only
// positions and indices.
func twoTriangleDoc() *gltf.Document {
	doc := gltf.NewDocument()

	pos0 := modeler.WritePosition(doc, [][3]float32{{0, 0, -2}, {1, 0, -2}, {0, 1, -2}})
	nrm0 := modeler.WriteNormal(doc, [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}})
	uv0 := modeler.WriteTextureCoord(doc, [][2]float32{{0, 0}, {1, 0}, {0, 1}})
	idx0 := modeler.WriteIndices(doc, []uint16{0, 1, 2})

	pos1 := modeler.WritePosition(doc, [][3]float32{{2, 0, -3}, {3, 0, -3}, {2, 1, -3}})
	idx1 := modeler.WriteIndices(doc, []uint16{0, 1, 2})

	doc.Materials = []*gltf.Material{{
		Name: "wall",
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{0.25, 0.5, 0.75, 1},
		},
	}}
	doc.Meshes = []*gltf.Mesh{{
		Name: "room",
		Primitives: []*gltf.Primitive{
			{
				Attributes: gltf.PrimitiveAttributes{
					gltf.POSITION:   pos0,
					gltf.NORMAL:     nrm0,
					gltf.TEXCOORD_0: uv0,
				},
				Indices:  gltf.Index(idx0),
				Material: gltf.Index(0),
			},
			{
				Attributes: gltf.PrimitiveAttributes{gltf.POSITION: pos1},
				Indices:    gltf.Index(idx1),
			},
		},
	}}
	doc.Nodes = []*gltf.Node{{Name: "room", Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = []int{0}
	return doc
}

func saveGLB(t *testing.T, doc *gltf.Document) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadGLBInvalidPath(t *testing.T) {
	_, err := LoadGLB("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadGLBGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.glb")
	if err := os.WriteFile(path, []byte("not a gltf document"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadGLB(path); err == nil {
		t.Error("Expected error for malformed file")
	}
}

func TestGLTFLoaderCreation(t *testing.T) {
	loader := NewGLTFLoader()
	if loader == nil {
		t.Error("NewGLTFLoader returned nil")
		return
	}
	if !loader.SmoothNormals {
		t.Error("SmoothNormals should default to true")
	}
	if loader.Color.LenSq() == 0 {
		t.Error("Color should default to a visible grey")
	}
}

func TestLoadGLB(t *testing.T) {
	m, err := LoadGLB(saveGLB(t, twoTriangleDoc()))
	if err != nil {
		t.Fatal(err)
	}

	if got := m.TriangleCount(); got != 2 {
		t.Errorf("TriangleCount = %d, want 2", got)
	}
	if got := m.VertexCount(); got != 6 {
		t.Errorf("VertexCount = %d, want 6", got)
	}

	// The second primitive's indices are rebased past the first's vertices.
	wantIdx := []uint32{0, 1, 2, 3, 4, 5}
	idx := m.Indices()
	if len(idx) != len(wantIdx) {
		t.Fatalf("Indices = %v, want %v", idx, wantIdx)
	}
	for i := range wantIdx {
		if idx[i] != wantIdx[i] {
			t.Errorf("Indices = %v, want %v", idx, wantIdx)
			break
		}
	}

	// V is flipped; corners without texture coordinates stay zero.
	wantST := []math3d.Vec2{
		math3d.V2(0, 1), math3d.V2(1, 1), math3d.V2(0, 0),
		{}, {}, {},
	}
	for i, st := range m.TexCoords() {
		if st != wantST[i] {
			t.Errorf("TexCoords[%d] = %v, want %v", i, st, wantST[i])
		}
	}

	if !m.Albedo().ApproxEqual(math3d.V3(0.25, 0.5, 0.75), tol) {
		t.Errorf("Albedo = %v, want base color factor", m.Albedo())
	}
	if m.Shading != ShadingSmooth {
		t.Errorf("Shading = %v, want smooth", m.Shading)
	}
	if m.Name != "scene.glb" {
		t.Errorf("Name = %q", m.Name)
	}

	v0, v1, v2 := m.Triangle(1)
	if !v0.ApproxEqual(math3d.V3(2, 0, -3), tol) || !v1.ApproxEqual(math3d.V3(3, 0, -3), tol) || !v2.ApproxEqual(math3d.V3(2, 1, -3), tol) {
		t.Errorf("Triangle(1) = %v %v %v", v0, v1, v2)
	}

	// Counter-clockwise winding faces +Z.
	if _, tri, _, ok := m.Intersect(math3d.V3(0.2, 0.2, 0), math3d.V3(0, 0, -1), math.Inf(1)); !ok || tri != 0 {
		t.Fatalf("ray missed the first triangle (tri %d, ok %v)", tri, ok)
	}
}

func TestGLTFLoaderFlatShading(t *testing.T) {
	l := NewGLTFLoader()
	l.SmoothNormals = false
	m, err := l.Load(saveGLB(t, twoTriangleDoc()))
	if err != nil {
		t.Fatal(err)
	}
	if m.Shading != ShadingFlat {
		t.Errorf("Shading = %v, want flat", m.Shading)
	}
}

func TestGLTFLoaderDefaultColor(t *testing.T) {
	doc := twoTriangleDoc()
	doc.Meshes[0].Primitives[0].Material = nil

	l := NewGLTFLoader()
	l.Color = math3d.V3(0.1, 0.2, 0.3)
	m, err := l.Load(saveGLB(t, doc))
	if err != nil {
		t.Fatal(err)
	}
	if m.Albedo() != l.Color {
		t.Errorf("Albedo = %v, want loader color %v", m.Albedo(), l.Color)
	}
}

func TestLoadGLBPointsOnly(t *testing.T) {
	doc := twoTriangleDoc()
	for _, p := range doc.Meshes[0].Primitives {
		p.Mode = gltf.PrimitivePoints
	}

	_, err := LoadGLB(saveGLB(t, doc))
	if !errors.Is(err, ErrNoGeometry) {
		t.Errorf("err = %v, want ErrNoGeometry", err)
	}
}

func TestLoadGLBDanglingReferences(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(doc *gltf.Document)
	}{
		{"position accessor", func(doc *gltf.Document) {
			doc.Meshes[0].Primitives[1].Attributes[gltf.POSITION] = 99
		}},
		{"normal accessor", func(doc *gltf.Document) {
			doc.Meshes[0].Primitives[0].Attributes[gltf.NORMAL] = 99
		}},
		{"texcoord accessor", func(doc *gltf.Document) {
			doc.Meshes[0].Primitives[0].Attributes[gltf.TEXCOORD_0] = -1
		}},
		{"index accessor", func(doc *gltf.Document) {
			doc.Meshes[0].Primitives[1].Indices = gltf.Index(42)
		}},
		{"buffer view", func(doc *gltf.Document) {
			doc.Accessors[0].BufferView = gltf.Index(50)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := twoTriangleDoc()
			tt.mutate(doc)

			_, err := LoadGLB(saveGLB(t, doc))
			if !errors.Is(err, ErrBadReference) {
				t.Errorf("err = %v, want ErrBadReference", err)
			}
		})
	}
}

func TestAccessorAt(t *testing.T) {
	doc := twoTriangleDoc()
	if _, err := accessorAt(doc, len(doc.Accessors)-1); err != nil {
		t.Errorf("last accessor: %v", err)
	}
	for _, idx := range []int{-1, len(doc.Accessors)} {
		if _, err := accessorAt(doc, idx); !errors.Is(err, ErrBadReference) {
			t.Errorf("accessorAt(%d) = %v, want ErrBadReference", idx, err)
		}
	}
}

func TestAccessorAtDanglingBuffer(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(doc *gltf.Document)
	}{
		{"buffer", func(doc *gltf.Document) { doc.BufferViews[0].Buffer = 7 }},
		{"negative buffer view", func(doc *gltf.Document) { doc.Accessors[0].BufferView = gltf.Index(-1) }},
		{"offset past view", func(doc *gltf.Document) { doc.Accessors[0].ByteOffset = 1 << 20 }},
		{"negative count", func(doc *gltf.Document) { doc.Accessors[0].Count = -3 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := twoTriangleDoc()
			tt.mutate(doc)
			if _, err := readPositions(doc, 0); !errors.Is(err, ErrBadReference) {
				t.Errorf("err = %v, want ErrBadReference", err)
			}
		})
	}
}
