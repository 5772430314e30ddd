package scene

import (
	"context"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/tracearoom/internal/config"
	"github.com/taigrr/tracearoom/pkg/math3d"
	"github.com/taigrr/tracearoom/pkg/models"
	"github.com/taigrr/tracearoom/pkg/render"
)

const tol = 1e-9

func demo(t *testing.T) *Scene {
	t.Helper()
	s, err := Build(config.Default(), ".")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return s
}

func TestBuildDemo(t *testing.T) {
	s := demo(t)

	if len(s.Meshes) != 2 || len(s.Lights) != 1 {
		t.Fatalf("got %d meshes, %d lights", len(s.Meshes), len(s.Lights))
	}
	if s.TriangleCount() != 4 {
		t.Errorf("TriangleCount = %d, want 4", s.TriangleCount())
	}

	if c := s.Meshes[0].Center(); !c.ApproxEqual(math3d.V3(2, 0, -23), tol) {
		t.Errorf("wall1 center = %v, want (2, 0, -23)", c)
	}
	if c := s.Meshes[1].Center(); !c.ApproxEqual(math3d.V3(-5, 0, -20), 1e-9) {
		t.Errorf("wall2 center = %v, want (-5, 0, -20)", c)
	}
	if size := s.Meshes[1].Size(); math.Abs(size.Z-2*5*math.Sin(math3d.Radians(20))) > 1e-9 {
		t.Errorf("wall2 depth = %f, want the 20 degree turn", size.Z)
	}

	if p := s.Camera.Position(); !p.ApproxEqual(math3d.V3(0, 0, -10), tol) {
		t.Errorf("camera at %v, want (0, 0, -10)", p)
	}
}

func TestDemoStraightAhead(t *testing.T) {
	s := demo(t)

	// Straight ahead passes wall2 and hits wall1 eight units beyond the
	// light, facing it head on.
	got := s.Shooter.ShootAt(math3d.V3(0, 0, -10), math3d.V3(0, 0, -1))
	want := 580 / (4 * math.Pi * 64)
	if math.Abs(got.X-want) > 1e-9 || got.Y != 0 || got.Z != 0 {
		t.Errorf("color = %v, want (%f, 0, 0)", got, want)
	}
}

func TestDemoGreenWall(t *testing.T) {
	s := demo(t)

	got := s.Shooter.ShootAt(math3d.V3(-5, 0, -10), math3d.V3(0, 0, -1))
	if got.Y <= 0 {
		t.Fatalf("color = %v, want lit green", got)
	}
	if math.Abs(got.X/got.Y-0.1/0.8) > 1e-9 || got.Z != 0 {
		t.Errorf("color = %v, want albedo ratio (0.1, 0.8, 0)", got)
	}
}

func TestDemoRender(t *testing.T) {
	cfg := config.Default()
	cfg.Render.Width, cfg.Render.Height = 64, 48
	s, err := Build(cfg, ".")
	if err != nil {
		t.Fatal(err)
	}

	fb, err := s.Renderer(0).Frame(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	center := render.Quantize(fb.GetPixel(32, 24))
	if center.R < 175 || center.R > 190 || center.G != 0 || center.B != 0 {
		t.Errorf("center = %v, want red around 183", center)
	}
	if corner := render.Quantize(fb.GetPixel(63, 0)); corner.R != 255 || corner.G != 255 || corner.B != 255 {
		t.Errorf("top right = %v, want white background", corner)
	}
}

func TestBuildMeshTransforms(t *testing.T) {
	mc := config.MeshConfig{
		Kind:    config.KindQuad,
		Size:    [2]float64{1, 1},
		Z:       -4,
		Color:   config.Vec{1, 1, 1},
		Shading: "smooth",
		Transforms: []config.TransformConfig{
			{Rotate: &config.RotateConfig{Degrees: 180, Axis: config.Vec{0, 1, 0}, Pivot: &config.Vec{1, 0, 0}}},
			{Translate: &config.Vec{0, 3, 0}},
		},
	}

	m, err := BuildMesh(mc, ".")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(m.Name, "mesh-") {
		t.Errorf("unnamed mesh got %q", m.Name)
	}
	if m.Shading != models.ShadingSmooth {
		t.Errorf("shading = %v, want smooth", m.Shading)
	}
	if c := m.Center(); !c.ApproxEqual(math3d.V3(2, 3, -4), 1e-9) {
		t.Errorf("center = %v, want (2, 3, -4)", c)
	}
}

func TestBuildMissingGLTF(t *testing.T) {
	cfg := config.Default()
	cfg.Meshes = append(cfg.Meshes, config.MeshConfig{Name: "teapot", Kind: config.KindGLTF, Path: "missing.glb"})

	_, err := Build(cfg, t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "teapot") {
		t.Errorf("err = %v, want a failure naming the mesh", err)
	}
}

func TestResolvePath(t *testing.T) {
	tests := []struct {
		base, path, want string
	}{
		{"scenes", "wall.glb", filepath.Join("scenes", "wall.glb")},
		{"scenes", "../props/chair.glb", filepath.Join("props", "chair.glb")},
		{".", "wall.glb", "wall.glb"},
		{"scenes", "/abs/wall.glb", "/abs/wall.glb"},
	}
	for _, tt := range tests {
		if got := ResolvePath(tt.base, tt.path); got != tt.want {
			t.Errorf("ResolvePath(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.want)
		}
	}
}

func TestLookAtCamera(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.Position = config.Vec{0, 0, 5}
	cfg.Camera.LookAt = &config.Vec{0, 0, -20}
	cfg.Render.Width, cfg.Render.Height = 3, 3

	ray := NewCamera(cfg).PrimaryRay(1, 1)
	if !ray.Dir.ApproxEqual(math3d.V3(0, 0, -1), 1e-9) {
		t.Errorf("dir = %v, want (0, 0, -1)", ray.Dir)
	}
}
