// Package scene assembles meshes, lights, a camera and a shooter from a
// config.
package scene

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/taigrr/tracearoom/internal/config"
	"github.com/taigrr/tracearoom/pkg/lighting"
	"github.com/taigrr/tracearoom/pkg/math3d"
	"github.com/taigrr/tracearoom/pkg/models"
	"github.com/taigrr/tracearoom/pkg/render"
)

// Scene is everything needed to render one configuration.
type Scene struct {
	Meshes  []*models.Mesh
	Lights  []*lighting.PointLight
	Camera  *render.Camera
	Shooter *render.Shooter
}

// Build constructs the scene described by cfg. Relative mesh paths resolve
// against baseDir.
func Build(cfg *config.Config, baseDir string) (*Scene, error) {
	s := &Scene{
		Camera: NewCamera(cfg),
	}

	for i, mc := range cfg.Meshes {
		m, err := BuildMesh(mc, baseDir)
		if err != nil {
			return nil, fmt.Errorf("mesh %d (%s): %w", i, mc.Name, err)
		}
		s.Meshes = append(s.Meshes, m)
	}

	for _, lc := range cfg.Lights {
		s.Lights = append(s.Lights, lighting.NewPointLightAt(lc.Position.V3(), lc.Color.V3(), lc.Intensity))
	}

	s.Shooter = render.NewShooter(s.Objects(), s.lights(), cfg.Render.Background.V3())
	return s, nil
}

// NewCamera builds the camera from cfg.
func NewCamera(cfg *config.Config) *render.Camera {
	cam := render.NewCamera(cfg.Render.Width, cfg.Render.Height, cfg.Camera.FOV)
	if cfg.Camera.LookAt != nil {
		up := cfg.Camera.Up.V3()
		if up.LenSq() == 0 {
			up = math3d.Up()
		}
		cam.LookAt(cfg.Camera.Position.V3(), cfg.Camera.LookAt.V3(), up)
	} else {
		cam.CameraToWorld = math3d.Translate(cfg.Camera.Position.V3())
	}
	return cam
}

// ResolvePath joins a relative mesh path onto baseDir. Absolute paths are
// returned unchanged.
func ResolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// BuildMesh builds one mesh and applies its transforms in order.
func BuildMesh(mc config.MeshConfig, baseDir string) (*models.Mesh, error) {
	name := mc.Name
	if name == "" {
		name = "mesh-" + uuid.NewString()[:8]
	}

	var (
		m   *models.Mesh
		err error
	)
	switch mc.Kind {
	case config.KindQuad, "":
		m, err = models.NewQuad(name, mc.Size[0], mc.Size[1], mc.Z, mc.Color.V3())
	case config.KindGLTF:
		path := ResolvePath(baseDir, mc.Path)
		loader := models.NewGLTFLoader()
		loader.Color = mc.Color.V3()
		loader.SmoothNormals = mc.Shading != "flat"
		m, err = loader.Load(path)
		if err == nil {
			m.Name = name
		}
	default:
		err = fmt.Errorf("unknown mesh kind %q", mc.Kind)
	}
	if err != nil {
		return nil, err
	}

	if mc.Shading == "smooth" {
		m.Shading = models.ShadingSmooth
	}

	for _, tr := range mc.Transforms {
		Apply(m, tr)
	}
	return m, nil
}

// Apply runs one configured transform on m.
func Apply(m *models.Mesh, tr config.TransformConfig) {
	switch {
	case tr.Translate != nil:
		m.Translate(tr.Translate.V3())
	case tr.Rotate != nil:
		angle := math3d.Radians(tr.Rotate.Degrees)
		axis := tr.Rotate.Axis.V3().Normalize()
		if tr.Rotate.Pivot != nil {
			m.RotateAround(tr.Rotate.Pivot.V3(), angle, axis)
		} else {
			m.Rotate(angle, axis)
		}
	}
}

// Objects returns the meshes as shooter objects.
func (s *Scene) Objects() []render.Object {
	objects := make([]render.Object, len(s.Meshes))
	for i, m := range s.Meshes {
		objects[i] = m
	}
	return objects
}

// Spinners returns the meshes as turntable spinners.
func (s *Scene) Spinners() []render.Spinner {
	spinners := make([]render.Spinner, len(s.Meshes))
	for i, m := range s.Meshes {
		spinners[i] = m
	}
	return spinners
}

func (s *Scene) lights() []render.Light {
	lights := make([]render.Light, len(s.Lights))
	for i, l := range s.Lights {
		lights[i] = l
	}
	return lights
}

// Renderer returns a renderer over the scene.
func (s *Scene) Renderer(workers int) *render.Renderer {
	return render.NewRenderer(s.Camera, s.Shooter, workers)
}

// TriangleCount sums the triangles of every mesh.
func (s *Scene) TriangleCount() int {
	n := 0
	for _, m := range s.Meshes {
		n += m.TriangleCount()
	}
	return n
}
