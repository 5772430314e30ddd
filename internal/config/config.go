// Package config handles scene and render configuration loading and
// management.
package config

import "github.com/taigrr/tracearoom/pkg/math3d"

// Vec is an [x, y, z] triple as written in config files.
type Vec [3]float64

// V3 converts to a math3d vector.
func (v Vec) V3() math3d.Vec3 {
	return math3d.V3(v[0], v[1], v[2])
}

// Config holds every setting for one render.
type Config struct {
	Output  OutputConfig  `yaml:"output" toml:"output"`
	Render  RenderConfig  `yaml:"render" toml:"render"`
	Camera  CameraConfig  `yaml:"camera" toml:"camera"`
	Lights  []LightConfig `yaml:"lights" toml:"lights"`
	Meshes  []MeshConfig  `yaml:"meshes" toml:"meshes"`
	Orbit   OrbitConfig   `yaml:"orbit" toml:"orbit"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// OutputConfig holds where still frames are written.
type OutputConfig struct {
	Path string `yaml:"path" toml:"path"` // .bmp or .png
}

// RenderConfig holds image and scheduling settings.
type RenderConfig struct {
	Width      int `yaml:"width" toml:"width"`
	Height     int `yaml:"height" toml:"height"`
	Workers    int `yaml:"workers" toml:"workers"` // 0 = one per CPU, 1 = serial
	Background Vec `yaml:"background" toml:"background"`
}

// CameraConfig places the camera. Without LookAt the camera faces -Z.
type CameraConfig struct {
	FOV      float64 `yaml:"fov" toml:"fov"` // vertical, degrees
	Position Vec     `yaml:"position" toml:"position"`
	LookAt   *Vec    `yaml:"look_at,omitempty" toml:"look_at,omitempty"`
	Up       Vec     `yaml:"up" toml:"up"`
}

// LightConfig describes a point light.
type LightConfig struct {
	Position  Vec     `yaml:"position" toml:"position"`
	Color     Vec     `yaml:"color" toml:"color"`
	Intensity float64 `yaml:"intensity" toml:"intensity"`
}

// Mesh kinds.
const (
	KindQuad = "quad"
	KindGLTF = "gltf"
)

// MeshConfig describes one object and the transforms applied to it in
// order after it is built.
type MeshConfig struct {
	Name    string `yaml:"name" toml:"name"`
	Kind    string `yaml:"kind" toml:"kind"`
	Color   Vec    `yaml:"color" toml:"color"`
	Shading string `yaml:"shading,omitempty" toml:"shading,omitempty"`

	// Path is the glTF/GLB file for KindGLTF.
	Path string `yaml:"path,omitempty" toml:"path,omitempty"`

	// Size holds the quad half extents and Z its depth, for KindQuad.
	Size [2]float64 `yaml:"size,omitempty" toml:"size,omitempty"`
	Z    float64    `yaml:"z,omitempty" toml:"z,omitempty"`

	Transforms []TransformConfig `yaml:"transforms,omitempty" toml:"transforms,omitempty"`
}

// TransformConfig is a single rigid transform. Exactly one field is set.
type TransformConfig struct {
	Translate *Vec          `yaml:"translate,omitempty" toml:"translate,omitempty"`
	Rotate    *RotateConfig `yaml:"rotate,omitempty" toml:"rotate,omitempty"`
}

// RotateConfig turns a mesh about Axis. Without Pivot the axis passes
// through the mesh reference point; Pivot is relative to that point.
type RotateConfig struct {
	Degrees float64 `yaml:"degrees" toml:"degrees"`
	Axis    Vec     `yaml:"axis" toml:"axis"`
	Pivot   *Vec    `yaml:"pivot,omitempty" toml:"pivot,omitempty"`
}

// OrbitConfig holds turntable animation settings.
type OrbitConfig struct {
	Path    string  `yaml:"path" toml:"path"`
	Frames  int     `yaml:"frames" toml:"frames"`
	FPS     int     `yaml:"fps" toml:"fps"`
	Degrees float64 `yaml:"degrees" toml:"degrees"`
	Axis    Vec     `yaml:"axis" toml:"axis"`
	Pivot   Vec     `yaml:"pivot" toml:"pivot"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns the two-wall demo room: a red wall straight ahead, a
// green wall turned 20 degrees to the left of it, and one white light
// between them and the camera.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Path: "out.bmp",
		},
		Render: RenderConfig{
			Width:      640,
			Height:     480,
			Workers:    0,
			Background: Vec{1, 1, 1},
		},
		Camera: CameraConfig{
			FOV:      50.0393,
			Position: Vec{0, 0, -10},
			Up:       Vec{0, 1, 0},
		},
		Lights: []LightConfig{
			{Position: Vec{0, 0, -15}, Color: Vec{1, 1, 1}, Intensity: 580},
		},
		Meshes: []MeshConfig{
			{
				Name:  "wall1",
				Kind:  KindQuad,
				Size:  [2]float64{6.5, 5},
				Z:     -23,
				Color: Vec{1, 0, 0},
				Transforms: []TransformConfig{
					{Translate: &Vec{2, 0, 0}},
				},
			},
			{
				Name:  "wall2",
				Kind:  KindQuad,
				Size:  [2]float64{5, 4.5},
				Z:     -20,
				Color: Vec{0.1, 0.8, 0},
				Transforms: []TransformConfig{
					{Rotate: &RotateConfig{Degrees: 20, Axis: Vec{0, 1, 0}}},
					{Translate: &Vec{-5, 0, 0}},
				},
			},
		},
		Orbit: OrbitConfig{
			Path:    "orbit.gif",
			Frames:  36,
			FPS:     12,
			Degrees: 360,
			Axis:    Vec{0, 1, 0},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
