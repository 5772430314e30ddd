package config

import (
	"errors"
	"fmt"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate reports every problem in the config at once.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		bad("render size %dx%d must be positive", c.Render.Width, c.Render.Height)
	}
	if c.Render.Workers < 0 {
		bad("render.workers %d must not be negative", c.Render.Workers)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		bad("camera.fov %g must be in (0, 180)", c.Camera.FOV)
	}
	if c.Camera.LookAt != nil && *c.Camera.LookAt == c.Camera.Position {
		bad("camera.look_at equals camera.position")
	}

	for i, l := range c.Lights {
		if l.Intensity < 0 {
			bad("lights[%d].intensity %g must not be negative", i, l.Intensity)
		}
	}

	for i, m := range c.Meshes {
		switch m.Kind {
		case KindQuad, "":
			if m.Size[0] <= 0 || m.Size[1] <= 0 {
				bad("meshes[%d] (%s): quad size %v must be positive", i, m.Name, m.Size)
			}
		case KindGLTF:
			if m.Path == "" {
				bad("meshes[%d] (%s): gltf mesh needs a path", i, m.Name)
			}
		default:
			bad("meshes[%d] (%s): unknown kind %q", i, m.Name, m.Kind)
		}

		switch m.Shading {
		case "", "flat", "smooth":
		default:
			bad("meshes[%d] (%s): unknown shading %q", i, m.Name, m.Shading)
		}

		for j, tr := range m.Transforms {
			switch {
			case (tr.Translate == nil) == (tr.Rotate == nil):
				bad("meshes[%d].transforms[%d]: set exactly one of translate or rotate", i, j)
			case tr.Rotate != nil && tr.Rotate.Axis == (Vec{}):
				bad("meshes[%d].transforms[%d]: rotation axis is zero", i, j)
			}
		}
	}

	if c.Orbit.Frames <= 0 || c.Orbit.FPS <= 0 {
		bad("orbit frames %d and fps %d must be positive", c.Orbit.Frames, c.Orbit.FPS)
	}
	if c.Orbit.Axis == (Vec{}) {
		bad("orbit.axis is zero")
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		bad("logging.level %q must be debug, info, warn or error", c.Logging.Level)
	}

	return errors.Join(errs...)
}
