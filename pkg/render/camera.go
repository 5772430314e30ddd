package render

import (
	"math"

	"github.com/taigrr/tracearoom/pkg/math3d"
)

// Camera is a pinhole camera looking down -Z in its own space.
type Camera struct {
	Width  int
	Height int

	// FOV is the vertical field of view in degrees.
	FOV float64

	CameraToWorld math3d.Mat4
}

// NewCamera creates a camera at the origin looking down -Z.
func NewCamera(width, height int, fov float64) *Camera {
	return &Camera{
		Width:         width,
		Height:        height,
		FOV:           fov,
		CameraToWorld: math3d.Identity(),
	}
}

// AspectRatio returns width / height.
func (c *Camera) AspectRatio() float64 {
	return float64(c.Width) / float64(c.Height)
}

// Position returns the camera origin in world space.
func (c *Camera) Position() math3d.Vec3 {
	return c.CameraToWorld.MulVec3(math3d.Zero3())
}

// LookAt places the camera at eye facing target.
func (c *Camera) LookAt(eye, target, up math3d.Vec3) {
	c.CameraToWorld = math3d.LookAt(eye, target, up).Inverse()
}

// PrimaryRay returns the ray through the center of pixel (i, j), with j
// counting rows from the top.
func (c *Camera) PrimaryRay(i, j int) Ray {
	scale := math.Tan(math3d.Radians(c.FOV * 0.5))
	x := (2*(float64(i)+0.5)/float64(c.Width) - 1) * c.AspectRatio() * scale
	y := (1 - 2*(float64(j)+0.5)/float64(c.Height)) * scale

	dir := c.CameraToWorld.MulVec3Dir(math3d.V3(x, y, -1))
	return NewRay(c.Position(), dir)
}
