// Package lighting provides light sources for the ray caster.
package lighting

import (
	"math"

	"github.com/taigrr/tracearoom/pkg/math3d"
)

// PointLight emits equally in every direction from a single position and
// falls off with the square of the distance.
type PointLight struct {
	lightToWorld math3d.Mat4
	position     math3d.Vec3
	color        math3d.Vec3
	intensity    float64
}

// NewPointLight places a light at lightToWorld applied to the origin.
func NewPointLight(lightToWorld math3d.Mat4, color math3d.Vec3, intensity float64) *PointLight {
	return &PointLight{
		lightToWorld: lightToWorld,
		position:     lightToWorld.MulVec3(math3d.Zero3()),
		color:        color,
		intensity:    intensity,
	}
}

// NewPointLightAt is NewPointLight with a pure translation to pos.
func NewPointLightAt(pos, color math3d.Vec3, intensity float64) *PointLight {
	return NewPointLight(math3d.Translate(pos), color, intensity)
}

// Position returns the world-space position.
func (l *PointLight) Position() math3d.Vec3 {
	return l.position
}

// Color returns the light color.
func (l *PointLight) Color() math3d.Vec3 {
	return l.color
}

// Intensity returns the scalar power.
func (l *PointLight) Intensity() float64 {
	return l.intensity
}

// LightToWorld returns the placement matrix.
func (l *PointLight) LightToWorld() math3d.Mat4 {
	return l.lightToWorld
}

// Illuminate returns the light arriving at p. dir points from the light
// toward p; callers negate it for N·L. A point at the light position yields
// non-finite values.
func (l *PointLight) Illuminate(p math3d.Vec3) (dir, intensity math3d.Vec3, distance float64) {
	dir = p.Sub(l.position)
	r2 := dir.LenSq()
	distance = math.Sqrt(r2)
	dir = dir.Div(distance)
	intensity = l.color.Scale(l.intensity / (4 * math.Pi * r2))
	return dir, intensity, distance
}
