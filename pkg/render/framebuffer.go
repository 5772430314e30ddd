package render

import (
	"image"
	"image/color"

	"github.com/taigrr/tracearoom/pkg/math3d"
)

// Framebuffer is a row-major grid of linear RGB values. Values are not
// clamped until the buffer is quantized.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []math3d.Vec3
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]math3d.Vec3, width*height),
	}
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c math3d.Vec3) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c math3d.Vec3) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) math3d.Vec3 {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return math3d.Vec3{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// Row returns the pixels of scanline y.
func (fb *Framebuffer) Row(y int) []math3d.Vec3 {
	return fb.Pixels[y*fb.Width : (y+1)*fb.Width]
}

// Quantize converts a linear color to 8-bit channels: clamp to [0, 1],
// scale by 255, truncate.
func Quantize(c math3d.Vec3) color.RGBA {
	c = c.Clamp01().Scale(255)
	return color.RGBA{R: uint8(c.X), G: uint8(c.Y), B: uint8(c.Z), A: 255}
}

// ToImage quantizes the framebuffer to an opaque image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, Quantize(fb.Pixels[y*fb.Width+x]))
		}
	}
	return img
}
