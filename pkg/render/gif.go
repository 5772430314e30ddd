package render

import (
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"os"
)

// ErrNoFrames is returned when an animation has nothing to encode.
var ErrNoFrames = errors.New("animation has no frames")

// paletted dithers img onto the Plan9 palette.
func paletted(img image.Image) *image.Paletted {
	p := image.NewPaletted(img.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(p, img.Bounds(), img, image.Point{})
	return p
}

func encodeStill(w io.Writer, img image.Image) error {
	return gif.Encode(w, paletted(img), nil)
}

// EncodeGIF writes frames as a looping animation. delay is in 100ths of a
// second per frame.
func EncodeGIF(w io.Writer, frames []*Framebuffer, delay int) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}

	out := &gif.GIF{
		Image:     make([]*image.Paletted, 0, len(frames)),
		Delay:     make([]int, 0, len(frames)),
		LoopCount: 0,
	}
	for _, fb := range frames {
		out.Image = append(out.Image, paletted(fb.ToImage()))
		out.Delay = append(out.Delay, delay)
	}
	return gif.EncodeAll(w, out)
}

// SaveAnimatedGIF writes frames to path as a looping GIF.
func SaveAnimatedGIF(path string, frames []*Framebuffer, delay int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := EncodeGIF(f, frames, delay); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
