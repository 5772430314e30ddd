package render

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ErrSizeMismatch is returned when the framebuffer and camera disagree on
// the image size.
var ErrSizeMismatch = errors.New("framebuffer size does not match camera")

// Renderer fills a framebuffer by shooting one primary ray per pixel.
//
// Scanlines are independent jobs. Workers bounds how many run at once;
// 1 renders serially and 0 uses every CPU. The scene must not be
// transformed while Render runs.
type Renderer struct {
	Camera  *Camera
	Shooter *Shooter
	Workers int
}

// NewRenderer creates a renderer. workers follows the Renderer.Workers rules.
func NewRenderer(camera *Camera, shooter *Shooter, workers int) *Renderer {
	return &Renderer{
		Camera:  camera,
		Shooter: shooter,
		Workers: workers,
	}
}

func (r *Renderer) workers() int {
	if r.Workers <= 0 {
		return runtime.NumCPU()
	}
	return r.Workers
}

// Render shades every pixel of fb. Cancellation is checked before each
// scanline, and the context error is returned if it fires.
func (r *Renderer) Render(ctx context.Context, fb *Framebuffer) error {
	if fb.Width != r.Camera.Width || fb.Height != r.Camera.Height {
		return fmt.Errorf("%w: %dx%d vs %dx%d", ErrSizeMismatch,
			fb.Width, fb.Height, r.Camera.Width, r.Camera.Height)
	}

	if r.workers() == 1 {
		for j := range fb.Height {
			if err := ctx.Err(); err != nil {
				return err
			}
			r.renderRow(fb, j)
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers())
	for j := range fb.Height {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r.renderRow(fb, j)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Frame renders into a fresh framebuffer sized to the camera.
func (r *Renderer) Frame(ctx context.Context) (*Framebuffer, error) {
	fb := NewFramebuffer(r.Camera.Width, r.Camera.Height)
	if err := r.Render(ctx, fb); err != nil {
		return nil, err
	}
	return fb, nil
}

func (r *Renderer) renderRow(fb *Framebuffer, j int) {
	row := fb.Row(j)
	for i := range row {
		row[i] = r.Shooter.Shoot(r.Camera.PrimaryRay(i, j))
	}
}
