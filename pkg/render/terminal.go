package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// HalfBlock is the glyph used for terminal output: the foreground paints
// the upper pixel and the background the lower one.
const HalfBlock = "▀"

var _ uv.Drawable = (*Framebuffer)(nil)

// TerminalSize returns the framebuffer size that fills a terminal of
// cols × rows cells. Each cell shows two pixel rows.
func TerminalSize(cols, rows int) (width, height int) {
	return cols, rows * 2
}

// Draw converts the framebuffer to terminal cells and draws them on the
// screen. The framebuffer height should be 2x the terminal height.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		botY := topY + 1
		if topY >= fb.Height {
			break
		}

		for col := area.Min.X; col < area.Max.X; col++ {
			x := col - area.Min.X
			if x >= fb.Width {
				break
			}

			cell := &uv.Cell{
				Content: HalfBlock,
				Width:   1,
				Style: uv.Style{
					Fg: Quantize(fb.GetPixel(x, topY)),
					Bg: cellColor(fb, x, botY),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// cellColor returns nil below the last pixel row so an odd-height buffer
// leaves the terminal background showing.
func cellColor(fb *Framebuffer, x, y int) color.Color {
	if y >= fb.Height {
		return nil
	}
	return Quantize(fb.GetPixel(x, y))
}

// Preview renders the framebuffer to a string of styled half-block lines.
func (fb *Framebuffer) Preview() string {
	rows := (fb.Height + 1) / 2
	buf := uv.NewScreenBuffer(fb.Width, rows)
	fb.Draw(buf, buf.Bounds())
	return buf.Render()
}
