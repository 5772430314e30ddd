package render

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// ErrUnknownFormat is returned for output paths with an unsupported
// extension.
var ErrUnknownFormat = errors.New("unsupported image format")

// Format is an output image encoding.
type Format string

const (
	FormatBMP Format = "bmp"
	FormatPNG Format = "png"
	FormatGIF Format = "gif"
)

// FormatFromPath picks the encoding from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		return FormatBMP, nil
	case ".png":
		return FormatPNG, nil
	case ".gif":
		return FormatGIF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Encode writes img to w. BMP output is uncompressed 24-bit with a 54-byte
// header and bottom-up rows.
func Encode(w io.Writer, format Format, img image.Image) error {
	switch format {
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatPNG:
		return png.Encode(w, img)
	case FormatGIF:
		return encodeStill(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Save writes the framebuffer to path, choosing the encoding by extension.
func (fb *Framebuffer) Save(path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Encode(f, format, fb.ToImage()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
