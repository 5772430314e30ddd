package config

import "github.com/spf13/pflag"

// Overrides holds command-line values that take precedence over the file.
// Zero values leave the file setting alone, except Workers where 0 is
// meaningful and -1 means unset.
type Overrides struct {
	Output   string
	Width    int
	Height   int
	FOV      float64
	Workers  int
	LogLevel string
	LogFile  string
}

// NewOverrides returns overrides that change nothing.
func NewOverrides() *Overrides {
	return &Overrides{Workers: -1}
}

// RegisterRender binds the render flags to fs.
func (o *Overrides) RegisterRender(fs *pflag.FlagSet) {
	fs.StringVarP(&o.Output, "out", "o", "", "output image (.bmp or .png)")
	fs.IntVar(&o.Width, "width", 0, "image width in pixels")
	fs.IntVar(&o.Height, "height", 0, "image height in pixels")
	fs.Float64Var(&o.FOV, "fov", 0, "vertical field of view in degrees")
	fs.IntVarP(&o.Workers, "workers", "j", -1, "parallel scanline workers (0 = all CPUs, 1 = serial)")
}

// RegisterLogging binds the logging flags to fs.
func (o *Overrides) RegisterLogging(fs *pflag.FlagSet) {
	fs.StringVar(&o.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	fs.StringVar(&o.LogFile, "log-file", "", "also log to this file, rotated")
}

// apply applies CLI flag overrides to the config.
func (o *Overrides) apply(cfg *Config) {
	if o.Output != "" {
		cfg.Output.Path = o.Output
	}
	if o.Width > 0 {
		cfg.Render.Width = o.Width
	}
	if o.Height > 0 {
		cfg.Render.Height = o.Height
	}
	if o.FOV > 0 {
		cfg.Camera.FOV = o.FOV
	}
	if o.Workers >= 0 {
		cfg.Render.Workers = o.Workers
	}
	if o.LogLevel != "" {
		cfg.Logging.Level = o.LogLevel
	}
	if o.LogFile != "" {
		cfg.Logging.LogFile = o.LogFile
	}
}
