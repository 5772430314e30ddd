// tracearoom - a small ray caster for triangle-mesh rooms.
//
// It renders a scene of polygon meshes lit by point lights to BMP or PNG,
// previews it in the terminal, or spins it on a turntable into a GIF.
//
// Usage:
//
//	tracearoom render  [--out out.bmp] [--width 640] [--height 480] [--watch]
//	tracearoom preview
//	tracearoom orbit   [--frames 36] [--degrees 360] [--axis 0,1,0] [--out orbit.gif]
//	tracearoom config  [--toml]
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/taigrr/tracearoom/internal/config"
	"github.com/taigrr/tracearoom/internal/logger"
	"github.com/taigrr/tracearoom/internal/scene"
	"go.uber.org/zap"
)

var version = "dev"

// app carries the state shared by every subcommand.
type app struct {
	configPath string
	overrides  *config.Overrides
	cfg        *config.Config
}

// baseDir resolves relative mesh paths: the config file's directory, or
// the working directory without one.
func (a *app) baseDir() string {
	if a.configPath == "" {
		return "."
	}
	return filepath.Dir(a.configPath)
}

// scene builds the scene for the current config.
func (a *app) scene() (*scene.Scene, error) {
	sc, err := scene.Build(a.cfg, a.baseDir())
	if err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}
	logger.Debug("scene built",
		zap.Int("meshes", len(sc.Meshes)),
		zap.Int("triangles", sc.TriangleCount()),
		zap.Int("lights", len(sc.Lights)))
	return sc, nil
}

// reload re-reads the config file with the same overrides.
func (a *app) reload() error {
	cfg, err := config.Load(a.configPath, a.overrides)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{overrides: config.NewOverrides()}

	root := &cobra.Command{
		Use:           "tracearoom",
		Short:         "Ray cast triangle-mesh rooms lit by point lights",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.reload(); err != nil {
				return err
			}
			if err := logger.Init(a.cfg.Logging.Level, a.cfg.Logging.LogFile); err != nil {
				return err
			}
			logger.WithRun(logger.NewRunID())
			logger.Debug("config loaded", zap.String("command", cmd.Name()), zap.String("path", a.configPath))
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			logger.Sync()
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "scene config file (.yaml or .toml)")
	a.overrides.RegisterLogging(root.PersistentFlags())

	root.AddCommand(
		newRenderCmd(a),
		newPreviewCmd(a),
		newOrbitCmd(a),
		newConfigCmd(a),
	)
	return root
}

func main() {
	if err := fang.Execute(context.Background(), newRootCmd(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
