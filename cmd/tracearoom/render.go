package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/taigrr/tracearoom/internal/config"
	"github.com/taigrr/tracearoom/internal/logger"
	"github.com/taigrr/tracearoom/internal/scene"
	"github.com/taigrr/tracearoom/internal/watch"
	"go.uber.org/zap"
)

func newRenderCmd(a *app) *cobra.Command {
	var watchMode bool

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the scene to a BMP or PNG image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.renderOnce(ctx); err != nil {
				return err
			}
			if !watchMode {
				return nil
			}
			return a.watchAndRender(ctx)
		},
	}

	a.overrides.RegisterRender(cmd.Flags())
	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "re-render whenever the config or a mesh file changes")
	return cmd
}

func (a *app) renderOnce(ctx context.Context) error {
	sc, err := a.scene()
	if err != nil {
		return err
	}

	start := time.Now()
	fb, err := sc.Renderer(a.cfg.Render.Workers).Frame(ctx)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := fb.Save(a.cfg.Output.Path); err != nil {
		return err
	}

	logger.Info("frame written",
		zap.String("path", a.cfg.Output.Path),
		zap.Int("width", fb.Width),
		zap.Int("height", fb.Height),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

// watchedFiles lists the config file and every mesh file it references.
func (a *app) watchedFiles() []string {
	var files []string
	if a.configPath != "" {
		files = append(files, a.configPath)
	}
	for _, m := range a.cfg.Meshes {
		if m.Kind == config.KindGLTF {
			files = append(files, scene.ResolvePath(a.baseDir(), m.Path))
		}
	}
	return files
}

func (a *app) watchAndRender(ctx context.Context) error {
	files := a.watchedFiles()
	if len(files) == 0 {
		return fmt.Errorf("--watch needs a --config file or mesh files to watch")
	}

	w, err := watch.New(files...)
	if err != nil {
		return err
	}
	defer w.Close()

	logger.Info("watching for changes", zap.Strings("files", files))
	return w.Run(ctx, func(path string) error {
		logger.Info("change detected, re-rendering", zap.String("path", path))
		if err := a.reload(); err != nil {
			// A half-written config should not end the session.
			logger.Warn("config rejected", zap.Error(err))
			return nil
		}
		if err := a.renderOnce(ctx); err != nil {
			logger.Warn("render failed", zap.Error(err))
		}
		return nil
	})
}
