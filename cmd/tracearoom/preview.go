package main

import (
	"context"
	"fmt"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"
	"github.com/taigrr/tracearoom/internal/logger"
	"github.com/taigrr/tracearoom/internal/scene"
	"github.com/taigrr/tracearoom/pkg/render"
	"go.uber.org/zap"
)

func newPreviewCmd(a *app) *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show the scene in the terminal with half-block cells",
		Long: "Render the scene at terminal resolution. Each cell shows two pixels.\n" +
			"Resizing the window re-renders; q, esc or ctrl+c quits.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc, err := a.scene()
			if err != nil {
				return err
			}
			if once {
				return a.printPreview(cmd, sc)
			}
			return a.interactivePreview(cmd.Context(), sc)
		},
	}

	a.overrides.RegisterRender(cmd.Flags())
	cmd.Flags().BoolVar(&once, "once", false, "print a single frame to stdout instead of taking over the terminal")
	return cmd
}

// previewFrame renders sc into a framebuffer sized for cols × rows cells.
func (a *app) previewFrame(ctx context.Context, sc *scene.Scene, cols, rows int) (*render.Framebuffer, error) {
	w, h := render.TerminalSize(cols, rows)
	sc.Camera.Width, sc.Camera.Height = w, h

	fb := render.NewFramebuffer(w, h)
	start := time.Now()
	if err := sc.Renderer(a.cfg.Render.Workers).Render(ctx, fb); err != nil {
		return nil, err
	}
	logger.Debug("preview frame", zap.Int("cols", cols), zap.Int("rows", rows), zap.Duration("elapsed", time.Since(start)))
	return fb, nil
}

// printPreview sizes the frame as if each cell were 8×16 pixels of the
// configured image.
func (a *app) printPreview(cmd *cobra.Command, sc *scene.Scene) error {
	cols := a.cfg.Render.Width / 8
	rows := a.cfg.Render.Height / 16
	fb, err := a.previewFrame(cmd.Context(), sc, max(cols, 1), max(rows, 1))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), fb.Preview())
	return err
}

func (a *app) interactivePreview(ctx context.Context, sc *scene.Scene) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	draw := func() error {
		fb, err := a.previewFrame(ctx, sc, width, height)
		if err != nil {
			return err
		}
		term.Draw(fb)
		if err := term.Display(); err != nil {
			return fmt.Errorf("display: %w", err)
		}
		return nil
	}

	if err := draw(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-term.Events():
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				if err := draw(); err != nil {
					return err
				}
			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("q", "escape", "ctrl+c"):
					return nil
				case ev.MatchString("r"):
					if err := a.reload(); err != nil {
						logger.Warn("config rejected", zap.Error(err))
						continue
					}
					next, err := a.scene()
					if err != nil {
						logger.Warn("scene rejected", zap.Error(err))
						continue
					}
					sc = next
					if err := draw(); err != nil {
						return err
					}
				}
			}
		}
	}
}
