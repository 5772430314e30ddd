package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/taigrr/tracearoom/internal/logger"
	"github.com/taigrr/tracearoom/pkg/math3d"
	"github.com/taigrr/tracearoom/pkg/render"
	"go.uber.org/zap"
)

func newOrbitCmd(a *app) *cobra.Command {
	var (
		frames  int
		fps     int
		degrees float64
		axis    string
	)

	cmd := &cobra.Command{
		Use:   "orbit",
		Short: "Spin every mesh on a turntable and write an animated GIF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			oc := &a.cfg.Orbit
			flags := cmd.Flags()
			if flags.Changed("out") {
				oc.Path = a.overrides.Output
			}
			if flags.Changed("frames") {
				oc.Frames = frames
			}
			if flags.Changed("fps") {
				oc.FPS = fps
			}
			if flags.Changed("degrees") {
				oc.Degrees = degrees
			}
			if flags.Changed("axis") {
				v, err := parseVec(axis)
				if err != nil {
					return fmt.Errorf("--axis: %w", err)
				}
				oc.Axis = v
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			sc, err := a.scene()
			if err != nil {
				return err
			}

			tt := render.NewTurntable(oc.Axis.V3(), math3d.Radians(oc.Degrees), oc.Frames, oc.FPS)
			tt.Pivot = oc.Pivot.V3()

			start := time.Now()
			fbs, err := tt.Render(cmd.Context(), sc.Renderer(a.cfg.Render.Workers), sc.Spinners())
			if err != nil {
				return fmt.Errorf("orbit: %w", err)
			}
			if err := render.SaveAnimatedGIF(oc.Path, fbs, tt.Delay()); err != nil {
				return err
			}

			logger.Info("orbit written",
				zap.String("path", oc.Path),
				zap.Int("frames", len(fbs)),
				zap.Duration("elapsed", time.Since(start)))
			return nil
		},
	}

	a.overrides.RegisterRender(cmd.Flags())
	// The still-image --out from RegisterRender is replaced by the GIF path.
	cmd.Flags().Lookup("out").Usage = "animated GIF output path"
	cmd.Flags().IntVar(&frames, "frames", 0, "number of frames (default from config)")
	cmd.Flags().IntVar(&fps, "fps", 0, "playback frames per second (default from config)")
	cmd.Flags().Float64Var(&degrees, "degrees", 0, "total turn in degrees (default from config)")
	cmd.Flags().StringVar(&axis, "axis", "", "rotation axis as x,y,z (default from config)")
	return cmd
}
