package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taigrr/tracearoom/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	var (
		asTOML bool
		save   bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective scene config",
		Long: "Print the config after merging defaults, the config file and flags.\n" +
			"With --save it is written to " + config.ConfigDir() + " instead.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if save {
				if err := a.cfg.Save(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "saved to %s\n", config.ConfigDir())
				return nil
			}
			data, err := a.cfg.Marshal(asTOML)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	a.overrides.RegisterRender(cmd.Flags())
	cmd.Flags().BoolVar(&asTOML, "toml", false, "print TOML instead of YAML")
	cmd.Flags().BoolVar(&save, "save", false, "write the config to the user config directory")
	return cmd
}
