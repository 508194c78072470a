// Package cli implements geobridge command line interface.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	conflog "github.com/yaptide/geobridge/pkg/converter/log"
)

var log = conflog.NamedLogger("cli")

// Launch ...
func Launch() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	s := &settings{}
	rootCmd := &cobra.Command{
		Use:           "geobridge",
		Short:         "convert source geometry into engine scene graph",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.load(cmd)
		},
	}
	s.bindFlags(rootCmd)
	rootCmd.AddCommand(generateConvertCmd(s), generateReplayCmd(s))
	return rootCmd
}

func generateConvertCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "convert",
		Short: "convert geometry and attach sensitive detectors",
		Long: "converts geometry document, attaches detector modules and prints summary; " +
			"exports volume catalog if configured",
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd.Context(), s, cmd.OutOrStdout())
		},
	}
}

func generateReplayCmd(s *settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "replay recorded steps through sensitive detectors",
		Long:  "converts geometry, replays steps document on workers and prints collected hits as json",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd.Context(), s, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&s.stepsPath, "steps", "", "steps document (json, yaml or toml)")
	_ = cmd.MarkFlagRequired("steps")
	return cmd
}
