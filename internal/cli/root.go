// Package cli is the go-lifeweeks command line: the desktop app by default,
// plus terminal commands sharing the same store and settings.
package cli

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// Execute runs the command line until ctx is cancelled or the command ends.
func Execute(ctx context.Context) error {
	a := &app{}
	defer a.close()
	return newRootCmd(a).ExecuteContext(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   config.CommandName,
		Short: "See your whole life, one week at a time",
		Long: "go-lifeweeks draws a lifetime as a grid of weeks, 52 per row, one row per year. " +
			"Without a subcommand it opens the desktop app.",
		SilenceUsage: true,
		Annotations:  map[string]string{config.AnnotationService: "true"},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGUI(cmd, a)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, config.FlagConfig, "", config.FlagDescConfig)
	rootCmd.PersistentFlags().BoolVar(&a.debug, config.FlagDebug, false, config.FlagDescDebug)

	rootCmd.AddCommand(
		newVersionCmd(),
		newGUICmd(a),
		newSetCmd(a),
		newResetCmd(a),
		newStatsCmd(a),
		newWeekCmd(a),
		newExportCmd(a),
		newCalendarCmd(a),
		newServeCmd(a),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// No settings or logging needed.
		PersistentPreRun: func(*cobra.Command, []string) {},
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), config.MsgVersionOutput,
				config.AppName,
				config.Version,
				runtime.GOOS,
				runtime.GOARCH,
			)
			return err
		},
	}
}
