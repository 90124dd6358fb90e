package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
	"github.com/tartampluch/go-lifeweeks/internal/export"
	"github.com/tartampluch/go-lifeweeks/internal/publish"
	"github.com/tartampluch/go-lifeweeks/internal/server"
)

// writeOutput sends data to stdout for "-", else to a 0600 file.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == config.StdoutPath {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrWriteOutput, err)
	}
	if err := os.WriteFile(expanded, data, config.FilePermUserRW); err != nil {
		return fmt.Errorf("%s: %w", config.ErrWriteOutput, err)
	}
	return nil
}

func newExportCmd(a *app) *cobra.Command {
	f := &profileFlags{}
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the 1080x1350 share image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			p, now, err := a.resolveProfile(cmd, st, f)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := export.Render(&buf, engine.NewSnapshot(p, now), a.translator); err != nil {
				return err
			}
			if err := writeOutput(cmd, output, buf.Bytes()); err != nil {
				return err
			}
			if output != config.StdoutPath {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), config.MsgExportWritten, output)
			}
			return err
		},
	}

	f.register(cmd)
	cmd.Flags().StringVarP(&output, config.FlagOutput, config.FlagOutputShort, config.ExportFileName, config.FlagDescExport)
	return cmd
}

func newCalendarCmd(a *app) *cobra.Command {
	f := &profileFlags{}
	var output string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Write the upcoming weeks as an iCalendar feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			p, now, err := a.resolveProfile(cmd, st, f)
			if err != nil {
				return err
			}

			data, err := engine.BuildCalendar(engine.NewSnapshot(p, now), engine.CalendarOptions{
				WeeksAhead:    a.settings.WeeksAhead,
				FormatSummary: a.translator.EventSummary,
			})
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, data)
		},
	}

	f.register(cmd)
	cmd.Flags().StringVarP(&output, config.FlagOutput, config.FlagOutputShort, config.StdoutPath, config.FlagDescCalendar)
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:         "serve",
		Short:       "Serve the calendar, image and statistics feeds on localhost",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{config.AnnotationService: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed(config.FlagPort) {
				port = a.settings.ServerPort
			}
			st, err := a.openStore()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			srv := server.NewFeedServer(port)
			pub := publish.New(st, a.translator, srv, a.settings.WeeksAhead, a.settings.RefreshInterval)
			pub.Clock = a.clock

			go pub.Run(ctx)
			return srv.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&port, config.FlagPort, config.DefaultPort, config.FlagDescPort)
	return cmd
}
