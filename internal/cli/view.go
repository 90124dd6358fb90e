package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
	"github.com/tartampluch/go-lifeweeks/internal/render"
)

func newStatsCmd(a *app) *cobra.Command {
	f := &profileFlags{}
	var asJSON, noGrid bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the life summary and the week grid",
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
			snap := engine.NewSnapshot(p, now)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(snap.Summary())
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), render.Render(snap, a.translator, render.Options{ShowGrid: !noGrid}))
			return err
		},
	}

	f.register(cmd)
	cmd.Flags().BoolVar(&asJSON, config.FlagJSON, false, config.FlagDescJSON)
	cmd.Flags().BoolVar(&noGrid, config.FlagNoGrid, false, config.FlagDescNoGrid)
	return cmd
}

func newWeekCmd(a *app) *cobra.Command {
	f := &profileFlags{}

	cmd := &cobra.Command{
		Use:   "week INDEX",
		Short: "Print the dates of one week (1 is the week of birth)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			week, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", config.ErrWeekIndex, err)
			}

			st, err := a.openStore()
			if err != nil {
				return err
			}
			p, now, err := a.resolveProfile(cmd, st, f)
			if err != nil {
				return err
			}
			snap := engine.NewSnapshot(p, now)

			if week < 1 || week > snap.TotalWeeks() {
				return fmt.Errorf("%s: %d not in 1..%d", config.ErrWeekIndex, week, snap.TotalWeeks())
			}

			cell := snap.Cell(week - 1)
			start, end := engine.WeekDateRange(p.BirthDate, cell.Index)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), config.MsgWeekRange,
				engine.FormatDateRange(start, end),
				a.translator.WeekLabel(cell))
			return err
		},
	}

	f.register(cmd)
	return cmd
}
