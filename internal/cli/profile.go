package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
	"github.com/tartampluch/go-lifeweeks/internal/store"
)

// profileFlags are the inputs that can override the stored profile.
type profileFlags struct {
	birth    string
	lifespan int
	vcard    string
}

func (f *profileFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.birth, config.FlagBirth, "", config.FlagDescBirth)
	cmd.Flags().IntVar(&f.lifespan, config.FlagLifespan, config.DefaultLifespanYears, config.FlagDescLifespan)
	cmd.Flags().StringVar(&f.vcard, config.FlagVCard, "", config.FlagDescVCard)
	cmd.MarkFlagsMutuallyExclusive(config.FlagBirth, config.FlagVCard)
}

// resolveProfile builds the profile from flags, falling back to the stored
// record. The lifespan comes from --lifespan, else from the stored record
// when the birth date is stored too, else from the configured default.
// Everything is validated against a single now, which is returned so the
// caller renders from the same sample.
func (a *app) resolveProfile(cmd *cobra.Command, st store.Store, f *profileFlags) (engine.Profile, time.Time, error) {
	now := a.clock.Now()
	p, err := a.profileAt(cmd, st, f, now)
	return p, now, err
}

func (a *app) profileAt(cmd *cobra.Command, st store.Store, f *profileFlags, now time.Time) (engine.Profile, error) {
	lifespanSet := cmd.Flags().Changed(config.FlagLifespan)

	var birth time.Time
	switch {
	case f.birth != "":
		date, err := engine.ParseBirthDate(f.birth)
		if err != nil {
			return engine.Profile{}, err
		}
		birth = date

	case f.vcard != "":
		date, err := a.importer.ImportBirthDate(cmd.Context(), f.vcard)
		if err != nil {
			return engine.Profile{}, err
		}
		slog.Info(config.MsgBirthImported, config.LogKeyComponent, config.CompCLI)
		birth = date

	default:
		rec, ok, err := st.Load(cmd.Context())
		if err != nil {
			return engine.Profile{}, err
		}
		if !ok {
			return engine.Profile{}, errors.New(config.ErrNoProfile)
		}
		stored, err := rec.Profile(now)
		if err != nil {
			return engine.Profile{}, err
		}
		if !lifespanSet {
			return stored, nil
		}
		birth = stored.BirthDate
	}

	years := a.settings.Lifespan
	if lifespanSet {
		years = f.lifespan
	}
	return engine.NewProfile(birth, years, now)
}

func newSetCmd(a *app) *cobra.Command {
	f := &profileFlags{}
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Validate and store the date of birth and lifespan",
		Long: "Stores the profile used by every other command. With only --lifespan, " +
			"the stored date of birth is kept and the lifespan updated.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			p, now, err := a.resolveProfile(cmd, st, f)
			if err != nil {
				return err
			}
			if err := st.Save(cmd.Context(), store.NewRecord(p)); err != nil {
				return err
			}

			snap := engine.NewSnapshot(p, now)
			slog.Info(config.MsgProfileSaved,
				config.LogKeyComponent, config.CompCLI,
				config.LogKeyLifespan, p.Lifespan.Years(),
			)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), config.MsgSaved,
				a.translator.Number(snap.WeeksLived()),
				a.translator.Number(snap.TotalWeeks()))
			return err
		},
	}
	f.register(cmd)
	return cmd
}

func newResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear the stored profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			if err := st.Clear(cmd.Context()); err != nil {
				return err
			}
			slog.Info(config.MsgProfileCleared, config.LogKeyComponent, config.CompCLI)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), config.MsgReset)
			return err
		},
	}
}
