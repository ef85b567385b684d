package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"zenstreak/internal/bootstrap"
	prefdto "zenstreak/internal/modules/preferences/dto"
	streakdto "zenstreak/internal/modules/streak/dto"
	"zenstreak/internal/platform/config"
	apperrors "zenstreak/internal/platform/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	home      string
	storage   string
	ephemeral bool
	verbose   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "zenstreak",
		Short:         "Daily meditation streaks in your terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.home, "home", "", "data directory (default $ZENSTREAK_HOME or ~/.zenstreak)")
	root.PersistentFlags().StringVar(&opts.storage, "storage", "", "storage backend: file|sqlite|memory")
	root.PersistentFlags().BoolVar(&opts.ephemeral, "ephemeral", false, "keep everything in memory for this run")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newCheckinCmd(opts))
	root.AddCommand(newStatusCmd(opts))
	root.AddCommand(newWeekCmd(opts))
	root.AddCommand(newStatsCmd(opts))
	root.AddCommand(newResetCmd(opts))
	root.AddCommand(newTypesCmd(opts))
	root.AddCommand(newPracticeCmd(opts))
	root.AddCommand(newWisdomCmd(opts))
	root.AddCommand(newPrefsCmd(opts))
	root.AddCommand(newHooksCmd(opts))
	return root
}

func loadApp(opts *rootOptions) (*bootstrap.App, error) {
	cfg, err := config.Load(config.Overrides{
		Home:      opts.home,
		Storage:   opts.storage,
		Verbose:   opts.verbose,
		Ephemeral: opts.ephemeral,
	})
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func withApp(opts *rootOptions, fn func(app *bootstrap.App) error) error {
	app, err := loadApp(opts)
	if err != nil {
		return err
	}
	runErr := fn(app)
	if err := app.Close(); err != nil && runErr == nil {
		return err
	}
	return runErr
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the zenstreak terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withApp(opts, bootstrap.RunTUI)
		},
	}
}

func newCheckinCmd(opts *rootOptions) *cobra.Command {
	var kind string
	var minutes float64
	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Record today's meditation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				ctx := context.Background()
				w := cmd.OutOrStdout()
				if strings.TrimSpace(kind) != "" {
					check, err := app.PracticeCLI.CheckType(ctx, kind)
					if err == nil && !check.Known {
						_, _ = fmt.Fprintf(w, "note: %q is not a catalog type, recording it anyway\n", check.ID)
					}
				}
				out, err := app.StreakCLI.Checkin(ctx, kind, minutes)
				if err != nil {
					return err
				}
				printCheckin(w, out)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&kind, "type", "t", "", "meditation type (default from config)")
	cmd.Flags().Float64VarP(&minutes, "minutes", "m", 0, "session length in minutes (default from config)")
	return cmd
}

func printCheckin(w io.Writer, out streakdto.CheckinOutput) {
	r := out.Record
	if !out.Recorded {
		_, _ = fmt.Fprintf(w, "already checked in today, streak %d\n", r.CurrentStreak)
		return
	}
	entry := r.Checkins[len(r.Checkins)-1]
	_, _ = fmt.Fprintf(w, "checked in %s: %s for %g min\n", entry.Date, entry.Type, entry.Duration)
	_, _ = fmt.Fprintf(w, "streak %d, longest %d, total %d\n", r.CurrentStreak, r.LongestStreak, r.TotalSessions)
	if m := out.Milestone; m != nil {
		_, _ = fmt.Fprintf(w, "milestone: %d days, %s (%s)\n  %s\n", m.Days, m.Title, m.Achievement, m.Message)
	}
	if out.JournalPath != "" {
		_, _ = fmt.Fprintf(w, "journal: %s\n", out.JournalPath)
	}
	for _, h := range out.Hooks {
		if h.Error != "" {
			_, _ = fmt.Fprintf(w, "hook %s failed: %s\n", h.Name, h.Error)
			continue
		}
		if h.Message != "" {
			_, _ = fmt.Fprintf(w, "hook %s: %s\n", h.Name, h.Message)
		}
	}
}

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current streak",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				status, err := app.StreakCLI.Status(context.Background())
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				r := status.Record
				_, _ = fmt.Fprintf(w, "streak %d day(s), longest %d, total %d\n", r.CurrentStreak, r.LongestStreak, r.TotalSessions)
				if status.CheckedInToday {
					_, _ = fmt.Fprintln(w, "today: done")
				} else {
					_, _ = fmt.Fprintln(w, "today: not yet")
				}
				if status.Next != nil {
					_, _ = fmt.Fprintf(w, "next milestone: %s in %d day(s)\n", status.Next.Title, status.DaysToNext)
				}
				return nil
			})
		},
	}
}

func newWeekCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Show the last seven days",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				status, err := app.StreakCLI.Status(context.Background())
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				for _, d := range status.Week {
					mark := "."
					if d.Meditated {
						mark = "x"
					}
					line := fmt.Sprintf("%s %2d [%s]", d.Weekday, d.Day, mark)
					if d.Type != "" {
						line += " " + d.Type
					}
					if d.IsToday {
						line += " <- today"
					}
					_, _ = fmt.Fprintln(w, line)
				}
				return nil
			})
		},
	}
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show practice statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				status, err := app.StreakCLI.Status(context.Background())
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				r := status.Record
				_, _ = fmt.Fprintf(w, "current streak: %d\n", r.CurrentStreak)
				_, _ = fmt.Fprintf(w, "longest streak: %d\n", r.LongestStreak)
				_, _ = fmt.Fprintf(w, "total sessions: %d\n", r.TotalSessions)
				_, _ = fmt.Fprintf(w, "this month:     %d\n", status.ThisMonth)
				if r.LastCheckIn != "" {
					_, _ = fmt.Fprintf(w, "last check-in:  %s\n", r.LastCheckIn)
				}
				if status.Tier != nil {
					_, _ = fmt.Fprintf(w, "achievement:    %s\n", status.Tier.Achievement)
				}
				return nil
			})
		},
	}
}

func newResetCmd(opts *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all streak data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				if err := app.StreakCLI.Reset(context.Background(), yes); err != nil {
					if errors.Is(err, apperrors.ErrNotConfirmed) {
						return fmt.Errorf("refusing to reset without --yes")
					}
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "streak data reset")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}

func newTypesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List meditation types",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				types, err := app.PracticeCLI.ListTypes(context.Background())
				if err != nil {
					return err
				}
				for _, t := range types {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", t.ID, t.Description)
				}
				return nil
			})
		},
	}
}

func newPracticeCmd(opts *rootOptions) *cobra.Command {
	practice := &cobra.Command{Use: "practice", Short: "Guided meditations"}
	practice.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List guided meditations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				list, err := app.PracticeCLI.ListMeditations(context.Background())
				if err != nil {
					return err
				}
				for _, m := range list {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-20s %-24s %gm  %s\n", m.ID, m.Title, m.Minutes, m.Description)
				}
				return nil
			})
		},
	})

	var plain bool
	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print the script of a guided meditation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				m, err := app.PracticeCLI.GetMeditation(context.Background(), args[0])
				if err != nil {
					return err
				}
				out := m.Script
				if !plain {
					out = renderMarkdown(m.Script)
				}
				_, _ = fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	show.Flags().BoolVar(&plain, "plain", false, "print raw markdown")
	practice.AddCommand(show)
	return practice
}

func renderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

func newWisdomCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "wisdom",
		Short: "Show today's quote",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				q, err := app.PracticeCLI.QuoteOfDay(context.Background())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%q\n  %s\n", q.Text, q.Author)
				return nil
			})
		},
	}
}

func newPrefsCmd(opts *rootOptions) *cobra.Command {
	prefs := &cobra.Command{Use: "prefs", Short: "Audio preferences"}
	prefs.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show audio preferences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.PrefsCLI.Get(context.Background())
				if err != nil {
					return err
				}
				printPrefs(cmd.OutOrStdout(), out)
				return nil
			})
		},
	})

	var sound string
	var volume, fadeIn, fadeOut float64
	var autoStart bool
	set := &cobra.Command{
		Use:   "set",
		Short: "Change audio preferences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input := prefdto.UpdateInput{}
			flags := cmd.Flags()
			if flags.Changed("sound") {
				input.Sound = &sound
			}
			if flags.Changed("volume") {
				input.Volume = &volume
			}
			if flags.Changed("auto-start") {
				input.AutoStart = &autoStart
			}
			if flags.Changed("fade-in") {
				input.FadeInDuration = &fadeIn
			}
			if flags.Changed("fade-out") {
				input.FadeOutDuration = &fadeOut
			}
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.PrefsCLI.Update(context.Background(), input)
				if err != nil {
					return err
				}
				printPrefs(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	set.Flags().StringVar(&sound, "sound", "", "forest|ocean|rain|whitenoise|bowls|silent")
	set.Flags().Float64Var(&volume, "volume", 0, "volume between 0 and 1")
	set.Flags().BoolVar(&autoStart, "auto-start", true, "start the sound with a session")
	set.Flags().Float64Var(&fadeIn, "fade-in", 0, "fade in seconds")
	set.Flags().Float64Var(&fadeOut, "fade-out", 0, "fade out seconds")
	prefs.AddCommand(set)

	prefs.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Restore default audio preferences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				out, err := app.PrefsCLI.Reset(context.Background())
				if err != nil {
					return err
				}
				printPrefs(cmd.OutOrStdout(), out)
				return nil
			})
		},
	})
	return prefs
}

func printPrefs(w io.Writer, p prefdto.AudioOutput) {
	_, _ = fmt.Fprintf(w, "sound=%s volume=%.2f auto_start=%t fade_in=%gs fade_out=%gs\n",
		p.Sound, p.Volume, p.AutoStart, p.FadeInDuration, p.FadeOutDuration)
}

func newHooksCmd(opts *rootOptions) *cobra.Command {
	hooks := &cobra.Command{Use: "hooks", Short: "Check-in hook plugins"}
	hooks.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List hook manifests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				list, err := app.HookCLI.List(context.Background())
				if err != nil {
					return err
				}
				if len(list) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no hooks configured")
					return nil
				}
				for _, h := range list {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t events=%s binary=%s\n",
						h.Name, h.Version, h.Enabled, strings.Join(h.Events, ","), h.Binary)
				}
				return nil
			})
		},
	})
	hooks.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Validate hook checksums and lifecycle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(app *bootstrap.App) error {
				results, err := app.HookCLI.Doctor(context.Background())
				if err != nil {
					return err
				}
				if len(results) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no hooks configured")
					return nil
				}
				for _, r := range results {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s checksum=%t binary=%t lifecycle=%t", r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK)
					if r.Error != "" {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout())
				}
				return nil
			})
		},
	})
	return hooks
}
