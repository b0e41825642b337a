package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/memberkit/internal/storage"
	"github.com/dmitrymomot/memberkit/pkg/config"
	"github.com/dmitrymomot/memberkit/pkg/logger"
	"github.com/dmitrymomot/memberkit/pkg/membership"
	"github.com/dmitrymomot/memberkit/pkg/usage"
)

type cliConfig struct {
	Env        string `env:"APP_ENV" envDefault:"development"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"warn"`
	UsageStore string `env:"USAGE_STORE" envDefault:"sqlite"`
}

type usageFlags struct {
	user string
	tier string
}

func newUsageCmd() *cobra.Command {
	var f usageFlags
	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Show or change a member's usage counters",
	}
	cmd.PersistentFlags().StringVar(&f.user, "user", "", "member id (required)")
	cmd.PersistentFlags().StringVar(&f.tier, "tier", "", "member tier (required)")
	_ = cmd.MarkPersistentFlagRequired("user")
	_ = cmd.MarkPersistentFlagRequired("tier")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the usage summary",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withTracker(cmd.Context(), f, func(t *usage.Tracker) error {
					printSummary(cmd, t.Snapshot())
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "use <feature>",
			Short: "Consume one unit of a quota feature",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				feature, ok := membership.ParseFeature(args[0])
				if !ok {
					return fmt.Errorf("unknown feature %q", args[0])
				}
				return withTracker(cmd.Context(), f, func(t *usage.Tracker) error {
					err := t.UseFeature(cmd.Context(), feature)
					if errors.Is(err, usage.ErrLimitExceeded) {
						return fmt.Errorf("%s limit reached: %d of %d used on %s",
							feature, t.Usage(feature), membership.GetFeatureLimit(t.Tier(), feature), membership.DisplayName(t.Tier()))
					}
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s used, remaining: %s\n", feature, formatCount(t.GetRemainingUses(feature)))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Apply the monthly reset if a new month has started",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withManager(cmd.Context(), func(m *usage.Manager) error {
					tier, err := parseTierArg(f.tier)
					if err != nil {
						return err
					}
					reset, err := m.ResetMonthlyUsage(cmd.Context(), f.user, tier)
					if err != nil {
						return err
					}
					if reset {
						fmt.Fprintln(cmd.OutOrStdout(), "monthly counters reset")
					} else {
						fmt.Fprintln(cmd.OutOrStdout(), "already reset this month")
					}
					return nil
				})
			},
		},
	)
	return cmd
}

func withManager(ctx context.Context, fn func(*usage.Manager) error) error {
	var cfg cliConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}
	log := logger.New(logger.WithEnvironment(cfg.Env, "memberctl"), logger.WithLevelName(cfg.LogLevel))

	backend, err := storage.Open(ctx, cfg.UsageStore, log)
	if err != nil {
		return err
	}
	defer func() { _ = backend.Close(context.WithoutCancel(ctx)) }()

	return fn(usage.NewManager(backend.Store, usage.WithLogger(log)))
}

func withTracker(ctx context.Context, f usageFlags, fn func(*usage.Tracker) error) error {
	return withManager(ctx, func(m *usage.Manager) error {
		tier, err := parseTierArg(f.tier)
		if err != nil {
			return err
		}
		return m.Do(ctx, f.user, tier, fn)
	})
}

func printSummary(cmd *cobra.Command, s usage.Summary) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "member %s on %s, last reset %s\n", s.UserID, membership.DisplayName(s.Tier), s.LastReset.UTC().Format("2006-01-02"))
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FEATURE\tUSED\tLIMIT\tREMAINING")
	for _, u := range s.Features {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", u.Feature, u.Current, formatCount(u.Limit), formatCount(u.Remaining))
	}
	_ = tw.Flush()
}

func formatCount(n int64) string {
	if n == membership.Unlimited {
		return "unlimited"
	}
	return fmt.Sprint(n)
}
