package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/memberkit/pkg/membership"
)

type tierView struct {
	Tier        membership.Tier                                `json:"tier" yaml:"tier"`
	DisplayName string                                         `json:"display_name" yaml:"display_name"`
	BadgeColor  string                                         `json:"badge_color" yaml:"badge_color"`
	Features    map[membership.Feature]membership.FeatureSpec `json:"features" yaml:"features"`
}

func newTiersCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "tiers",
		Short: "Print the tier table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := membership.DefaultTable()
			if output != "" {
				views := make([]tierView, 0, len(membership.Tiers()))
				for _, t := range membership.Tiers() {
					views = append(views, tierView{
						Tier:        t,
						DisplayName: membership.DisplayName(t),
						BadgeColor:  membership.BadgeColor(t),
						Features:    table[t],
					})
				}
				return encode(cmd.OutOrStdout(), output, views)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprint(tw, "FEATURE")
			for _, t := range membership.Tiers() {
				fmt.Fprintf(tw, "\t%s", membership.DisplayName(t))
			}
			fmt.Fprintln(tw)
			for _, f := range membership.Features() {
				fmt.Fprint(tw, f)
				for _, t := range membership.Tiers() {
					fmt.Fprintf(tw, "\t%s", formatLimit(table, t, f))
				}
				fmt.Fprintln(tw)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: json or yaml (default: table)")
	return cmd
}

func formatLimit(table membership.Table, tier membership.Tier, feature membership.Feature) string {
	spec, _ := table.Spec(tier, feature)
	switch {
	case !spec.IsQuota():
		if spec.Enabled() {
			return "yes"
		}
		return "no"
	case spec.Unlimited():
		return "unlimited"
	default:
		return fmt.Sprint(spec.Limit())
	}
}

func newCheckCmd() *cobra.Command {
	var required string
	cmd := &cobra.Command{
		Use:   "check <tier> <feature>",
		Short: "Run the access gate for a tier and feature",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tier, err := parseTierArg(args[0])
			if err != nil {
				return err
			}
			feature, ok := membership.ParseFeature(args[1])
			if !ok {
				return fmt.Errorf("unknown feature %q", args[1])
			}

			var req membership.Tier
			if required != "" {
				if req, err = parseTierArg(required); err != nil {
					return err
				}
			}

			table := membership.DefaultTable()
			d := table.Gate(tier, req, feature)
			out := cmd.OutOrStdout()
			if d.Allowed {
				fmt.Fprintf(out, "%s: allowed on %s", feature, membership.DisplayName(tier))
				if spec, _ := table.Spec(tier, feature); spec.IsQuota() {
					fmt.Fprintf(out, " (limit %s)", formatLimit(table, tier, feature))
				}
				fmt.Fprintln(out)
				return nil
			}
			fmt.Fprintf(out, "%s: denied on %s. %s\n", feature, membership.DisplayName(tier), d.Upgrade)
			return nil
		},
	}
	cmd.Flags().StringVar(&required, "required", "", "explicit minimum tier")
	return cmd
}

func newContentCmd(use, short, defaultType string, check func(membership.Tier, string) bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <tier> [type]",
		Short: short,
		Long:  fmt.Sprintf("%s. The type defaults to %q.", short, defaultType),
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tier, err := parseTierArg(args[0])
			if err != nil {
				return err
			}
			typ := defaultType
			if len(args) == 2 {
				typ = args[1]
			}
			verdict := "denied"
			if check(tier, typ) {
				verdict = "allowed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s for %s\n", typ, use, verdict, membership.DisplayName(tier))
			return nil
		},
	}
}
