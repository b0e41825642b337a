package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/memberkit/pkg/membership"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "memberctl",
		Short:         "Inspect membership tiers and member usage",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newTiersCmd(),
		newCheckCmd(),
		newContentCmd("course", "Check whether a tier may open a course", membership.ContentFree, membership.CanAccessCourse),
		newContentCmd("resource", "Check whether a tier may open a resource", membership.ContentGeneral, membership.CanAccessResource),
		newUsageCmd(),
	)
	return root
}

func parseTierArg(s string) (membership.Tier, error) {
	tier, ok := membership.ParseTier(s)
	if !ok {
		return "", fmt.Errorf("unknown tier %q (want basic, premium or ultimate)", s)
	}
	return tier, nil
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unsupported output format %q (want json or yaml)", format)
	}
}
