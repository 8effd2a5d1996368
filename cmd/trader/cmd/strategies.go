package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/relaytrader/strategies"
)

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List the built-in strategies and their parameters",
	Args:  cobra.NoArgs,
	RunE:  runStrategies,
}

var strategiesJSON bool

func init() {
	rootCmd.AddCommand(strategiesCmd)
	strategiesCmd.Flags().BoolVar(&strategiesJSON, "json", false, "print the catalogue as JSON")
}

func runStrategies(cmd *cobra.Command, args []string) error {
	defs := strategies.Builtin().List()
	out := cmd.OutOrStdout()

	if strategiesJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(defs)
	}

	for _, d := range defs {
		fmt.Fprintf(out, "%s - %s\n", d.ID, d.Name)
		fmt.Fprintf(out, "  %s\n", d.Description)
		if len(d.Params) == 0 {
			fmt.Fprintln(out)
			continue
		}

		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, p := range d.Params {
			fmt.Fprintf(tw, "    %s\t%s\tdefault %g\t%s\n", p.Name, p.Kind, p.Default, bounds(p))
		}
		_ = tw.Flush()
		fmt.Fprintln(out)
	}
	return nil
}

func bounds(p strategies.Param) string {
	switch {
	case p.Min != nil && p.Max != nil:
		return fmt.Sprintf("[%g, %g]", *p.Min, *p.Max)
	case p.Min != nil:
		return fmt.Sprintf(">= %g", *p.Min)
	case p.Max != nil:
		return fmt.Sprintf("<= %g", *p.Max)
	}
	return ""
}
