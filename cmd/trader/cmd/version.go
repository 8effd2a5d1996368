package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the trader CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "trader version %s\n", version)
		fmt.Fprintln(out, "Bar-level backtester and manual options simulator")
		fmt.Fprintln(out, "https://github.com/rustyeddy/relaytrader")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
