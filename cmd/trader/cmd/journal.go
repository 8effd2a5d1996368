package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/relaytrader/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query recorded backtest runs",
	Long: `Query runs recorded in the SQLite journal.

Subcommands:
  runs  - List recorded runs, newest first
  show  - Show one run, its fills and optionally its equity curve

Examples:
  trader journal runs -n 10
  trader journal show 01HV6ZQ3K5T9N2W8X4Y7R1M0PA --org`,
}

var journalRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs",
	Args:  cobra.NoArgs,
	RunE:  runJournalRuns,
}

var journalShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalShow,
}

var (
	journalDBPath string
	journalLimit  int
	journalOrg    bool
	journalEquity bool
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalRunsCmd)
	journalCmd.AddCommand(journalShowCmd)

	journalCmd.PersistentFlags().StringVar(&journalDBPath, "db", "", "path to SQLite journal DB (defaults to journal.path)")
	journalRunsCmd.Flags().IntVarP(&journalLimit, "limit", "n", 20, "maximum runs to list (0 = all)")
	journalShowCmd.Flags().BoolVar(&journalOrg, "org", false, "render as an Org-mode entry")
	journalShowCmd.Flags().BoolVar(&journalEquity, "equity", false, "include the equity curve")
}

func openSQLite() (*journal.SQLite, error) {
	path := journalDBPath
	if path == "" {
		if cfg.Journal.Type != "sqlite" {
			return nil, fmt.Errorf("journal queries need a SQLite journal: pass --db")
		}
		path = cfg.Journal.Path
	}
	j, err := journal.NewSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return j, nil
}

func runJournalRuns(cmd *cobra.Command, args []string) error {
	j, err := openSQLite()
	if err != nil {
		return err
	}
	defer j.Close()

	runs, err := j.ListRuns(cmd.Context(), journalLimit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN ID\tCREATED\tSTRATEGY\tSYMBOL\tBARS\tTRADES\tNET P/L\tRETURN\tMAX DD")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%.2f\t%.2f%%\t%.2f%%\n",
			r.RunID, r.Created.Local().Format("2006-01-02 15:04"), r.Strategy, r.Symbol,
			r.Bars, r.NumTrades, r.NetPnL, r.TotalReturn*100, r.MaxDrawdown*100)
	}
	return tw.Flush()
}

func runJournalShow(cmd *cobra.Command, args []string) error {
	j, err := openSQLite()
	if err != nil {
		return err
	}
	defer j.Close()

	e, err := j.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if journalOrg {
		return journal.WriteOrg(out, e)
	}

	r := e.Run
	fmt.Fprintf(out, "Run ID:        %s\n", r.RunID)
	fmt.Fprintf(out, "Created:       %s\n", r.Created.Format(time.RFC3339))
	fmt.Fprintf(out, "Strategy:      %s %s\n", r.Strategy, r.Params)
	fmt.Fprintf(out, "Symbol:        %s (%d bars)\n", r.Symbol, r.Bars)
	fmt.Fprintf(out, "Final equity:  %.2f (from %.2f)\n", r.FinalEquity, r.InitialCash)
	fmt.Fprintf(out, "Net P/L:       %.2f\n", r.NetPnL)
	fmt.Fprintf(out, "Sharpe:        %.3f\n", r.Sharpe)
	fmt.Fprintf(out, "Max drawdown:  %.2f%%\n", r.MaxDrawdown*100)
	fmt.Fprintln(out)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTIME\tORDER\tSIDE\tQTY\tPRICE\tCOMMISSION\tREALIZED")
	for _, t := range e.Trades {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%g\t%.4f\t%.2f\t%.2f\n",
			t.Seq, time.UnixMilli(t.Timestamp).UTC().Format(time.RFC3339), t.OrderID,
			t.Side, t.Quantity, t.Price, t.Commission, t.RealizedPnL)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if journalEquity {
		fmt.Fprintln(out)
		tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "TIME\tEQUITY\tDRAWDOWN")
		for _, p := range e.Equity {
			fmt.Fprintf(tw, "%s\t%.2f\t%.2f%%\n",
				time.UnixMilli(p.Timestamp).UTC().Format(time.RFC3339), p.Equity, p.Drawdown*100)
		}
		return tw.Flush()
	}
	return nil
}
