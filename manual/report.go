package manual

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

// PrintResult writes the settings, one line per simulated trade and the
// aggregate stats.
func PrintResult(w io.Writer, r *Result) {
	s, st := r.Settings, r.Stats

	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Manual Options Simulation")
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, "Pricing:       %s\n", pricingName(s))
	fmt.Fprintf(w, "IV / rate:     %.2f / %.3f\n", s.ImpliedVolatility, s.RiskFreeRate)
	fmt.Fprintf(w, "Scenario:      %s (%.1f%%)\n", s.Scenario, s.ScenarioMovePct*100)
	fmt.Fprintf(w, "Commission:    %.2f per contract\n", s.CommissionPerContract)
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tACTION\tQTY\tENTRY\tEXIT\tPREMIUM IN\tPREMIUM OUT\tPAYOFF\tSTATUS")
	for _, t := range r.Trades {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%.2f\t%.2f\t%.2f\t%s\n",
			t.AnnotationID, t.Type, t.Action, t.Contracts,
			fmtDay(t.EntryTimestamp), fmtDay(t.ExitTimestamp),
			t.EntryPremium, t.ExitPremium, t.Payoff, t.Status)
	}
	_ = tw.Flush()

	if len(r.Skipped) > 0 {
		fmt.Fprintf(w, "\nSkipped:       %v\n", r.Skipped)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Statistics")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Trades:        %d (%d won, %d lost)\n", st.NumTrades, st.NumWinners, st.NumLosers)
	fmt.Fprintf(w, "Win rate:      %.2f%%\n", st.WinRate*100)
	fmt.Fprintf(w, "Premium spent: %.2f\n", st.TotalPremiumSpent)
	fmt.Fprintf(w, "Premium recv:  %.2f\n", st.TotalPremiumReceived)
	fmt.Fprintf(w, "Commission:    %.2f\n", st.TotalCommission)
	fmt.Fprintf(w, "Net P/L:       %.2f\n", st.NetPnL)
	fmt.Fprintf(w, "Max win/loss:  %.2f / %.2f\n", st.MaxWin, st.MaxLoss)
	fmt.Fprintf(w, "Return on cap: %.2f%%\n", st.ReturnOnCapital*100)
}

func pricingName(s Settings) string {
	if s.UseBlackScholes {
		return "black-scholes"
	}
	return "intrinsic"
}

func fmtDay(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02")
}
