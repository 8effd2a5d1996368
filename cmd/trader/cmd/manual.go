package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/relaytrader/backtest"
	"github.com/rustyeddy/relaytrader/manual"
)

var manualCmd = &cobra.Command{
	Use:   "manual",
	Short: "Simulate annotated option trades over a price series",
	Long: `Manual prices each annotated option trade on the bar at or after its
timestamp and holds it to expiry or to the last bar.

Annotations are a JSON or YAML list:
  - id: a1
    timestamp: 1704067200000
    type: call
    action: buy
    strike: 480
    expiry: "2024-03-15"
    contracts: 2

Example:
  trader manual -a trades.yaml -d data/spy.csv --scenario bear --move 0.15`,
	RunE: runManual,
}

var (
	mnAnnotations string
	mnDataPath    string
	mnIV          float64
	mnRate        float64
	mnScenario    string
	mnMove        float64
	mnCommission  float64
	mnIntrinsic   bool
	mnJSON        bool
)

func init() {
	rootCmd.AddCommand(manualCmd)

	f := manualCmd.Flags()
	f.StringVarP(&mnAnnotations, "annotations", "a", "", "annotation file (defaults to data.annotations)")
	f.StringVarP(&mnDataPath, "data", "d", "", "bar CSV supplying the underlying closes (defaults to data.bars)")
	f.Float64Var(&mnIV, "iv", 0, "implied volatility")
	f.Float64Var(&mnRate, "rate", 0, "risk-free rate")
	f.StringVar(&mnScenario, "scenario", "", "price scenario (base, bull, bear)")
	f.Float64Var(&mnMove, "move", 0, "scenario move as a fraction")
	f.Float64Var(&mnCommission, "commission", 0, "commission per contract")
	f.BoolVar(&mnIntrinsic, "intrinsic", false, "price at intrinsic value instead of Black-Scholes")
	f.BoolVar(&mnJSON, "json", false, "print the full result as JSON")
}

func manualSettings(cmd *cobra.Command) (manual.Settings, error) {
	s := cfg.Options
	f := cmd.Flags()

	if f.Changed("iv") {
		s.ImpliedVolatility = mnIV
	}
	if f.Changed("rate") {
		s.RiskFreeRate = mnRate
	}
	if f.Changed("scenario") {
		sc, err := manual.ParseScenario(mnScenario)
		if err != nil {
			return s, err
		}
		s.Scenario = sc
	}
	if f.Changed("move") {
		s.ScenarioMovePct = mnMove
	}
	if f.Changed("commission") {
		s.CommissionPerContract = mnCommission
	}
	if mnIntrinsic {
		s.UseBlackScholes = false
	}
	return s, s.Validate()
}

func runManual(cmd *cobra.Command, args []string) error {
	settings, err := manualSettings(cmd)
	if err != nil {
		return err
	}

	annPath := firstNonEmpty(mnAnnotations, cfg.Data.Annotations)
	barPath := firstNonEmpty(mnDataPath, cfg.Data.Bars)
	if annPath == "" || barPath == "" {
		return fmt.Errorf("manual needs --annotations and --data (or data.annotations and data.bars)")
	}

	anns, err := manual.LoadAnnotations(annPath)
	if err != nil {
		return err
	}
	bars, err := backtest.BarsFrom(backtest.CSVSource{Path: barPath})
	if err != nil {
		return err
	}

	ts := make([]int64, len(bars))
	closes := make([]float64, len(bars))
	for i, b := range bars {
		ts[i], closes[i] = b.Timestamp, b.Close
	}

	sim, err := manual.NewSimulator(settings, manual.WithLogger(log))
	if err != nil {
		return err
	}
	res, err := sim.Run(anns, ts, closes)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if mnJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	manual.PrintResult(out, res)
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
