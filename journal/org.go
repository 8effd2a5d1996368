package journal

import (
	"fmt"
	"io"
	"text/template"
	"time"
)

var orgFuncs = template.FuncMap{
	"mul100": func(x float64) float64 { return x * 100.0 },
	"date": func(ms int64) string {
		if ms == 0 {
			return "(none)"
		}
		return time.UnixMilli(ms).UTC().Format("2006-01-02")
	},
}

var orgTemplate = template.Must(template.New("run").Funcs(orgFuncs).Parse(RunOrgTemplate))

// WriteOrg renders e as an Org-mode heading with a properties drawer,
// a performance summary and the fill table.
func WriteOrg(w io.Writer, e Entry) error {
	if err := orgTemplate.Execute(w, e); err != nil {
		return fmt.Errorf("journal: render org: %w", err)
	}
	return nil
}

const RunOrgTemplate = `* BACKTEST: {{.Run.Strategy}} {{.Run.Symbol}}
:PROPERTIES:
:RUN_ID:      {{.Run.RunID}}
:STRATEGY:    {{.Run.Strategy}}
:PARAMS:      {{.Run.Params}}
:SYMBOL:      {{.Run.Symbol}}
:START_DATE:  {{date .Run.Start}}
:END_DATE:    {{date .Run.End}}
:BARS:        {{.Run.Bars}}
:START_BAL:   {{printf "%.2f" .Run.InitialCash}}
:END_BAL:     {{printf "%.2f" .Run.FinalEquity}}
:NET_PL:      {{printf "%.2f" .Run.NetPnL}}
:RETURN_PCT:  {{printf "%.2f" (mul100 .Run.TotalReturn)}}
:MAX_DD_PCT:  {{printf "%.2f" (mul100 .Run.MaxDrawdown)}}
:TRADES:      {{.Run.NumTrades}}
:WIN_RATE:    {{printf "%.2f" .Run.WinRate}}
:CREATED:     [{{.Run.Created.Format "2006-01-02 Mon 15:04"}}]
:END:

** Performance Summary
- Net P/L:          *{{printf "%.2f" .Run.NetPnL}}*
- Return:           *{{printf "%.2f" (mul100 .Run.TotalReturn)}}%*
- Annualized:       *{{printf "%.2f" (mul100 .Run.AnnualizedReturn)}}%*
- Sharpe:           *{{printf "%.3f" .Run.Sharpe}}*
- Sortino:          *{{printf "%.3f" .Run.Sortino}}*
- Calmar:           *{{printf "%.3f" .Run.Calmar}}*
- Max Drawdown:     *{{printf "%.2f" (mul100 .Run.MaxDrawdown)}}%*
- Win Rate:         *{{printf "%.2f" (mul100 .Run.WinRate)}}%*
- Profit Factor:    *{{printf "%.2f" .Run.ProfitFactor}}*

** Fills
{{- if .Trades }}
| # | Order | Side | Qty | Price | Commission | Realized |
|---+-------+------+-----+-------+------------+----------|
{{- range .Trades }}
| {{.Seq}} | {{.OrderID}} | {{.Side}} | {{printf "%g" .Quantity}} | {{printf "%.4f" .Price}} | {{printf "%.2f" .Commission}} | {{printf "%.2f" .RealizedPnL}} |
{{- end }}
{{- else }}
# no fills
{{- end }}
`
