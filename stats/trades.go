package stats

import (
	"math"

	"github.com/rustyeddy/relaytrader/broker"
)

// TradeStats aggregates realized P&L over one run's fills.
type TradeStats struct {
	TotalPnL        float64 `json:"total_pnl"` // realized, before costs
	TotalCommission float64 `json:"total_commission"`
	TotalSlippage   float64 `json:"total_slippage"`
	NetPnL          float64 `json:"net_pnl"`
	GrossProfit     float64 `json:"gross_profit"`
	GrossLoss       float64 `json:"gross_loss"`
	ProfitFactor    float64 `json:"profit_factor"`
	WinRate         float64 `json:"win_rate"`
	AvgWin          float64 `json:"avg_win"`
	AvgLoss         float64 `json:"avg_loss"`
	NumTrades       int     `json:"num_trades"`
	NumWinners      int     `json:"num_winners"`
	NumLosers       int     `json:"num_losers"`
	Turnover        float64 `json:"turnover"`
}

// ComputeTrades replays fills through a running position and returns the
// aggregate stats plus realized P&L per fill. A fill that reduces or flips
// the position realizes closedQty*(price-avgCost)*sign(position) net of its
// own commission and slippage; fills that only open or add realize 0.
// Each realizing fill counts as one trade. NetPnL subtracts the costs of
// every fill, opening fills included, from TotalPnL.
func ComputeTrades(fills []broker.Fill, initialCash float64) (TradeStats, []float64) {
	var (
		s        TradeStats
		qty      float64
		avgCost  float64
		notional float64
		realized = make([]float64, len(fills))
	)

	for i, f := range fills {
		s.TotalCommission += f.Commission
		s.TotalSlippage += f.Slippage
		notional += f.Notional()

		signed := f.SignedQty()

		switch {
		case qty == 0:
			qty = signed
			avgCost = f.Price

		case qty*signed > 0:
			next := qty + signed
			avgCost = (math.Abs(qty)*avgCost + math.Abs(signed)*f.Price) / math.Abs(next)
			qty = next

		default:
			sign := 1.0
			if qty < 0 {
				sign = -1.0
			}
			closed := math.Min(math.Abs(qty), math.Abs(signed))
			gross := closed * (f.Price - avgCost) * sign

			qty += signed
			if qty == 0 {
				avgCost = 0
			} else if qty*sign < 0 {
				avgCost = f.Price
			}

			net := gross - f.Commission - f.Slippage
			realized[i] = net
			s.TotalPnL += gross
			s.NumTrades++

			switch {
			case net > 0:
				s.NumWinners++
				s.GrossProfit += net
			case net < 0:
				s.NumLosers++
				s.GrossLoss += net
			}
		}
	}

	s.NetPnL = s.TotalPnL - s.TotalCommission - s.TotalSlippage
	if s.NumTrades > 0 {
		s.WinRate = float64(s.NumWinners) / float64(s.NumTrades)
	}
	if s.NumWinners > 0 {
		s.AvgWin = s.GrossProfit / float64(s.NumWinners)
	}
	if s.NumLosers > 0 {
		s.AvgLoss = s.GrossLoss / float64(s.NumLosers)
	}
	if s.GrossLoss != 0 {
		s.ProfitFactor = s.GrossProfit / math.Abs(s.GrossLoss)
	}
	if initialCash > 0 {
		s.Turnover = notional / initialCash
	}
	return s, realized
}
