package manual

// Stats aggregate the simulated trades. Winners and losers are keyed on
// each trade's payoff.
type Stats struct {
	TotalPremiumSpent    float64 `json:"total_premium_spent"`
	TotalPremiumReceived float64 `json:"total_premium_received"`
	NetPremium           float64 `json:"net_premium"`
	TotalCommission      float64 `json:"total_commission"`
	MaxPayoff            float64 `json:"max_payoff"`
	MinPayoff            float64 `json:"min_payoff"`
	NetPnL               float64 `json:"net_pnl"`
	WinRate              float64 `json:"win_rate"`
	NumTrades            int     `json:"num_trades"`
	NumWinners           int     `json:"num_winners"`
	NumLosers            int     `json:"num_losers"`
	AvgWin               float64 `json:"avg_win"`
	AvgLoss              float64 `json:"avg_loss"`
	MaxWin               float64 `json:"max_win"`
	MaxLoss              float64 `json:"max_loss"`
	ReturnOnCapital      float64 `json:"return_on_capital"`
}

func computeStats(trades []SimulatedTrade, spent, received, commission float64) Stats {
	if len(trades) == 0 {
		return Stats{}
	}

	st := Stats{
		TotalPremiumSpent:    spent,
		TotalPremiumReceived: received,
		NetPremium:           received - spent,
		TotalCommission:      commission,
		NumTrades:            len(trades),
		MaxPayoff:            trades[0].Payoff,
		MinPayoff:            trades[0].Payoff,
	}

	var wins, losses float64
	for _, t := range trades {
		p := t.Payoff
		st.NetPnL += p
		st.MaxPayoff = max(st.MaxPayoff, p)
		st.MinPayoff = min(st.MinPayoff, p)
		switch {
		case p > 0:
			st.NumWinners++
			wins += p
			st.MaxWin = max(st.MaxWin, p)
		case p < 0:
			st.NumLosers++
			losses += p
			st.MaxLoss = min(st.MaxLoss, p)
		}
	}

	st.WinRate = float64(st.NumWinners) / float64(st.NumTrades)
	if st.NumWinners > 0 {
		st.AvgWin = wins / float64(st.NumWinners)
	}
	if st.NumLosers > 0 {
		st.AvgLoss = losses / float64(st.NumLosers)
	}
	if spent > 0 {
		st.ReturnOnCapital = st.NetPnL / spent
	}
	return st
}
