package strategies

func builtins() []Definition {
	return []Definition{
		{
			ID:          "buy_and_hold",
			Name:        "Buy & Hold",
			Description: "Purchase a fixed quantity on the first bar and hold.",
			Params:      []Param{floatParam("qty", 1, 0.1, 100)},
			New:         newBuyAndHold,
		},
		{
			ID:          "mean_reversion",
			Name:        "Mean Reversion (Z-Score)",
			Description: "Buy when close z-score below -entry, exit when above +entry or back near the mean.",
			Params: []Param{
				intParam("lookback", 50, 10, 200),
				floatParam("entry_z", 2.0, 0.5, 5.0),
				floatParam("exit_z", 0.5, 0.0, 2.0),
			},
			New: newMeanReversion,
		},
		{
			ID:          "sma_cross",
			Name:        "SMA Crossover",
			Description: "Fast/slow SMA on close; long when fast>slow, short when fast<slow.",
			Params: []Param{
				intParam("fast", 10, 2, 200),
				intParam("slow", 40, 5, 400),
			},
			New: newSMACross,
		},
		{
			ID:          "ema_cross",
			Name:        "EMA Crossover",
			Description: "Enter on fast/slow EMA crosses, optional ADX filter and ATR protective stop.",
			Params: []Param{
				intParam("fast", 10, 2, 200),
				intParam("slow", 30, 5, 400),
				floatParam("qty", 1, 0.1, 100),
				intParam("atr_period", 14, 2, 100),
				floatParam("atr_stop", 0, 0, 10),
				intParam("adx_period", 14, 2, 100),
				floatParam("adx_min", 0, 0, 100),
				floatParam("risk_pct", 0, 0, 0.1),
			},
			New: newEMACross,
		},
		{
			ID:          "rsi_reversion",
			Name:        "RSI Fade",
			Description: "Fade RSI extremes; buy oversold, short overbought.",
			Params: []Param{
				intParam("length", 14, 5, 50),
				floatParam("oversold", 30, 5, 45),
				floatParam("overbought", 70, 55, 95),
				floatParam("qty", 1, 0.5, 10),
			},
			New: newRSIReversion,
		},
		{
			ID:          "bollinger_reversion",
			Name:        "Bollinger Mean Reversion",
			Description: "Enter against Bollinger Band extremes, flatten near the mean.",
			Params: []Param{
				intParam("lookback", 20, 10, 200),
				floatParam("num_std", 2, 0.5, 4),
				floatParam("qty", 1, 0.5, 10),
			},
			New: newBollingerReversion,
		},
		{
			ID:          "donchian_breakout",
			Name:        "Donchian Breakout",
			Description: "Trend-following breakout using channel highs/lows.",
			Params: []Param{
				intParam("lookback", 55, 10, 200),
				floatParam("qty", 1, 0.5, 10),
			},
			New: newDonchianBreakout,
		},
		{
			ID:          "percent_momentum",
			Name:        "Percent Momentum",
			Description: "Follow the direction of the lookback percentage change.",
			Params: []Param{
				intParam("lookback", 20, 5, 200),
				floatParam("threshold", 0.02, 0.005, 0.1),
				floatParam("qty", 1, 0.5, 10),
			},
			New: newPercentMomentum,
		},
		{
			ID:          "noop",
			Name:        "No-op",
			Description: "Never trades. Useful to check data and costs.",
			New:         newNoop,
		},
	}
}
