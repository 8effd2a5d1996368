package manual

import (
	"fmt"
	"strings"
)

// Scenario shifts the whole price series before simulation.
type Scenario int8

const (
	ScenarioBase Scenario = iota
	ScenarioBull
	ScenarioBear
)

func (s Scenario) String() string {
	switch s {
	case ScenarioBull:
		return "bull"
	case ScenarioBear:
		return "bear"
	default:
		return "base"
	}
}

func ParseScenario(s string) (Scenario, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "base":
		return ScenarioBase, nil
	case "bull":
		return ScenarioBull, nil
	case "bear":
		return ScenarioBear, nil
	}
	return 0, fmt.Errorf("manual: unknown scenario %q", s)
}

func (s Scenario) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Scenario) UnmarshalText(b []byte) error {
	v, err := ParseScenario(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Settings control option pricing and the price scenario.
type Settings struct {
	ImpliedVolatility     float64  `json:"implied_volatility" yaml:"implied_volatility" mapstructure:"implied_volatility"`
	RiskFreeRate          float64  `json:"risk_free_rate" yaml:"risk_free_rate" mapstructure:"risk_free_rate"`
	UseBlackScholes       bool     `json:"use_black_scholes" yaml:"use_black_scholes" mapstructure:"use_black_scholes"`
	Scenario              Scenario `json:"scenario" yaml:"scenario" mapstructure:"scenario"`
	ScenarioMovePct       float64  `json:"scenario_move_pct" yaml:"scenario_move_pct" mapstructure:"scenario_move_pct"`
	CommissionPerContract float64  `json:"commission_per_contract" yaml:"commission_per_contract" mapstructure:"commission_per_contract"`
}

func DefaultSettings() Settings {
	return Settings{
		ImpliedVolatility:     0.30,
		RiskFreeRate:          0.05,
		UseBlackScholes:       true,
		Scenario:              ScenarioBase,
		ScenarioMovePct:       0.10,
		CommissionPerContract: 0.65,
	}
}

func (s Settings) Validate() error {
	if s.ImpliedVolatility < 0 {
		return fmt.Errorf("manual: implied_volatility must be >= 0")
	}
	if s.ScenarioMovePct < 0 || s.ScenarioMovePct >= 1 {
		return fmt.Errorf("manual: scenario_move_pct must be in [0, 1)")
	}
	if s.CommissionPerContract < 0 {
		return fmt.Errorf("manual: commission_per_contract must be >= 0")
	}
	if s.Scenario < ScenarioBase || s.Scenario > ScenarioBear {
		return fmt.Errorf("manual: invalid scenario %d", s.Scenario)
	}
	return nil
}

// Adjust returns prices scaled for the scenario. Base returns a copy.
func (s Settings) Adjust(prices []float64) []float64 {
	factor := 1.0
	switch s.Scenario {
	case ScenarioBull:
		factor = 1 + s.ScenarioMovePct
	case ScenarioBear:
		factor = 1 - s.ScenarioMovePct
	}
	out := make([]float64, len(prices))
	for i, p := range prices {
		out[i] = p * factor
	}
	return out
}
