// Package manual replays hand-entered option trade annotations against a
// price series and reports per-trade payoffs and aggregate stats.
package manual

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rustyeddy/relaytrader/options"
)

// ContractSize is the number of underlying shares per option contract.
const ContractSize = 100

var ErrInvalidAnnotation = errors.New("manual: invalid annotation")

// Action is buy-to-open or sell-to-open.
type Action int8

const (
	ActionBuy Action = iota + 1
	ActionSell
)

func (a Action) String() string {
	switch a {
	case ActionBuy:
		return "buy"
	case ActionSell:
		return "sell"
	default:
		return "unknown"
	}
}

// Sign is +1 for buy, -1 for sell.
func (a Action) Sign() float64 {
	if a == ActionSell {
		return -1
	}
	return 1
}

func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy":
		return ActionBuy, nil
	case "sell":
		return ActionSell, nil
	}
	return 0, fmt.Errorf("manual: unknown action %q", s)
}

func (a Action) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Action) UnmarshalText(b []byte) error {
	v, err := ParseAction(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Annotation is one option position marked on a chart.
type Annotation struct {
	ID        string       `json:"id" yaml:"id"`
	Timestamp int64        `json:"timestamp" yaml:"timestamp"` // ms
	Type      options.Type `json:"type" yaml:"type"`
	Action    Action       `json:"action" yaml:"action"`
	Strike    float64      `json:"strike" yaml:"strike"`
	Expiry    string       `json:"expiry" yaml:"expiry"` // YYYY-MM-DD
	Contracts int          `json:"contracts" yaml:"contracts"`
	Premium   *float64     `json:"premium,omitempty" yaml:"premium,omitempty"`
	Note      string       `json:"note,omitempty" yaml:"note,omitempty"`
	Tags      []string     `json:"tags,omitempty" yaml:"tags,omitempty"`
	SourceURL string       `json:"source_url,omitempty" yaml:"source_url,omitempty"`
}

func (a Annotation) Validate() error {
	switch {
	case a.ID == "":
		return fmt.Errorf("%w: id is required", ErrInvalidAnnotation)
	case a.Type != options.Call && a.Type != options.Put:
		return fmt.Errorf("%w %s: type must be call or put", ErrInvalidAnnotation, a.ID)
	case a.Action != ActionBuy && a.Action != ActionSell:
		return fmt.Errorf("%w %s: action must be buy or sell", ErrInvalidAnnotation, a.ID)
	case a.Strike <= 0:
		return fmt.Errorf("%w %s: strike must be > 0", ErrInvalidAnnotation, a.ID)
	case a.Contracts <= 0:
		return fmt.Errorf("%w %s: contracts must be > 0", ErrInvalidAnnotation, a.ID)
	case a.Premium != nil && *a.Premium < 0:
		return fmt.Errorf("%w %s: premium must be >= 0", ErrInvalidAnnotation, a.ID)
	}
	if _, err := options.ParseExpiry(a.Expiry); err != nil {
		return fmt.Errorf("%w %s: %v", ErrInvalidAnnotation, a.ID, err)
	}
	return nil
}
