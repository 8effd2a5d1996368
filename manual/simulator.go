package manual

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/relaytrader/options"
)

var ErrSeriesMismatch = errors.New("manual: timestamps and prices differ in length")

// Status of a simulated trade.
type Status string

const (
	StatusOpen    Status = "open"
	StatusClosed  Status = "closed"
	StatusExpired Status = "expired"
)

// SimulatedTrade is the outcome of one annotation. Greeks are taken at entry.
type SimulatedTrade struct {
	AnnotationID   string         `json:"annotation_id"`
	Type           options.Type   `json:"type"`
	Action         Action         `json:"action"`
	Contracts      int            `json:"contracts"`
	EntryTimestamp int64          `json:"entry_timestamp"`
	EntryPrice     float64        `json:"entry_price"`
	EntryPremium   float64        `json:"entry_premium"`
	ExitTimestamp  int64          `json:"exit_timestamp"`
	ExitPrice      float64        `json:"exit_price"`
	ExitPremium    float64        `json:"exit_premium"`
	Commission     float64        `json:"commission"`
	Payoff         float64        `json:"payoff"`
	Status         Status         `json:"status"`
	Greeks         options.Greeks `json:"greeks"`
}

// Result holds the simulated trades in timestamp order, the aggregate
// stats, and the ids of annotations that fell outside the series.
type Result struct {
	Settings Settings         `json:"settings"`
	Trades   []SimulatedTrade `json:"trades"`
	Stats    Stats            `json:"stats"`
	Skipped  []string         `json:"skipped,omitempty"`
}

type Simulator struct {
	settings Settings
	log      *zap.Logger
}

type Option func(*Simulator)

func WithLogger(l *zap.Logger) Option {
	return func(s *Simulator) {
		if l != nil {
			s.log = l
		}
	}
}

func NewSimulator(settings Settings, opts ...Option) (*Simulator, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	s := &Simulator{settings: settings, log: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Run simulates every annotation against the (timestamp, price) series.
// timestamps must be ascending milliseconds. Annotations past the end of
// the series are skipped with a warning.
func (s *Simulator) Run(annotations []Annotation, timestamps []int64, prices []float64) (*Result, error) {
	if len(timestamps) != len(prices) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrSeriesMismatch, len(timestamps), len(prices))
	}
	for _, a := range annotations {
		if err := a.Validate(); err != nil {
			return nil, err
		}
	}

	sorted := make([]Annotation, len(annotations))
	copy(sorted, annotations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	adjusted := s.settings.Adjust(prices)
	res := &Result{Settings: s.settings, Trades: []SimulatedTrade{}}
	var spent, received, commission float64

	for _, a := range sorted {
		entry, ok := firstAtOrAfter(timestamps, a.Timestamp)
		if !ok {
			s.log.Warn("annotation beyond series range",
				zap.String("annotation", a.ID),
				zap.Int64("timestamp", a.Timestamp))
			res.Skipped = append(res.Skipped, a.ID)
			continue
		}

		// ParseExpiry cannot fail here, Validate already checked it.
		expiry, _ := options.ParseExpiry(a.Expiry)

		entryPremium, greeks := s.price(a, expiry, timestamps[entry], adjusted[entry])
		if a.Premium != nil {
			entryPremium = *a.Premium
		}

		notional := entryPremium * float64(a.Contracts) * ContractSize
		fee := s.settings.CommissionPerContract * float64(a.Contracts)
		if a.Action == ActionBuy {
			spent += notional
		} else {
			received += notional
		}
		commission += fee

		exit := len(timestamps) - 1
		for i := entry; i < len(timestamps); i++ {
			if options.YearsToExpiry(timestamps[i], expiry) <= 0 {
				exit = i
				break
			}
		}
		exitPremium, _ := s.price(a, expiry, timestamps[exit], adjusted[exit])

		status := StatusClosed
		if options.YearsToExpiry(timestamps[exit], expiry) <= 0 {
			status = StatusExpired
		}

		res.Trades = append(res.Trades, SimulatedTrade{
			AnnotationID:   a.ID,
			Type:           a.Type,
			Action:         a.Action,
			Contracts:      a.Contracts,
			EntryTimestamp: timestamps[entry],
			EntryPrice:     adjusted[entry],
			EntryPremium:   entryPremium,
			ExitTimestamp:  timestamps[exit],
			ExitPrice:      adjusted[exit],
			ExitPremium:    exitPremium,
			Commission:     fee,
			Payoff:         (exitPremium-entryPremium)*float64(a.Contracts)*ContractSize*a.Action.Sign() - fee,
			Status:         status,
			Greeks:         greeks,
		})
	}

	res.Stats = computeStats(res.Trades, spent, received, commission)
	s.log.Debug("manual simulation complete",
		zap.Int("trades", len(res.Trades)),
		zap.Int("skipped", len(res.Skipped)),
		zap.Float64("net_pnl", res.Stats.NetPnL))
	return res, nil
}

// price is Black-Scholes while time remains and the model is enabled,
// intrinsic value otherwise.
func (s *Simulator) price(a Annotation, expiry time.Time, ts int64, spot float64) (float64, options.Greeks) {
	years := options.YearsToExpiry(ts, expiry)
	if !s.settings.UseBlackScholes || years <= 0 {
		return options.Intrinsic(a.Type, spot, a.Strike), options.Greeks{}
	}
	vol, rate := s.settings.ImpliedVolatility, s.settings.RiskFreeRate
	return options.Price(a.Type, spot, a.Strike, years, vol, rate),
		options.ComputeGreeks(a.Type, spot, a.Strike, years, vol, rate)
}

func firstAtOrAfter(timestamps []int64, ts int64) (int, bool) {
	for i, t := range timestamps {
		if t >= ts {
			return i, true
		}
	}
	return 0, false
}
