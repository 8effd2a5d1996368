package strategies

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// Params is a strategy's parameter bag. Values from config files and the
// command line arrive as strings or numbers; Resolve normalizes them to
// float64.
type Params map[string]any

func (p Params) Float(name string) float64 {
	v, _ := cast.ToFloat64E(p[name])
	return v
}

func (p Params) Int(name string) int {
	return int(math.Round(p.Float(name)))
}

// Keys returns the parameter names in sorted order.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParseParams turns "name=value" pairs into Params. Values are kept as
// strings and converted by Resolve.
func ParseParams(pairs []string) (Params, error) {
	p := Params{}
	for _, kv := range pairs {
		k, v, ok := strings.Cut(kv, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("strategies: bad parameter %q, want name=value", kv)
		}
		p[k] = strings.TrimSpace(v)
	}
	return p, nil
}

type ParamKind int8

const (
	KindFloat ParamKind = iota
	KindInt
)

func (k ParamKind) String() string {
	if k == KindInt {
		return "int"
	}
	return "float"
}

func (k ParamKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Param describes one tunable. Nil bounds are open.
type Param struct {
	Name    string    `json:"name" yaml:"name"`
	Kind    ParamKind `json:"type" yaml:"type"`
	Default float64   `json:"default" yaml:"default"`
	Min     *float64  `json:"min,omitempty" yaml:"min,omitempty"`
	Max     *float64  `json:"max,omitempty" yaml:"max,omitempty"`
}

func bound(v float64) *float64 { return &v }

func intParam(name string, def, min, max float64) Param {
	return Param{Name: name, Kind: KindInt, Default: def, Min: bound(min), Max: bound(max)}
}

func floatParam(name string, def, min, max float64) Param {
	return Param{Name: name, Kind: KindFloat, Default: def, Min: bound(min), Max: bound(max)}
}

func (p Param) check(raw any) (float64, error) {
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidParam, p.Name, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s must be finite", ErrInvalidParam, p.Name)
	}
	if p.Kind == KindInt && v != math.Trunc(v) {
		return 0, fmt.Errorf("%w: %s must be an integer, got %v", ErrInvalidParam, p.Name, v)
	}
	if p.Min != nil && v < *p.Min {
		return 0, fmt.Errorf("%w: %s=%v below minimum %v", ErrInvalidParam, p.Name, v, *p.Min)
	}
	if p.Max != nil && v > *p.Max {
		return 0, fmt.Errorf("%w: %s=%v above maximum %v", ErrInvalidParam, p.Name, v, *p.Max)
	}
	return v, nil
}
