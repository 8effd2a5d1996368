package strategies

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rustyeddy/relaytrader/broker"
)

var (
	ErrUnknownStrategy = errors.New("strategies: unknown strategy")
	ErrInvalidParam    = errors.New("strategies: invalid parameter")
	ErrDuplicate       = errors.New("strategies: strategy already registered")
)

// Definition is a catalogue entry.
type Definition struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Params      []Param `json:"params" yaml:"params"`
	New         Factory `json:"-" yaml:"-"`
}

// Registry maps strategy ids to definitions. It is an ordinary value:
// each caller builds or copies its own.
type Registry struct {
	defs map[string]Definition
}

func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

func (r *Registry) Register(d Definition) error {
	if d.ID == "" || d.New == nil {
		return fmt.Errorf("strategies: definition needs an id and a factory")
	}
	if _, ok := r.defs[d.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, d.ID)
	}
	r.defs[d.ID] = d
	return nil
}

func (r *Registry) Lookup(id string) (Definition, error) {
	d, ok := r.defs[id]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, id)
	}
	return d, nil
}

// List returns every definition sorted by id.
func (r *Registry) List() []Definition {
	out := make([]Definition, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Resolve fills defaults and validates raw against the definition's
// bounds. Unknown parameter names are an error.
func (r *Registry) Resolve(id string, raw Params) (Definition, Params, error) {
	d, err := r.Lookup(id)
	if err != nil {
		return Definition{}, nil, err
	}

	known := make(map[string]Param, len(d.Params))
	for _, p := range d.Params {
		known[p.Name] = p
	}
	for _, k := range raw.Keys() {
		if _, ok := known[k]; !ok {
			return Definition{}, nil, fmt.Errorf("%w: %s has no parameter %q", ErrInvalidParam, id, k)
		}
	}

	out := make(Params, len(d.Params))
	for _, p := range d.Params {
		v, ok := raw[p.Name]
		if !ok {
			out[p.Name] = p.Default
			continue
		}
		f, err := p.check(v)
		if err != nil {
			return Definition{}, nil, err
		}
		out[p.Name] = f
	}
	return d, out, nil
}

// New resolves params and builds the strategy bound to ctx.
func (r *Registry) New(ctx broker.Context, id string, raw Params) (Strategy, error) {
	d, params, err := r.Resolve(id, raw)
	if err != nil {
		return nil, err
	}
	s, err := d.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("strategies: %s: %w", id, err)
	}
	return s, nil
}

// Builtin returns a registry holding the built-in catalogue.
func Builtin() *Registry {
	r := NewRegistry()
	for _, d := range builtins() {
		if err := r.Register(d); err != nil {
			panic(err)
		}
	}
	return r
}
