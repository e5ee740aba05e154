package strategy

import (
	"github.com/omnialpha/stock-selector/pkg/errors"
)

// Constructor builds a fresh Strategy instance.
type Constructor func() Strategy

// Registry maps command-surface keys to strategy constructors. It is
// assembled once at startup and never mutated during a run, so lookups
// are safe for unsynchronized concurrent use.
type Registry struct {
	constructors map[string]Constructor
	keys         []string
}

// NewRegistry wires the built-in rule set. Fundamental rules close over
// the given source for their report lookups.
func NewRegistry(source FundamentalsSource) *Registry {
	r := &Registry{
		constructors: make(map[string]Constructor),
	}

	r.register("ma", NewMovingAverage)
	r.register("vol", NewVolumeBreakout)
	r.register("turn", NewHighTurnover)
	r.register("pe", NewLowPE)
	r.register("growth", func() Strategy { return NewHighGrowth(source) })
	r.register("roe", func() Strategy { return NewHighROE(source) })
	r.register("debt", func() Strategy { return NewLowDebt(source) })

	return r
}

func (r *Registry) register(key string, build Constructor) {
	r.constructors[key] = build
	r.keys = append(r.keys, key)
}

// Resolve constructs a new Strategy instance for the key. Keys are
// matched exactly, including case and surrounding whitespace; callers
// must not assume instance identity across calls.
func (r *Registry) Resolve(key string) (Strategy, error) {
	build, ok := r.constructors[key]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeStrategyNotFound, "strategy with key %q not found", key)
	}

	return build(), nil
}

// Keys returns the registered keys in registration order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)

	return keys
}
