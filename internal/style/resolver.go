package style

import (
	"strings"

	"github.com/geovizlabs/geoviz/internal/observability"
)

// Resolver resolves style rules against rows, memoizing constructed scales
// across the features of one style pass.
type Resolver struct {
	cache *ScaleCache
}

// NewResolver returns a resolver with an empty scale cache.
func NewResolver() *Resolver {
	return &Resolver{cache: NewScaleCache()}
}

// Reset clears the scale cache. Callers must invoke it at the start of
// every full style pass (new query results, or edited style settings)
// before the first Resolve.
func (r *Resolver) Reset() {
	r.cache.Clear()
}

// CachedScales returns the number of scales currently memoized.
func (r *Resolver) CachedScales() int {
	return r.cache.Len()
}

// Resolve returns the concrete value of property p for the given row under
// rule. The decision ladder, first match wins:
//
//  1. Constant rule with a literal: parse and return it.
//  2. Constant rule without a literal, or computed rule missing its field
//     or function: the property default. Partially configured styles never
//     error.
//  3. identity: the row value through the property's parser, no scale.
//  4. categorical / interval / linear: the (cached) scale applied to the
//     row value.
//  5. Anything else: UnknownFunctionError.
func (r *Resolver) Resolve(p Property, row map[string]any, rule Rule) (Value, error) {
	if !p.Known() {
		return Value{}, &UnknownPropertyError{Name: string(p)}
	}

	if !rule.Computed {
		if strings.TrimSpace(rule.Value) == "" {
			return p.Default(), nil
		}
		if v, ok := p.Parse(rule.Value); ok {
			return v, nil
		}
		return p.Default(), nil
	}

	if rule.Field == "" || rule.Function == "" {
		return p.Default(), nil
	}

	switch rule.Function {
	case FunctionIdentity:
		if v, ok := p.Parse(row[rule.Field]); ok {
			return v, nil
		}
		return p.Default(), nil
	case FunctionCategorical, FunctionInterval, FunctionLinear:
		return r.scaleFor(p, rule)(row[rule.Field]), nil
	default:
		return Value{}, &UnknownFunctionError{Name: string(rule.Function)}
	}
}

// scaleFor returns the memoized scale for (p, rule), building and caching
// it on first use. Only fully constructed scales are inserted.
func (r *Resolver) scaleFor(p Property, rule Rule) Scale {
	key := rule.fingerprint(p)
	if s, ok := r.cache.get(key); ok {
		observability.IncScaleCacheHit()
		return s
	}
	observability.IncScaleCacheMiss()

	var s Scale
	switch rule.Function {
	case FunctionCategorical:
		s = newCategoricalScale(p, rule)
	case FunctionInterval:
		s = newIntervalScale(p, rule)
	default:
		s = newLinearScale(p, rule)
	}
	r.cache.put(key, s)
	return s
}
