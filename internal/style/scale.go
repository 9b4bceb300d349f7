package style

import "sort"

// A Scale maps one raw row value to a resolved style value. Scales are
// built once per (property, rule) pair and applied once per feature.
type Scale func(raw any) Value

// newCategoricalScale builds an ordinal lookup: domain entries are used
// verbatim as category keys, range entries are parsed through the property's
// parser. Inputs outside the domain, and range entries that fail to parse,
// map to the property default.
func newCategoricalScale(p Property, r Rule) Scale {
	def := p.Default()
	table := make(map[string]Value, len(r.Domain))
	for i, key := range r.Domain {
		if i >= len(r.Range) {
			break
		}
		v, ok := p.Parse(r.Range[i])
		if !ok {
			v = def
		}
		table[key] = v
	}
	return func(raw any) Value {
		s, ok := toString(raw)
		if !ok {
			return def
		}
		if v, ok := table[s]; ok {
			return v
		}
		return def
	}
}

// intervalPoint pairs one numeric breakpoint with its parsed output value.
type intervalPoint struct {
	x float64
	v Value
}

// newIntervalScale builds a threshold scale. Domain entries are coerced to
// numbers and sorted ascending together with their paired range entries.
// A value is routed to the bucket of the greatest breakpoint at or below it;
// values below the smallest breakpoint fall into the first explicit bucket,
// and values at or beyond the largest breakpoint fall into an implicit
// terminal bucket holding the property default.
func newIntervalScale(p Property, r Rule) Scale {
	def := p.Default()
	points := pairPoints(p, r)
	return func(raw any) Value {
		if len(points) == 0 {
			return def
		}
		n, ok := toNumber(raw)
		if !ok {
			return def
		}
		// idx = number of breakpoints <= n
		idx := sort.Search(len(points), func(i int) bool { return points[i].x > n })
		if idx >= len(points) {
			return def
		}
		return points[idx].v
	}
}

// newLinearScale builds a continuous piecewise-linear scale. Numeric
// properties interpolate numerically; color properties interpolate
// per-channel in RGB space. Values outside the domain extrapolate along the
// boundary segment's slope rather than clamping.
func newLinearScale(p Property, r Rule) Scale {
	def := p.Default()
	points := pairPoints(p, r)
	return func(raw any) Value {
		if len(points) == 0 {
			return def
		}
		n, ok := toNumber(raw)
		if !ok {
			return def
		}
		if len(points) == 1 {
			return points[0].v
		}

		// Pick the segment containing n, or the boundary segment for
		// out-of-domain extrapolation.
		hi := sort.Search(len(points), func(i int) bool { return points[i].x >= n })
		if hi <= 0 {
			hi = 1
		}
		if hi >= len(points) {
			hi = len(points) - 1
		}
		a, b := points[hi-1], points[hi]
		if a.x == b.x {
			return a.v
		}
		t := (n - a.x) / (b.x - a.x)
		if p.Kind() == KindColor {
			return colorValue(lerpColor(a.v.Color, b.v.Color, t))
		}
		return numberValue(a.v.Number + (b.v.Number-a.v.Number)*t)
	}
}

// pairPoints coerces domain entries to numbers, parses the paired range
// entries, drops pairs whose domain entry is non-numeric, and sorts the
// survivors by breakpoint. Unparseable range entries fall back to the
// property default so a single typo cannot void the whole scale.
func pairPoints(p Property, r Rule) []intervalPoint {
	def := p.Default()
	points := make([]intervalPoint, 0, len(r.Domain))
	for i, d := range r.Domain {
		if i >= len(r.Range) {
			break
		}
		x, ok := toNumber(d)
		if !ok {
			continue
		}
		v, ok := p.Parse(r.Range[i])
		if !ok {
			v = def
		}
		points = append(points, intervalPoint{x: x, v: v})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].x < points[j].x })
	return points
}
