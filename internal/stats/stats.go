// Package stats aggregates running per-column numeric statistics across
// paginated result batches. The output is advisory: it feeds min/max hints
// to the style configuration surface and is never consumed by the styling
// engine itself.
package stats

import (
	"math"
	"strconv"
	"strings"
)

// ColumnStat is the aggregate for one numeric column.
type ColumnStat struct {
	Min   float64 `json:"min" doc:"Smallest observed value"`
	Max   float64 `json:"max" doc:"Largest observed value"`
	Nulls int     `json:"nulls" doc:"Null, empty, or non-numeric cells"`
	Count int     `json:"count" doc:"Numeric cells observed"`
}

// Collector accumulates column statistics for the duration of one query's
// result set. Build a fresh collector for every new query.
type Collector struct {
	cols map[string]*ColumnStat
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{cols: make(map[string]*ColumnStat)}
}

// Observe records one cell. Null, empty, and non-numeric values count as
// nulls; numeric values update min/max with 3-decimal rounding so floating
// noise does not accumulate across millions of rows.
func (c *Collector) Observe(column string, raw any) {
	st := c.cols[column]
	if st == nil {
		st = &ColumnStat{Min: math.Inf(1), Max: math.Inf(-1)}
		c.cols[column] = st
	}

	n, ok := cellNumber(raw)
	if !ok {
		st.Nulls++
		return
	}
	n = round3(n)
	if n < st.Min {
		st.Min = n
	}
	if n > st.Max {
		st.Max = n
	}
	st.Count++
}

// ObserveRow records every cell of a row.
func (c *Collector) ObserveRow(row map[string]any) {
	for col, v := range row {
		c.Observe(col, v)
	}
}

// Get returns the aggregate for one column.
func (c *Collector) Get(column string) (ColumnStat, bool) {
	st, ok := c.cols[column]
	if !ok {
		return ColumnStat{}, false
	}
	return exported(*st), true
}

// Snapshot returns a copy of all column aggregates.
func (c *Collector) Snapshot() map[string]ColumnStat {
	out := make(map[string]ColumnStat, len(c.cols))
	for col, st := range c.cols {
		out[col] = exported(*st)
	}
	return out
}

// exported zeroes the infinite sentinels of columns that never saw a
// number, so snapshots stay JSON-encodable.
func exported(st ColumnStat) ColumnStat {
	if st.Count == 0 {
		st.Min, st.Max = 0, 0
	}
	return st
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}

// cellNumber coerces one warehouse cell to a number. It is deliberately
// narrower than a general numeric parser: booleans are not statistics.
func cellNumber(raw any) (float64, bool) {
	switch v := raw.(type) {
	case nil:
		return 0, false
	case float64:
		return v, !math.IsNaN(v)
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		n, err := strconv.ParseFloat(s, 64)
		return n, err == nil
	case []byte:
		return cellNumber(string(v))
	default:
		return 0, false
	}
}
