package style

import (
	"errors"
	"testing"
)

func TestResolve_StaticLiteral(t *testing.T) {
	r := NewResolver()
	rule := Rule{Value: "#F44336"}

	v, err := r.Resolve(FillColor, nil, rule)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := v.String(), "#f44336"; got != want {
		t.Fatalf("resolved %q, want %q", got, want)
	}
}

func TestResolve_EmptyStaticFallsBackToDefault(t *testing.T) {
	r := NewResolver()
	rows := []map[string]any{nil, {}, {"x": 1}}

	for _, p := range Properties {
		for _, row := range rows {
			v, err := r.Resolve(p, row, Rule{})
			if err != nil {
				t.Fatal(err)
			}
			if v != p.Default() {
				t.Fatalf("%s: got %v, want default %v", p, v, p.Default())
			}
		}
	}
}

func TestResolve_IncompleteComputedFallsBackToDefault(t *testing.T) {
	r := NewResolver()
	row := map[string]any{"pop": 42}

	cases := []Rule{
		{Computed: true},                                // no field, no function
		{Computed: true, Field: "pop"},                  // no function
		{Computed: true, Function: FunctionCategorical}, // no field
	}
	for _, rule := range cases {
		v, err := r.Resolve(StrokeWeight, row, rule)
		if err != nil {
			t.Fatal(err)
		}
		if v != StrokeWeight.Default() {
			t.Fatalf("rule %+v: got %v, want default", rule, v)
		}
	}
}

func TestResolve_Identity(t *testing.T) {
	r := NewResolver()

	v, err := r.Resolve(CircleRadius, map[string]any{"size": "7.5"}, Rule{
		Computed: true, Field: "size", Function: FunctionIdentity,
	})
	if err != nil {
		t.Fatal(err)
	}
	if v.Number != 7.5 {
		t.Fatalf("radius=%v, want 7.5", v.Number)
	}

	c, err := r.Resolve(FillColor, map[string]any{"col": "#ABC"}, Rule{
		Computed: true, Field: "col", Function: FunctionIdentity,
	})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := c.String(), "#aabbcc"; got != want {
		t.Fatalf("color=%q, want %q", got, want)
	}
}

func TestResolve_Categorical(t *testing.T) {
	r := NewResolver()
	rule := Rule{
		Computed: true,
		Field:    "f",
		Function: FunctionCategorical,
		Domain:   []string{"A", "B"},
		Range:    []string{"#fff", "#000"},
	}

	v, err := r.Resolve(FillColor, map[string]any{"f": "A"}, rule)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := v.String(), "#ffffff"; got != want {
		t.Fatalf("A resolved to %q, want %q", got, want)
	}

	// Not in the domain: default.
	v, err = r.Resolve(FillColor, map[string]any{"f": "Z"}, rule)
	if err != nil {
		t.Fatal(err)
	}
	if v != FillColor.Default() {
		t.Fatalf("Z resolved to %v, want default", v)
	}
}

func TestResolve_IntervalBuckets(t *testing.T) {
	r := NewResolver()
	rule := Rule{
		Computed: true,
		Field:    "v",
		Function: FunctionInterval,
		Domain:   []string{"10", "20"},
		Range:    []string{"#111111", "#222222"},
	}

	cases := []struct {
		value float64
		want  string
	}{
		{5, "#111111"},  // below the smallest breakpoint: first explicit bucket
		{10, "#222222"}, // at a breakpoint: that breakpoint's bucket
		{15, "#222222"},
		{25, FillColor.Default().String()}, // beyond the last breakpoint: implicit default bucket
	}
	for _, tc := range cases {
		v, err := r.Resolve(FillColor, map[string]any{"v": tc.value}, rule)
		if err != nil {
			t.Fatal(err)
		}
		if got := v.String(); got != tc.want {
			t.Fatalf("value %v resolved to %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestResolve_LinearInterpolationAndExtrapolation(t *testing.T) {
	r := NewResolver()
	rule := Rule{
		Computed: true,
		Field:    "v",
		Function: FunctionLinear,
		Domain:   []string{"0", "60"},
		Range:    []string{"2", "24"},
	}

	v, err := r.Resolve(CircleRadius, map[string]any{"v": 30}, rule)
	if err != nil {
		t.Fatal(err)
	}
	if v.Number != 13 {
		t.Fatalf("midpoint resolved to %v, want 13", v.Number)
	}

	// Beyond the domain the boundary slope continues, no clamping.
	v, err = r.Resolve(CircleRadius, map[string]any{"v": 120}, rule)
	if err != nil {
		t.Fatal(err)
	}
	if v.Number != 46 {
		t.Fatalf("extrapolated to %v, want 46", v.Number)
	}
}

func TestResolve_LinearColorInterpolatesPerChannel(t *testing.T) {
	r := NewResolver()
	rule := Rule{
		Computed: true,
		Field:    "v",
		Function: FunctionLinear,
		Domain:   []string{"0", "100"},
		Range:    []string{"#000000", "#ff0000"},
	}

	v, err := r.Resolve(FillColor, map[string]any{"v": 50}, rule)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := v.String(), "#800000"; got != want {
		t.Fatalf("midpoint color %q, want %q", got, want)
	}
}

func TestResolve_UnknownFunctionIsAnError(t *testing.T) {
	r := NewResolver()
	rule := Rule{Computed: true, Field: "v", Function: "exponential"}

	_, err := r.Resolve(FillOpacity, map[string]any{"v": 1}, rule)
	var unknownFn *UnknownFunctionError
	if !errors.As(err, &unknownFn) {
		t.Fatalf("err=%v, want UnknownFunctionError", err)
	}
	if unknownFn.Name != "exponential" {
		t.Fatalf("error names %q, want exponential", unknownFn.Name)
	}
	// A failed resolution never inserts a cache entry.
	if n := r.CachedScales(); n != 0 {
		t.Fatalf("cache has %d entries after failed resolve, want 0", n)
	}
}

func TestResolve_UnknownProperty(t *testing.T) {
	r := NewResolver()
	_, err := r.Resolve(Property("glow"), nil, Rule{Value: "1"})
	var unknownProp *UnknownPropertyError
	if !errors.As(err, &unknownProp) {
		t.Fatalf("err=%v, want UnknownPropertyError", err)
	}
}

func TestResolve_ScaleReuseAcrossRows(t *testing.T) {
	r := NewResolver()
	rule := Rule{
		Computed: true,
		Field:    "h",
		Function: FunctionCategorical,
		Domain:   []string{"Poor", "Fair", "Good"},
		Range:    []string{"#F44336", "#FFC107", "#4CAF50"},
	}

	first, err := r.Resolve(FillColor, map[string]any{"h": "Good"}, rule)
	if err != nil {
		t.Fatal(err)
	}
	if n := r.CachedScales(); n != 1 {
		t.Fatalf("cache has %d entries after first resolve, want 1", n)
	}

	second, err := r.Resolve(FillColor, map[string]any{"h": "Good"}, rule)
	if err != nil {
		t.Fatal(err)
	}
	if n := r.CachedScales(); n != 1 {
		t.Fatalf("cache grew to %d entries on a repeat rule, want 1", n)
	}
	if first != second {
		t.Fatalf("repeat resolve returned %v, want %v", second, first)
	}
}

func TestResolve_MutatedRuleIsNotServedStaleScale(t *testing.T) {
	r := NewResolver()
	rule := Rule{
		Computed: true,
		Field:    "f",
		Function: FunctionCategorical,
		Domain:   []string{"A"},
		Range:    []string{"#ffffff"},
	}
	row := map[string]any{"f": "A"}

	v, err := r.Resolve(FillColor, row, rule)
	if err != nil {
		t.Fatal(err)
	}
	if got := v.String(); got != "#ffffff" {
		t.Fatalf("before edit: %q", got)
	}

	// Edit the range in place. Structural keying must yield the new value.
	rule.Range[0] = "#000000"
	v, err = r.Resolve(FillColor, row, rule)
	if err != nil {
		t.Fatal(err)
	}
	if got := v.String(); got != "#000000" {
		t.Fatalf("after edit: %q, want #000000", got)
	}

	r.Reset()
	if n := r.CachedScales(); n != 0 {
		t.Fatalf("cache has %d entries after Reset, want 0", n)
	}
}

func TestResolve_HealthScenario(t *testing.T) {
	r := NewResolver()
	rule := Rule{
		Computed: true,
		Field:    "h",
		Function: FunctionCategorical,
		Domain:   []string{"Poor", "Fair", "Good"},
		Range:    []string{"#F44336", "#FFC107", "#4CAF50"},
	}

	rows := []map[string]any{{"h": "Good"}, {"h": "Poor"}, {"h": "Fair"}}
	want := []string{"#4caf50", "#f44336", "#ffc107"}

	for i, row := range rows {
		v, err := r.Resolve(FillColor, row, rule)
		if err != nil {
			t.Fatal(err)
		}
		if got := v.String(); got != want[i] {
			t.Fatalf("row %d resolved to %q, want %q", i, got, want[i])
		}
	}
}
