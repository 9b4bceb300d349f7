package style

import "testing"

func TestParseColor_Normalization(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"#fff", "#ffffff", true},
		{"#FFF", "#ffffff", true},
		{"#4CAF50", "#4caf50", true},
		{" #4caf50 ", "#4caf50", true},
		{"rgb(255, 0, 128)", "#ff0080", true},
		{"red", "#ff0000", true},
		{"", "", false},
		{"#12345", "", false},
		{"rgb(300,0,0)", "", false},
		{"not-a-color", "", false},
	}
	for _, tc := range cases {
		c, ok := ParseColor(tc.in)
		if ok != tc.ok {
			t.Fatalf("ParseColor(%q) ok=%v, want %v", tc.in, ok, tc.ok)
		}
		if ok && c.Hex() != tc.want {
			t.Fatalf("ParseColor(%q)=%q, want %q", tc.in, c.Hex(), tc.want)
		}
	}
}

func TestPropertyParse_NumberCoercion(t *testing.T) {
	cases := []struct {
		in   any
		want float64
		ok   bool
	}{
		{"3.5", 3.5, true},
		{" 42 ", 42, true},
		{7, 7, true},
		{int64(7), 7, true},
		{float32(2), 2, true},
		{[]byte("1.25"), 1.25, true},
		{"abc", 0, false},
		{nil, 0, false},
	}
	for _, tc := range cases {
		v, ok := StrokeWeight.Parse(tc.in)
		if ok != tc.ok {
			t.Fatalf("Parse(%v) ok=%v, want %v", tc.in, ok, tc.ok)
		}
		if ok && v.Number != tc.want {
			t.Fatalf("Parse(%v)=%v, want %v", tc.in, v.Number, tc.want)
		}
	}
}

func TestPropertyDefaults(t *testing.T) {
	if got, want := FillColor.Default().String(), "#3388ff"; got != want {
		t.Fatalf("fill default %q, want %q", got, want)
	}
	if got := FillOpacity.Default().Number; got != 0.7 {
		t.Fatalf("fill opacity default %v, want 0.7", got)
	}
	for _, p := range Properties {
		if !p.Known() {
			t.Fatalf("%s not known", p)
		}
		if p.Doc() == "" {
			t.Fatalf("%s has no description", p)
		}
	}
}

func TestRuleStatus(t *testing.T) {
	cases := []struct {
		rule Rule
		want Status
	}{
		{Rule{}, StatusNone},
		{Rule{Value: "#fff"}, StatusGlobal},
		{Rule{Computed: true}, StatusNone},
		{Rule{Computed: true, Function: FunctionLinear}, StatusComputed},
		{Rule{Computed: true, Value: "#fff"}, StatusNone},
	}
	for _, tc := range cases {
		if got := tc.rule.Status(); got != tc.want {
			t.Fatalf("Status(%+v)=%v, want %v", tc.rule, got, tc.want)
		}
	}
}
