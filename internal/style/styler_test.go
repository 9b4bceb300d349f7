package style

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/rs/zerolog"

	"github.com/geovizlabs/geoviz/internal/feature"
)

func testFeature(props map[string]any) feature.Feature {
	return feature.Feature{Geometry: orb.Point{11.97, 57.71}, Properties: props}
}

func TestStyleFeatures_ComposesAllSixProperties(t *testing.T) {
	s := NewStyler(zerolog.Nop())
	rules := RuleSet{
		FillColor:     {Value: "#ff0000"},
		FillOpacity:   {Value: "0.5"},
		StrokeColor:   {Value: "#00ff00"},
		StrokeOpacity: {Value: "1"},
		StrokeWeight:  {Value: "3"},
		CircleRadius:  {Value: "9"},
	}

	attrs, err := s.StyleFeatures([]feature.Feature{testFeature(nil)}, rules)
	if err != nil {
		t.Fatal(err)
	}
	if len(attrs) != 1 {
		t.Fatalf("got %d bundles, want 1", len(attrs))
	}

	a := attrs[0]
	if a.Fill != [4]uint8{255, 0, 0, 128} {
		t.Fatalf("fill=%v", a.Fill)
	}
	if a.Stroke != [4]uint8{0, 255, 0, 255} {
		t.Fatalf("stroke=%v", a.Stroke)
	}
	if a.StrokeWidth != 3 {
		t.Fatalf("strokeWidth=%v", a.StrokeWidth)
	}
	if a.Radius != 9 {
		t.Fatalf("radius=%v", a.Radius)
	}
}

func TestStyleFeatures_AlphaClampsAtFullOpacity(t *testing.T) {
	s := NewStyler(zerolog.Nop())
	attrs, err := s.StyleFeatures([]feature.Feature{testFeature(nil)}, RuleSet{
		FillOpacity: {Value: "1.0"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if attrs[0].Fill[3] != 255 {
		t.Fatalf("alpha=%d, want 255", attrs[0].Fill[3])
	}
}

func TestStyleFeatures_MissingRulesUseDefaults(t *testing.T) {
	s := NewStyler(zerolog.Nop())
	attrs, err := s.StyleFeatures([]feature.Feature{testFeature(nil)}, nil)
	if err != nil {
		t.Fatal(err)
	}

	a := attrs[0]
	def := FillColor.Default().Color
	if a.Fill != [4]uint8{def.R, def.G, def.B, alphaChannel(FillOpacity.Default().Number)} {
		t.Fatalf("fill=%v, want defaults", a.Fill)
	}
	if a.Radius != CircleRadius.Default().Number {
		t.Fatalf("radius=%v, want default", a.Radius)
	}
}

func TestStyleFeatures_DataDrivenPerFeature(t *testing.T) {
	s := NewStyler(zerolog.Nop())
	rules := RuleSet{
		FillColor: {
			Computed: true,
			Field:    "h",
			Function: FunctionCategorical,
			Domain:   []string{"Poor", "Fair", "Good"},
			Range:    []string{"#F44336", "#FFC107", "#4CAF50"},
		},
	}

	feats := []feature.Feature{
		testFeature(map[string]any{"h": "Good"}),
		testFeature(map[string]any{"h": "Poor"}),
		testFeature(map[string]any{"h": "Fair"}),
	}
	attrs, err := s.StyleFeatures(feats, rules)
	if err != nil {
		t.Fatal(err)
	}

	want := [][3]uint8{{0x4c, 0xaf, 0x50}, {0xf4, 0x43, 0x36}, {0xff, 0xc1, 0x07}}
	for i, a := range attrs {
		if [3]uint8{a.Fill[0], a.Fill[1], a.Fill[2]} != want[i] {
			t.Fatalf("feature %d fill=%v, want %v", i, a.Fill, want[i])
		}
	}
	// One rule, three features: the scale is built once.
	if n := s.Resolver().CachedScales(); n != 1 {
		t.Fatalf("cached scales=%d, want 1", n)
	}
}

func TestStyleFeatures_UnknownFunctionAbortsPass(t *testing.T) {
	s := NewStyler(zerolog.Nop())
	_, err := s.StyleFeatures([]feature.Feature{testFeature(nil)}, RuleSet{
		FillColor: {Computed: true, Field: "f", Function: "exponential"},
	})
	if err == nil {
		t.Fatal("want error for unknown function")
	}
}

func TestIcon_CacheReturnsSameImageForSameTriple(t *testing.T) {
	s := NewStyler(zerolog.Nop())
	red := RGB{0xff, 0, 0}

	a := s.Icon(6, red, 0.8)
	b := s.Icon(6, red, 0.8)
	if a != b {
		t.Fatal("identical (radius, color, opacity) must share one image")
	}

	c := s.Icon(7, red, 0.8)
	if a == c {
		t.Fatal("different radius must produce a distinct image")
	}

	bounds := a.Bounds()
	if bounds.Dx() < 12 || bounds.Dy() < 12 {
		t.Fatalf("icon bounds %v too small for radius 6", bounds)
	}
	center := a.RGBAAt(bounds.Dx()/2, bounds.Dy()/2)
	if center.R != 0xff || center.A == 0 {
		t.Fatalf("center pixel %v, want opaque red", center)
	}
}
