package style

import (
	"image"
	"math"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"github.com/geovizlabs/geoviz/internal/feature"
	"github.com/geovizlabs/geoviz/internal/observability"
)

// RuleSet maps each style property to its rule. Missing entries behave as
// empty rules, which resolve to the property defaults.
type RuleSet map[Property]Rule

// Attributes is the flat per-feature render bundle handed to the sink.
// Colors carry their opacity as a fourth 0-255 alpha channel.
type Attributes struct {
	Fill        [4]uint8 `json:"fill" doc:"Fill color as [r,g,b,a]"`
	Stroke      [4]uint8 `json:"stroke" doc:"Stroke color as [r,g,b,a]"`
	StrokeWidth float64  `json:"strokeWidth" doc:"Stroke width in pixels"`
	Radius      float64  `json:"radius" doc:"Point marker radius in pixels"`
}

// Styler applies a rule set across features to produce render attributes.
// It owns the scale cache (one resolver) and the icon cache; both are
// scoped to the styler instance rather than ambient globals.
type Styler struct {
	resolver *Resolver
	icons    *lru.Cache[iconKey, *image.RGBA]
	log      zerolog.Logger
}

// iconCacheSize bounds retained icons. The key space is bounded by the
// visible style gamut, not row count, so a small cache covers it.
const iconCacheSize = 256

// NewStyler creates a styler with empty caches.
func NewStyler(log zerolog.Logger) *Styler {
	icons, _ := lru.New[iconKey, *image.RGBA](iconCacheSize)
	return &Styler{
		resolver: NewResolver(),
		icons:    icons,
		log:      log.With().Str("component", "styler").Logger(),
	}
}

// Resolver exposes the styler's resolver for callers that resolve single
// values (style configuration previews).
func (s *Styler) Resolver() *Resolver {
	return s.resolver
}

// StyleFeatures resolves all six style properties for every feature and
// composes the results into per-feature attribute bundles. The scale cache
// is cleared up front, so edited rules always take effect. An unknown
// function name in any rule aborts the pass with an error; incomplete rules
// fall back to property defaults.
func (s *Styler) StyleFeatures(features []feature.Feature, rules RuleSet) ([]Attributes, error) {
	s.resolver.Reset()

	attrs := make([]Attributes, 0, len(features))
	for _, f := range features {
		a, err := s.styleOne(f.Properties, rules)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, a)
	}

	observability.AddFeaturesStyled(len(attrs))
	s.log.Debug().
		Int("features", len(attrs)).
		Int("scales", s.resolver.CachedScales()).
		Msg("style pass complete")
	return attrs, nil
}

func (s *Styler) styleOne(row map[string]any, rules RuleSet) (Attributes, error) {
	resolved := make(map[Property]Value, len(Properties))
	for _, p := range Properties {
		v, err := s.resolver.Resolve(p, row, rules[p])
		if err != nil {
			return Attributes{}, err
		}
		resolved[p] = v
	}

	return Attributes{
		Fill:        rgba(resolved[FillColor].Color, resolved[FillOpacity].Number),
		Stroke:      rgba(resolved[StrokeColor].Color, resolved[StrokeOpacity].Number),
		StrokeWidth: resolved[StrokeWeight].Number,
		Radius:      resolved[CircleRadius].Number,
	}, nil
}

// rgba composes a color and a 0-1 opacity into the renderer's native
// [r,g,b,a] form, clamping the alpha channel to the valid 8-bit range.
func rgba(c RGB, opacity float64) [4]uint8 {
	return [4]uint8{c.R, c.G, c.B, alphaChannel(opacity)}
}

func alphaChannel(opacity float64) uint8 {
	a := math.Round(opacity * 255)
	if a < 0 {
		return 0
	}
	if a > 255 {
		return 255
	}
	return uint8(a)
}
