// Package style implements the data-driven styling engine: declarative
// per-property rules (constant or computed from a row field) resolved into
// concrete visual values via categorical, interval, or linear scales.
package style

// Kind is the semantic type of a style property's value.
type Kind int

const (
	KindColor Kind = iota
	KindNumber
)

// Property is one of the fixed visual properties a style rule can target.
type Property string

const (
	FillColor     Property = "fillColor"
	FillOpacity   Property = "fillOpacity"
	StrokeColor   Property = "strokeColor"
	StrokeOpacity Property = "strokeOpacity"
	StrokeWeight  Property = "strokeWeight"
	CircleRadius  Property = "circleRadius"
)

// Properties lists every style property in composition order.
var Properties = []Property{
	FillColor,
	FillOpacity,
	StrokeColor,
	StrokeOpacity,
	StrokeWeight,
	CircleRadius,
}

type propertySpec struct {
	kind Kind
	doc  string
	def  Value
}

var propertySpecs = map[Property]propertySpec{
	FillColor:     {KindColor, "Interior color of polygons and point markers", colorValue(RGB{0x33, 0x88, 0xff})},
	FillOpacity:   {KindNumber, "Interior opacity (0-1)", numberValue(0.7)},
	StrokeColor:   {KindColor, "Outline color", colorValue(RGB{0x22, 0x66, 0xcc})},
	StrokeOpacity: {KindNumber, "Outline opacity (0-1)", numberValue(1)},
	StrokeWeight:  {KindNumber, "Outline width in pixels", numberValue(2)},
	CircleRadius:  {KindNumber, "Point marker radius in pixels", numberValue(5)},
}

// Known reports whether p is one of the defined style properties.
func (p Property) Known() bool {
	_, ok := propertySpecs[p]
	return ok
}

// Kind returns the semantic type of the property's values.
func (p Property) Kind() Kind {
	return propertySpecs[p].kind
}

// Doc returns the human-readable description of the property.
func (p Property) Doc() string {
	return propertySpecs[p].doc
}

// Default returns the built-in fallback value used whenever a rule is
// missing, incomplete, or maps an input outside its domain.
func (p Property) Default() Value {
	return propertySpecs[p].def
}

// Parse converts a raw row or rule value into the property's typed value.
// Colors are normalized to canonical #rrggbb form; numbers accept native
// numeric types and numeric strings.
func (p Property) Parse(raw any) (Value, bool) {
	switch p.Kind() {
	case KindColor:
		s, ok := toString(raw)
		if !ok {
			return Value{}, false
		}
		c, ok := ParseColor(s)
		if !ok {
			return Value{}, false
		}
		return colorValue(c), true
	default:
		n, ok := toNumber(raw)
		if !ok {
			return Value{}, false
		}
		return numberValue(n), true
	}
}
