package style

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RGB is a color resolved to its red/green/blue channels.
type RGB struct {
	R, G, B uint8
}

// Hex returns the canonical lowercase #rrggbb form of the color.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Value is a resolved style value: either a color or a number, depending on
// the property it was resolved for.
type Value struct {
	Kind   Kind
	Color  RGB
	Number float64
}

func colorValue(c RGB) Value { return Value{Kind: KindColor, Color: c} }

func numberValue(n float64) Value { return Value{Kind: KindNumber, Number: n} }

// String renders the value in its canonical text form: #rrggbb for colors,
// shortest decimal representation for numbers.
func (v Value) String() string {
	if v.Kind == KindColor {
		return v.Color.Hex()
	}
	return strconv.FormatFloat(v.Number, 'g', -1, 64)
}

// namedColors covers the CSS color names the configuration UI offers.
var namedColors = map[string]RGB{
	"black":   {0x00, 0x00, 0x00},
	"white":   {0xff, 0xff, 0xff},
	"red":     {0xff, 0x00, 0x00},
	"green":   {0x00, 0x80, 0x00},
	"blue":    {0x00, 0x00, 0xff},
	"yellow":  {0xff, 0xff, 0x00},
	"orange":  {0xff, 0xa5, 0x00},
	"purple":  {0x80, 0x00, 0x80},
	"gray":    {0x80, 0x80, 0x80},
	"grey":    {0x80, 0x80, 0x80},
	"cyan":    {0x00, 0xff, 0xff},
	"magenta": {0xff, 0x00, 0xff},
}

// ParseColor parses #rgb, #rrggbb, rgb(r,g,b), or a CSS color name.
func ParseColor(s string) (RGB, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return RGB{}, false
	}

	if c, ok := namedColors[s]; ok {
		return c, true
	}

	if strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")") {
		parts := strings.Split(s[4:len(s)-1], ",")
		if len(parts) != 3 {
			return RGB{}, false
		}
		var ch [3]uint8
		for i, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || n < 0 || n > 255 {
				return RGB{}, false
			}
			ch[i] = uint8(n)
		}
		return RGB{ch[0], ch[1], ch[2]}, true
	}

	if !strings.HasPrefix(s, "#") {
		return RGB{}, false
	}
	hex := s[1:]
	switch len(hex) {
	case 3:
		// #abc expands to #aabbcc
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return RGB{}, false
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, false
	}
	return RGB{uint8(n >> 16), uint8(n >> 8), uint8(n)}, true
}

// lerpColor interpolates per-channel in RGB space. t outside [0,1]
// extrapolates, clamped to the valid channel range.
func lerpColor(a, b RGB, t float64) RGB {
	return RGB{
		R: lerpChannel(a.R, b.R, t),
		G: lerpChannel(a.G, b.G, t),
		B: lerpChannel(a.B, b.B, t),
	}
}

func lerpChannel(a, b uint8, t float64) uint8 {
	v := math.Round(float64(a) + (float64(b)-float64(a))*t)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// toNumber coerces a raw row value to a float64.
func toNumber(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, !math.IsNaN(v)
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return n, err == nil
	case []byte:
		n, err := strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
		return n, err == nil
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// toString coerces a raw row value to its string form for categorical
// matching and color parsing.
func toString(raw any) (string, bool) {
	switch v := raw.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case []byte:
		return string(v), true
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), true
	default:
		return fmt.Sprint(v), true
	}
}
