package imaging

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var namedColors = map[string]string{
	"black": "#000000",
	"white": "#ffffff",
	"gray":  "#808080",
	"grey":  "#808080",
}

// ParseColor parses a fill color given as "#RRGGBB", "#RGB" or one of the
// names black, white and gray. The result is always opaque.
func ParseColor(s string) (color.NRGBA, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if named, ok := namedColors[v]; ok {
		v = named
	}
	if v != "" && v[0] != '#' {
		v = "#" + v
	}
	if len(v) != 4 && len(v) != 7 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: want #RGB or #RRGGBB", s)
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// Hex formats c as "#rrggbb". Alpha is ignored; a nil color formats as black.
func Hex(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = 255
	cf, _ := colorful.MakeColor(n)
	return cf.Hex()
}
