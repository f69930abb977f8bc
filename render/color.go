package render

import (
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// parseColor reads "#rgb", "#rrggbb" or an SVG color name and applies alpha
// in [0, 1]. Empty, "none" and unknown values give a transparent color.
func parseColor(s string, alpha float64) color.RGBA {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "none" || alpha <= 0 {
		return color.RGBA{}
	}

	var c color.RGBA
	switch {
	case strings.HasPrefix(s, "#"):
		hex := s[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return color.RGBA{}
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}
		}
		c = color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
	default:
		named, ok := colornames.Map[s]
		if !ok {
			return color.RGBA{}
		}
		c = named
	}

	if alpha >= 1 {
		return c
	}
	// color.RGBA is alpha-premultiplied
	a := alpha
	return color.RGBA{
		R: uint8(float64(c.R)*a + 0.5),
		G: uint8(float64(c.G)*a + 0.5),
		B: uint8(float64(c.B)*a + 0.5),
		A: uint8(255*a + 0.5),
	}
}
