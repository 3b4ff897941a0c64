package export

import (
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var black = color.RGBA{A: 0xff}

// ParseColor understands CSS colour names, #rgb, #rrggbb and rgb(r, g, b).
// Anything else renders black.
func ParseColor(s string) color.RGBA {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return black
	}

	if c, ok := colornames.Map[s]; ok {
		return c
	}

	if hex, ok := strings.CutPrefix(s, "#"); ok {
		if c, ok := parseHex(hex); ok {
			return c
		}
		return black
	}

	if args, ok := strings.CutPrefix(s, "rgb("); ok {
		if c, ok := parseRGB(strings.TrimSuffix(args, ")")); ok {
			return c
		}
	}

	return black
}

func parseHex(hex string) (color.RGBA, bool) {
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, true
}

func parseRGB(args string) (color.RGBA, bool) {
	parts := strings.Split(args, ",")
	if len(parts) != 3 {
		return color.RGBA{}, false
	}
	var rgb [3]uint8
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 255 {
			return color.RGBA{}, false
		}
		rgb[i] = uint8(n)
	}
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xff}, true
}
