package pdfexport

import (
	"fmt"
	"regexp"
	"strconv"
)

var hexColor = regexp.MustCompile(`^#?([0-9a-fA-F]{6})$`)

// ParseHexColor parses "#RRGGBB" (the leading # is optional).
func ParseHexColor(s string) (RGB, error) {
	m := hexColor.FindStringSubmatch(s)
	if m == nil {
		return RGB{}, fmt.Errorf("invalid hex colour %q", s)
	}
	v, _ := strconv.ParseUint(m[1], 16, 32)
	return RGB{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}, nil
}

// ColorOr parses s, returning fallback when s is empty or malformed.
func ColorOr(s string, fallback RGB) RGB {
	if s == "" {
		return fallback
	}
	c, err := ParseHexColor(s)
	if err != nil {
		return fallback
	}
	return c
}

// Hex formats c as "#RRGGBB".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
