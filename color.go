package haze

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var errEmptyColor = errors.New("empty color")

// HexString returns the color formatted as "#rrggbb". Alpha is dropped.
func (c Color) HexString() string {
	return fmt.Sprintf("#%06x", c.Hex())
}

// ParseColor parses a CSS color name ("lightblue"), "#rgb", "#rrggbb" or
// "0xrrggbb". The result is always opaque.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return Color{}, fmt.Errorf("parse color: %w", errEmptyColor)
	}

	if named, ok := colornames.Map[s]; ok {
		return Color{
			R: float64(named.R) / 255,
			G: float64(named.G) / 255,
			B: float64(named.B) / 255,
			A: 1,
		}, nil
	}

	digits := s
	switch {
	case strings.HasPrefix(digits, "#"):
		digits = digits[1:]
	case strings.HasPrefix(digits, "0x"):
		digits = digits[2:]
	}

	if len(digits) == 3 {
		digits = string([]byte{
			digits[0], digits[0],
			digits[1], digits[1],
			digits[2], digits[2],
		})
	}
	if len(digits) != 6 {
		return Color{}, fmt.Errorf("parse color %q: want 3 or 6 hex digits or a CSS name", s)
	}

	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return HexColor(uint32(v)), nil
}

// MustParseColor is like ParseColor but panics on error. Intended for
// package-level defaults and examples.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
