package pdf

import (
	"strconv"
	"strings"

	ierr "github.com/factuurdesk/factuurdesk/internal/errors"
	"github.com/factuurdesk/factuurdesk/internal/types"
)

// Theme holds the palette of a document
type Theme struct {
	Brand  Color
	Text   Color
	Muted  Color
	Border Color
	Panel  Color
	RowAlt Color
	Danger Color
	White  Color
}

var defaultBrand = Color{R: 30, G: 58, B: 138}

// DefaultTheme is the palette used when the company has no brand colour
func DefaultTheme() Theme {
	return Theme{
		Brand:  defaultBrand,
		Text:   Color{R: 31, G: 41, B: 55},
		Muted:  Color{R: 107, G: 114, B: 128},
		Border: Color{R: 209, G: 213, B: 219},
		Panel:  Color{R: 243, G: 244, B: 246},
		RowAlt: Color{R: 249, G: 250, B: 251},
		Danger: Color{R: 185, G: 28, B: 28},
		White:  Color{R: 255, G: 255, B: 255},
	}
}

// WithBrand replaces the brand colour, keeping the default on an invalid value
func (t Theme) WithBrand(hex string) Theme {
	if c, err := ParseHexColor(hex); err == nil {
		t.Brand = c
	}
	return t
}

// ParseHexColor reads "#RRGGBB" or "#RGB"
func ParseHexColor(hex string) (Color, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return Color{}, ierr.NewErrorf("invalid colour %q", hex).
			WithHint("Colour must be a hex value like #1E3A8A").
			Mark(ierr.ErrValidation)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, ierr.WithError(err).
			WithHintf("Colour %q is not a hex value", hex).
			Mark(ierr.ErrValidation)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// BadgeColors is the background and foreground of a status badge
type BadgeColors struct {
	Background Color
	Foreground Color
}

var badgePalette = map[types.BadgeTone]BadgeColors{
	types.BadgeToneGreen:       {Background: Color{220, 252, 231}, Foreground: Color{22, 101, 52}},
	types.BadgeToneRed:         {Background: Color{254, 226, 226}, Foreground: Color{153, 27, 27}},
	types.BadgeToneBlue:        {Background: Color{219, 234, 254}, Foreground: Color{30, 64, 175}},
	types.BadgeTonePurple:      {Background: Color{243, 232, 255}, Foreground: Color{107, 33, 168}},
	types.BadgeToneGray:        {Background: Color{243, 244, 246}, Foreground: Color{55, 65, 81}},
	types.BadgeToneNeutralGray: {Background: Color{229, 231, 235}, Foreground: Color{75, 85, 99}},
	types.BadgeToneOrange:      {Background: Color{255, 237, 213}, Foreground: Color{154, 52, 18}},
}

// BadgeColorsFor returns the palette of a tone, gray for an unknown tone
func BadgeColorsFor(tone types.BadgeTone) BadgeColors {
	if c, ok := badgePalette[tone]; ok {
		return c
	}
	return badgePalette[types.BadgeToneGray]
}
