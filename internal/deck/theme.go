// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package deck turns AI-generated slide content into a styled presentation.
// It owns the theme palettes, the layout dispatch table, the text styling
// rules, and the assembly of the final PPTX byte stream.
package deck

import "fmt"

// RGB is an 8-bit-per-channel color.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as an uppercase RRGGBB string (no leading #),
// the form OOXML expects.
func (c RGB) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

var white = RGB{255, 255, 255}

// Theme is a named fixed palette applied uniformly across a deck.
// GradientStart/End paint the slide background; TextPrimary/TextSecondary
// drive the title-slide styling path. Main, Accent, Subtle and Text are the
// readability tones consumed by ReadableStyles.
type Theme struct {
	Name          string
	GradientStart RGB
	GradientEnd   RGB
	TextPrimary   RGB
	TextSecondary RGB
	Background    RGB

	Main   RGB // dark-background title tone is Accent, light-background title tone is Main
	Accent RGB
	Subtle RGB // the background tone the luminance rule is computed over
	Text   RGB // light-background body tone
}

// DefaultThemeName is used when an unknown theme tag is requested.
const DefaultThemeName = "Professional Blue"

// themes is the closed set of named palettes.
var themes = map[string]Theme{
	"Professional Blue": {
		Name:          "Professional Blue",
		GradientStart: RGB{41, 128, 185},
		GradientEnd:   RGB{109, 213, 250},
		TextPrimary:   RGB{33, 47, 61},
		TextSecondary: RGB{52, 152, 219},
		Background:    RGB{240, 248, 255},
		Main:          RGB{41, 128, 185},
		Accent:        RGB{109, 213, 250},
		Subtle:        RGB{240, 248, 255},
		Text:          RGB{33, 47, 61},
	},
	"Modern Minimalist": {
		Name:          "Modern Minimalist",
		GradientStart: RGB{55, 59, 68},
		GradientEnd:   RGB{66, 134, 244},
		TextPrimary:   RGB{28, 28, 30},
		TextSecondary: RGB{108, 117, 125},
		Background:    RGB{248, 249, 250},
		Main:          RGB{55, 59, 68},
		Accent:        RGB{66, 134, 244},
		Subtle:        RGB{248, 249, 250},
		Text:          RGB{28, 28, 30},
	},
	"Tech Gradient": {
		Name:          "Tech Gradient",
		GradientStart: RGB{25, 32, 50},
		GradientEnd:   RGB{106, 130, 251},
		TextPrimary:   RGB{255, 255, 255},
		TextSecondary: RGB{173, 181, 189},
		Background:    RGB{33, 37, 41},
		Main:          RGB{25, 32, 50},
		Accent:        RGB{106, 130, 251},
		Subtle:        RGB{33, 37, 41},
		Text:          RGB{255, 255, 255},
	},
}

// ThemeByName returns the palette for a theme tag. Unknown names fall back
// to the default theme; the second return reports whether the tag matched.
func ThemeByName(name string) (Theme, bool) {
	if t, ok := themes[name]; ok {
		return t, true
	}
	return themes[DefaultThemeName], false
}

// ThemeNames returns the available theme tags for form rendering.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	return names
}
