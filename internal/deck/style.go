// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package deck

import "strings"

const (
	// maxBodyChars is the display cutoff for slide body text.
	maxBodyChars = 500
	ellipsis     = "..."

	// luminanceThreshold separates light from dark backgrounds.
	// The comparison is strict: a luminance of exactly 128 counts as dark
	// background and selects light text.
	luminanceThreshold = 128

	titleSizePt = 32
	bodySizePt  = 18

	// Title-slide path sizes.
	heroTitleSizePt = 36
	subtitleSizePt  = 20
)

// TextStyle describes how a run of slide text is rendered.
type TextStyle struct {
	Color RGB
	Size  int // points
	Bold  bool
	Align string // "ctr" or "l"
}

// Luminance computes perceived brightness of a color using the
// ITU-R BT.601 weights.
func Luminance(c RGB) float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// ReadableStyles picks title and body text styles against the theme's
// subtle background tone. Bright backgrounds get dark text (title in the
// main tone, body in the text tone); dark backgrounds get light text
// (white body, accent title).
func ReadableStyles(t Theme) (title, body TextStyle) {
	if Luminance(t.Subtle) > luminanceThreshold {
		title = TextStyle{Color: t.Main, Size: titleSizePt, Bold: true, Align: "ctr"}
		body = TextStyle{Color: t.Text, Size: bodySizePt, Align: "l"}
		return title, body
	}
	title = TextStyle{Color: t.Accent, Size: titleSizePt, Bold: true, Align: "ctr"}
	body = TextStyle{Color: white, Size: bodySizePt, Align: "l"}
	return title, body
}

// heroStyles returns the title-slide styling: a large bold centered title
// in the primary tone with a smaller subtitle in the secondary tone.
func heroStyles(t Theme) (title, subtitle TextStyle) {
	title = TextStyle{Color: t.TextPrimary, Size: heroTitleSizePt, Bold: true, Align: "ctr"}
	subtitle = TextStyle{Color: t.TextSecondary, Size: subtitleSizePt, Align: "ctr"}
	return title, subtitle
}

// TruncateBody trims body text to the display cutoff, appending an
// ellipsis marker. Text at or under the cutoff passes through unchanged.
// The cutoff counts characters, not bytes.
func TruncateBody(s string) string {
	r := []rune(s)
	if len(r) <= maxBodyChars {
		return s
	}
	return string(r[:maxBodyChars]) + ellipsis
}

// orDefault returns fallback when s is empty or whitespace.
func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
