// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imagegen produces raster images from text prompts. It calls a
// Stability-style generation API when a credential is configured and
// degrades to a public placeholder image service when it is not, or when
// the API call fails.
package imagegen

// Size is a width/height pair in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DefaultSize is the square fallback used for unsupported dimensions.
var DefaultSize = Size{1024, 1024}

// allowedSizes is the fixed whitelist of aspect ratios the SDXL
// generation engines accept.
var allowedSizes = map[Size]bool{
	{1024, 1024}: true,
	{1152, 896}:  true,
	{896, 1152}:  true,
	{1216, 832}:  true,
	{832, 1216}:  true,
	{1344, 768}:  true,
	{768, 1344}:  true,
	{1536, 640}:  true,
	{640, 1536}:  true,
}

// NormalizeSize validates a requested size against the whitelist.
// Unsupported pairs are replaced with the default square size; the
// second return reports whether the requested pair was accepted.
func NormalizeSize(width, height int) (Size, bool) {
	s := Size{width, height}
	if allowedSizes[s] {
		return s, true
	}
	return DefaultSize, false
}

// SupportedSizes lists the whitelist for form rendering.
func SupportedSizes() []Size {
	sizes := make([]Size, 0, len(allowedSizes))
	for s := range allowedSizes {
		sizes = append(sizes, s)
	}
	return sizes
}

// Orientation labels a size by comparing width and height.
func Orientation(s Size) string {
	switch {
	case s.Width > s.Height:
		return "landscape"
	case s.Height > s.Width:
		return "portrait"
	}
	return "square"
}

// Quality tags and their diffusion step counts.
const (
	QualityStandard = "Standard"
	QualityHD       = "HD"
	QualityUltraHD  = "Ultra HD"
)

// StepsForQuality maps a quality tag to a step count. Unknown tags get
// the standard count.
func StepsForQuality(quality string) int {
	switch quality {
	case QualityHD:
		return 30
	case QualityUltraHD:
		return 50
	}
	return 20
}

// ClampCfg bounds the prompt-adherence scale to the API's accepted range.
func ClampCfg(v float64) float64 {
	if v < 1 {
		return 1
	}
	if v > 20 {
		return 20
	}
	return v
}
