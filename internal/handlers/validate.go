package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for generation inputs.
const (
	maxTopicLen  = 300
	maxNotesLen  = 2_000
	maxPromptLen = 2_000
	maxStyleLen  = 100

	minSlides     = 3
	maxSlides     = 15
	defaultSlides = 5

	maxSamples = 4
)

// validateDeckRequest checks deck form inputs and returns the first error found.
func validateDeckRequest(topic, notes, style string) string {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "Topic is required."
	}
	if utf8.RuneCountInString(topic) > maxTopicLen {
		return "Topic is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(notes) > maxNotesLen {
		return "Notes are too long (max 2,000 characters)."
	}
	if utf8.RuneCountInString(style) > maxStyleLen {
		return "Style is too long (max 100 characters)."
	}
	return ""
}

// validateImageRequest checks image form inputs and returns the first error found.
func validateImageRequest(prompt, style string) string {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "Prompt is required."
	}
	if utf8.RuneCountInString(prompt) > maxPromptLen {
		return "Prompt is too long (max 2,000 characters)."
	}
	if utf8.RuneCountInString(style) > maxStyleLen {
		return "Style is too long (max 100 characters)."
	}
	return ""
}

// clampSlideCount bounds the requested slide count. Zero means "use the
// default"; out-of-range values are clamped, and the second return
// reports whether the request was adjusted.
func clampSlideCount(n int) (int, bool) {
	switch {
	case n == 0:
		return defaultSlides, false
	case n < minSlides:
		return minSlides, true
	case n > maxSlides:
		return maxSlides, true
	}
	return n, false
}

// clampSamples bounds the requested image count to a small range.
func clampSamples(n int) int {
	if n < 1 {
		return 1
	}
	if n > maxSamples {
		return maxSamples
	}
	return n
}
