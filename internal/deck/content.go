// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package deck

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SlideContent is one structured unit of generated content mapped to one
// visual slide. Every field may be absent in the provider's response and
// is defaulted at build time.
type SlideContent struct {
	Title            string `json:"title"`
	Content          string `json:"content"`
	Type             string `json:"type"`
	ImageDescription string `json:"image_description,omitempty"`
	LayoutNote       string `json:"layout_note,omitempty"`
}

// Content is the parsed result of a text-generation call: a deck title
// plus an ordered sequence of slide records.
type Content struct {
	Title  string         `json:"title"`
	Slides []SlideContent `json:"slides"`
}

// Default strings applied when the provider omits required fields.
const (
	DefaultDeckTitle  = "AI-Generated Presentation"
	DefaultSubtitle   = "AI-Powered Presentation"
	DefaultSlideTitle = "Untitled Slide"
	DefaultSlideBody  = "No content available"
)

// SystemPrompt sets the model's role for deck content generation.
const SystemPrompt = "You are a presentation designer. " +
	"Always respond with a single JSON object and nothing else."

// BuildPrompt assembles the user prompt sent to the text provider,
// embedding the JSON shape the parser expects.
func BuildPrompt(topic, notes string, slideCount int, style string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a professional, visually striking presentation on: %s\n", topic)
	if strings.TrimSpace(notes) != "" {
		fmt.Fprintf(&b, "Additional information: %s\n", notes)
	}
	fmt.Fprintf(&b, "Style: %s\n", style)
	fmt.Fprintf(&b, "Number of slides: %d\n\n", slideCount)

	b.WriteString(`Format the response as JSON with this structure:
{
  "title": "Main presentation title (short, impactful, max 5-7 words)",
  "slides": [
    {
      "title": "Slide title (clear, concise, engaging)",
      "content": "Slide content in brief bullet points (25-40 words max per bullet)",
      "type": "title_slide/content_slide/section_slide/two_content_slide",
      "image_description": "Description for generating an image related to this slide",
      "layout_note": "Brief design suggestion for this slide (optional)"
    }
  ]
}

For best results:
- Vary slide types for visual interest
- Keep headlines to 6-8 words and at most 5-6 bullet points per slide
- Keep content slides focused on 1 key message per slide
- End with a clear, actionable conclusion slide
`)

	return b.String()
}

// ExtractJSON pulls the JSON payload out of a provider response that may
// wrap it in a fenced code block. A json-tagged fence wins over a plain
// fence; with no fence at all the raw text is returned trimmed.
func ExtractJSON(raw string) string {
	if _, after, ok := strings.Cut(raw, "```json"); ok {
		if inner, _, ok := strings.Cut(after, "```"); ok {
			return strings.TrimSpace(inner)
		}
		return strings.TrimSpace(after)
	}
	if _, after, ok := strings.Cut(raw, "```"); ok {
		if inner, _, ok := strings.Cut(after, "```"); ok {
			return strings.TrimSpace(inner)
		}
		return strings.TrimSpace(after)
	}
	return strings.TrimSpace(raw)
}

// ParseContent extracts and parses a provider response into Content.
// Callers must treat an error as "no content" and fall back to
// PlaceholderContent rather than failing the whole flow.
func ParseContent(raw string) (*Content, error) {
	payload := ExtractJSON(raw)
	if payload == "" {
		return nil, fmt.Errorf("deck: empty response")
	}

	var c Content
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		return nil, fmt.Errorf("deck: parse content: %w", err)
	}
	return &c, nil
}

// PlaceholderContent is the single-slide fallback used when generation
// fails or the provider returns no slides.
func PlaceholderContent() *Content {
	return &Content{
		Title: DefaultDeckTitle,
		Slides: []SlideContent{{
			Title:   "Default Slide",
			Content: "No content was generated. Please try again.",
			Type:    "content_slide",
		}},
	}
}
