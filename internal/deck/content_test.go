// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package deck

import (
	"strings"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	payload := `{"title":"T","slides":[]}`
	cases := []struct {
		name string
		raw  string
	}{
		{"raw", payload},
		{"raw with whitespace", "\n  " + payload + "  \n"},
		{"json fence", "```json\n" + payload + "\n```"},
		{"plain fence", "```\n" + payload + "\n```"},
		{"fence with prose", "Here you go:\n```json\n" + payload + "\n```\nEnjoy!"},
		{"unclosed json fence", "```json\n" + payload},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractJSON(tc.raw); got != payload {
				t.Errorf("ExtractJSON = %q, want %q", got, payload)
			}
		})
	}
}

func TestParseContent(t *testing.T) {
	raw := "```json\n{\"title\":\"Q1 Review\",\"slides\":[{\"title\":\"Intro\",\"content\":\"Hello\",\"type\":\"title_slide\"}]}\n```"
	c, err := ParseContent(raw)
	if err != nil {
		t.Fatalf("ParseContent: %v", err)
	}
	if c.Title != "Q1 Review" {
		t.Errorf("title = %q", c.Title)
	}
	if len(c.Slides) != 1 {
		t.Fatalf("got %d slides, want 1", len(c.Slides))
	}
	s := c.Slides[0]
	if s.Title != "Intro" || s.Content != "Hello" || s.Type != "title_slide" {
		t.Errorf("slide = %+v", s)
	}
}

func TestParseContentErrors(t *testing.T) {
	for _, raw := range []string{"", "   ", "not json at all", "```json\nnope\n```"} {
		if _, err := ParseContent(raw); err == nil {
			t.Errorf("ParseContent(%q): expected error", raw)
		}
	}
}

func TestPlaceholderContent(t *testing.T) {
	c := PlaceholderContent()
	if c.Title != DefaultDeckTitle {
		t.Errorf("title = %q", c.Title)
	}
	if len(c.Slides) != 1 {
		t.Fatalf("got %d slides, want 1", len(c.Slides))
	}
	if c.Slides[0].Type != "content_slide" {
		t.Errorf("type = %q", c.Slides[0].Type)
	}
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt("Go concurrency", "cover channels", 7, "technical")
	for _, want := range []string{
		"Go concurrency",
		"Additional information: cover channels",
		"Style: technical",
		"Number of slides: 7",
		`"slides"`,
		"title_slide/content_slide/section_slide/two_content_slide",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	p = BuildPrompt("Go concurrency", "  ", 5, "casual")
	if strings.Contains(p, "Additional information") {
		t.Error("blank notes should be omitted from the prompt")
	}
}
