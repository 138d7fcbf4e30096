// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package markdown

import (
	"strings"
	"testing"
)

func TestToHTMLBulletList(t *testing.T) {
	html, err := ToHTML("- first point\n- second point")
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if !strings.Contains(html, "<ul>") || !strings.Contains(html, "<li>first point</li>") {
		t.Errorf("bullet list not rendered: %q", html)
	}
}

func TestToHTMLEscapesRawHTML(t *testing.T) {
	html, err := ToHTML(`hello <script>alert(1)</script>`)
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Errorf("raw HTML passed through: %q", html)
	}
}

func TestToHTMLTable(t *testing.T) {
	html, err := ToHTML("| a | b |\n|---|---|\n| 1 | 2 |")
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if !strings.Contains(html, "<table>") {
		t.Errorf("GFM table not rendered: %q", html)
	}
}
