// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package deck

// Layout identifies the visual slide template a slide record maps to.
type Layout int

const (
	LayoutTitle Layout = iota
	LayoutContent
	LayoutSection
	LayoutTwoContent
)

// String returns the layout's type tag.
func (l Layout) String() string {
	switch l {
	case LayoutTitle:
		return "title_slide"
	case LayoutContent:
		return "content_slide"
	case LayoutSection:
		return "section_slide"
	case LayoutTwoContent:
		return "two_content_slide"
	}
	return "content_slide"
}

// layouts is the closed dispatch table from slide type tag to layout.
var layouts = map[string]Layout{
	"title_slide":       LayoutTitle,
	"content_slide":     LayoutContent,
	"section_slide":     LayoutSection,
	"two_content_slide": LayoutTwoContent,
}

// LayoutForType resolves a slide type tag to a layout. Unknown tags fall
// back to the content layout; the second return reports whether the tag
// was recognised so callers can log a warning instead of mis-rendering
// silently.
func LayoutForType(tag string) (Layout, bool) {
	if l, ok := layouts[tag]; ok {
		return l, true
	}
	return LayoutContent, false
}
