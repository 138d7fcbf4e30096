// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package deck

import (
	"log/slog"

	"slidesmith/internal/pptx"
)

// Builder assembles parsed content into a themed PPTX byte stream.
type Builder struct {
	log *slog.Logger
}

// NewBuilder creates a deck builder.
func NewBuilder(log *slog.Logger) *Builder {
	return &Builder{log: log}
}

// Build renders a title slide followed by one slide per content record.
// Missing fields are defaulted, body text is truncated to the display
// cutoff, and unknown theme or layout tags fall back with a warning
// instead of failing the build.
func (b *Builder) Build(c *Content, themeName string) ([]byte, error) {
	theme, matched := ThemeByName(themeName)
	if !matched {
		b.log.Warn("unknown theme, using default", "theme", themeName, "default", DefaultThemeName)
	}
	if c == nil || len(c.Slides) == 0 {
		b.log.Warn("no slides in content, using placeholder")
		c = PlaceholderContent()
	}

	w := pptx.NewWriter()
	b.addTitleSlide(w, theme, orDefault(c.Title, DefaultDeckTitle), DefaultSubtitle)

	for _, s := range c.Slides {
		layout, known := LayoutForType(s.Type)
		if !known {
			b.log.Warn("unknown slide type, using content layout", "type", s.Type)
		}

		title := orDefault(s.Title, DefaultSlideTitle)
		body := TruncateBody(orDefault(s.Content, DefaultSlideBody))

		if layout == LayoutTitle {
			b.addTitleSlide(w, theme, title, body)
			continue
		}
		b.addContentSlide(w, theme, layout, title, body)
	}

	return w.Bytes()
}

// addTitleSlide renders the hero layout: centered title over subtitle,
// no accent bar.
func (b *Builder) addTitleSlide(w *pptx.Writer, t Theme, title, subtitle string) {
	ts, ss := heroStyles(t)
	w.AddSlide(pptx.Slide{
		TitlePh:       "ctrTitle",
		BodyPh:        "subTitle",
		Title:         title,
		TitleStyle:    toRun(ts),
		Body:          subtitle,
		BodyStyle:     toRun(ss),
		GradientStart: t.GradientStart.Hex(),
		GradientEnd:   t.GradientEnd.Hex(),
	})
}

// addContentSlide renders the standard layout: title, accent bar, body.
// Section slides center their body text.
func (b *Builder) addContentSlide(w *pptx.Writer, t Theme, layout Layout, title, body string) {
	ts, bs := ReadableStyles(t)
	if layout == LayoutSection {
		bs.Align = "ctr"
	}
	w.AddSlide(pptx.Slide{
		TitlePh:       "title",
		BodyPh:        "body",
		Title:         title,
		TitleStyle:    toRun(ts),
		Body:          body,
		BodyStyle:     toRun(bs),
		GradientStart: t.GradientStart.Hex(),
		GradientEnd:   t.GradientEnd.Hex(),
		AccentColor:   t.TextSecondary.Hex(),
	})
}

func toRun(s TextStyle) pptx.RunStyle {
	return pptx.RunStyle{
		Color:  s.Color.Hex(),
		SizePt: s.Size,
		Bold:   s.Bold,
		Align:  s.Align,
	}
}
