// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package pptx writes and reads PresentationML (PPTX) files using only
// archive/zip and hand-built OOXML parts. The writer covers exactly what
// the deck builder needs: one shape for the title, one for the body, an
// optional accent rectangle, and a two-stop gradient background per slide.
package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
)

// MimeType is the content type of a PPTX byte stream.
const MimeType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// RunStyle controls the rendering of a text run.
type RunStyle struct {
	Color  string // RRGGBB, no leading #
	SizePt int
	Bold   bool
	Align  string // "ctr" or "l"
}

// Slide describes one slide to be written. TitlePh and BodyPh carry the
// OOXML placeholder types ("title"/"ctrTitle" and "body"/"subTitle") so a
// reader can tell title text from body text.
type Slide struct {
	TitlePh string
	BodyPh  string

	Title      string
	TitleStyle RunStyle
	Body       string
	BodyStyle  RunStyle

	GradientStart string // RRGGBB background gradient stops
	GradientEnd   string
	AccentColor   string // RRGGBB accent bar under the title; empty = none
}

// Writer accumulates slides and serializes them into a PPTX package.
type Writer struct {
	slides []Slide
}

// NewWriter returns an empty presentation writer.
func NewWriter() *Writer {
	return &Writer{}
}

// AddSlide appends a slide to the presentation.
func (w *Writer) AddSlide(s Slide) {
	if s.TitlePh == "" {
		s.TitlePh = "title"
	}
	if s.BodyPh == "" {
		s.BodyPh = "body"
	}
	w.slides = append(w.slides, s)
}

// SlideCount returns the number of slides added so far.
func (w *Writer) SlideCount() int {
	return len(w.slides)
}

// Slide geometry in EMU for a 16:9 (12192000 x 6858000) slide.
const (
	titleX, titleY   = 838200, 365125
	titleW, titleH   = 10515600, 1325563
	accentGap        = 91440 // 0.1 inch below the title
	accentH          = 45720 // 0.05 inch tall
	bodyX, bodyY     = 838200, 1897063
	bodyW, bodyH     = 10515600, 4351338
	gradientAngle45  = 2700000 // 45 degrees in 60000ths
	slideCX, slideCY = 12192000, 6858000
)

// Bytes serializes the presentation into a PPTX package.
func (w *Writer) Bytes() ([]byte, error) {
	if len(w.slides) == 0 {
		return nil, fmt.Errorf("pptx: no slides to write")
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name string
		body string
	}{
		{"[Content_Types].xml", w.contentTypes()},
		{"_rels/.rels", rootRels},
		{"ppt/presentation.xml", w.presentation()},
		{"ppt/_rels/presentation.xml.rels", w.presentationRels()},
		{"ppt/slideMasters/slideMaster1.xml", slideMaster},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRels},
		{"ppt/slideLayouts/slideLayout1.xml", slideLayout},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRels},
		{"ppt/theme/theme1.xml", themePart},
	}
	for i, s := range w.slides {
		n := i + 1
		parts = append(parts,
			struct{ name, body string }{fmt.Sprintf("ppt/slides/slide%d.xml", n), slideXML(s)},
			struct{ name, body string }{fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), slideRels},
		)
	}

	for _, part := range parts {
		f, err := zw.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("pptx: create %s: %w", part.name, err)
		}
		if _, err := f.Write([]byte(xmlHeader + part.body)); err != nil {
			return nil, fmt.Errorf("pptx: write %s: %w", part.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("pptx: close archive: %w", err)
	}
	return buf.Bytes(), nil
}

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

const (
	nsA = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsP = "http://schemas.openxmlformats.org/presentationml/2006/main"
)

func (w *Writer) contentTypes() string {
	var b strings.Builder
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	b.WriteString(`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>`)
	for i := range w.slides {
		fmt.Fprintf(&b, `<Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`, i+1)
	}
	b.WriteString(`</Types>`)
	return b.String()
}

const rootRels = `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/>` +
	`</Relationships>`

func (w *Writer) presentation() string {
	var b strings.Builder
	fmt.Fprintf(&b, `<p:presentation xmlns:a=%q xmlns:r=%q xmlns:p=%q>`, nsA, nsR, nsP)
	b.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	b.WriteString(`<p:sldIdLst>`)
	for i := range w.slides {
		fmt.Fprintf(&b, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, i+2)
	}
	b.WriteString(`</p:sldIdLst>`)
	fmt.Fprintf(&b, `<p:sldSz cx="%d" cy="%d"/>`, slideCX, slideCY)
	b.WriteString(`<p:notesSz cx="6858000" cy="9144000"/>`)
	b.WriteString(`</p:presentation>`)
	return b.String()
}

func (w *Writer) presentationRels() string {
	var b strings.Builder
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	b.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="slideMasters/slideMaster1.xml"/>`)
	for i := range w.slides {
		fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"/>`, i+2, i+1)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

const emptySpTree = `<p:spTree>` +
	`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
	`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>` +
	`</p:spTree>`

var slideMaster = `<p:sldMaster xmlns:a="` + nsA + `" xmlns:r="` + nsR + `" xmlns:p="` + nsP + `">` +
	`<p:cSld>` + emptySpTree + `</p:cSld>` +
	`<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>` +
	`<p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst>` +
	`</p:sldMaster>`

const slideMasterRels = `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme" Target="../theme/theme1.xml"/>` +
	`</Relationships>`

var slideLayout = `<p:sldLayout xmlns:a="` + nsA + `" xmlns:r="` + nsR + `" xmlns:p="` + nsP + `">` +
	`<p:cSld>` + emptySpTree + `</p:cSld>` +
	`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>` +
	`</p:sldLayout>`

const slideLayoutRels = `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="../slideMasters/slideMaster1.xml"/>` +
	`</Relationships>`

const slideRels = `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>` +
	`</Relationships>`

// themePart is a minimal but complete DrawingML theme: PowerPoint refuses
// packages whose master references a theme without a full fmtScheme.
var themePart = `<a:theme xmlns:a="` + nsA + `" name="Slidesmith">` +
	`<a:themeElements>` +
	`<a:clrScheme name="Slidesmith">` +
	`<a:dk1><a:srgbClr val="000000"/></a:dk1><a:lt1><a:srgbClr val="FFFFFF"/></a:lt1>` +
	`<a:dk2><a:srgbClr val="212F3D"/></a:dk2><a:lt2><a:srgbClr val="F0F8FF"/></a:lt2>` +
	`<a:accent1><a:srgbClr val="2980B9"/></a:accent1><a:accent2><a:srgbClr val="6DD5FA"/></a:accent2>` +
	`<a:accent3><a:srgbClr val="3498DB"/></a:accent3><a:accent4><a:srgbClr val="373B44"/></a:accent4>` +
	`<a:accent5><a:srgbClr val="4286F4"/></a:accent5><a:accent6><a:srgbClr val="192032"/></a:accent6>` +
	`<a:hlink><a:srgbClr val="0563C1"/></a:hlink><a:folHlink><a:srgbClr val="954F72"/></a:folHlink>` +
	`</a:clrScheme>` +
	`<a:fontScheme name="Slidesmith">` +
	`<a:majorFont><a:latin typeface="Montserrat"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>` +
	`<a:minorFont><a:latin typeface="Open Sans"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont>` +
	`</a:fontScheme>` +
	`<a:fmtScheme name="Slidesmith">` +
	`<a:fillStyleLst>` +
	`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
	`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
	`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
	`</a:fillStyleLst>` +
	`<a:lnStyleLst>` +
	`<a:ln w="6350"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>` +
	`<a:ln w="12700"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>` +
	`<a:ln w="19050"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>` +
	`</a:lnStyleLst>` +
	`<a:effectStyleLst>` +
	`<a:effectStyle><a:effectLst/></a:effectStyle>` +
	`<a:effectStyle><a:effectLst/></a:effectStyle>` +
	`<a:effectStyle><a:effectLst/></a:effectStyle>` +
	`</a:effectStyleLst>` +
	`<a:bgFillStyleLst>` +
	`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
	`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
	`<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>` +
	`</a:bgFillStyleLst>` +
	`</a:fmtScheme>` +
	`</a:themeElements>` +
	`</a:theme>`

// slideXML renders one slide part: gradient background, title shape, body
// shape, optional accent bar.
func slideXML(s Slide) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<p:sld xmlns:a=%q xmlns:r=%q xmlns:p=%q>`, nsA, nsR, nsP)
	b.WriteString(`<p:cSld>`)

	// Diagonal two-stop gradient background.
	fmt.Fprintf(&b, `<p:bg><p:bgPr><a:gradFill><a:gsLst>`+
		`<a:gs pos="0"><a:srgbClr val="%s"/></a:gs>`+
		`<a:gs pos="100000"><a:srgbClr val="%s"/></a:gs>`+
		`</a:gsLst><a:lin ang="%d" scaled="1"/></a:gradFill><a:effectLst/></p:bgPr></p:bg>`,
		s.GradientStart, s.GradientEnd, gradientAngle45)

	b.WriteString(`<p:spTree>`)
	b.WriteString(`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>`)
	b.WriteString(`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`)

	writeTextShape(&b, 2, "Title", s.TitlePh, titleX, titleY, titleW, titleH, s.Title, s.TitleStyle)
	writeTextShape(&b, 3, "Content", s.BodyPh, bodyX, bodyY, bodyW, bodyH, s.Body, s.BodyStyle)

	if s.AccentColor != "" {
		writeAccentBar(&b, 4, s.AccentColor)
	}

	b.WriteString(`</p:spTree>`)
	b.WriteString(`</p:cSld>`)
	b.WriteString(`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>`)
	b.WriteString(`</p:sld>`)
	return b.String()
}

// writeTextShape emits a placeholder shape with one paragraph per line of
// text, all runs sharing the given style.
func writeTextShape(b *strings.Builder, id int, name, ph string, x, y, cx, cy int, text string, style RunStyle) {
	fmt.Fprintf(b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr>`+
		`<p:nvPr><p:ph type="%s"/></p:nvPr></p:nvSpPr>`, id, name, ph)
	fmt.Fprintf(b, `<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
		`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>`, x, y, cx, cy)
	b.WriteString(`<p:txBody><a:bodyPr/><a:lstStyle/>`)

	align := style.Align
	if align == "" {
		align = "l"
	}
	bold := "0"
	if style.Bold {
		bold = "1"
	}

	for _, line := range strings.Split(text, "\n") {
		fmt.Fprintf(b, `<a:p><a:pPr algn="%s"/>`, align)
		fmt.Fprintf(b, `<a:r><a:rPr lang="en-US" sz="%d" b="%s" dirty="0"><a:solidFill><a:srgbClr val="%s"/></a:solidFill></a:rPr><a:t>%s</a:t></a:r>`,
			style.SizePt*100, bold, style.Color, escape(line))
		b.WriteString(`</a:p>`)
	}

	b.WriteString(`</p:txBody></p:sp>`)
}

// writeAccentBar emits the thin rectangle under the title.
func writeAccentBar(b *strings.Builder, id int, color string) {
	y := titleY + titleH + accentGap
	fmt.Fprintf(b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="Accent"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>`, id)
	fmt.Fprintf(b, `<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
		`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom>`+
		`<a:solidFill><a:srgbClr val="%s"/></a:solidFill></p:spPr>`,
		titleX, y, titleW, accentH, color)
	b.WriteString(`<p:txBody><a:bodyPr/><a:lstStyle/><a:p><a:endParaRPr/></a:p></p:txBody></p:sp>`)
}

// escape replaces XML-reserved characters in text content.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escape(s string) string {
	return escaper.Replace(s)
}
