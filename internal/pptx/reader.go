// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// SlideText is the text extracted from one slide, split by placeholder
// type: title placeholders feed Title, everything else feeds Body.
type SlideText struct {
	Index int
	Title string
	Body  string
}

var slidePartRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// ExtractSlides reads a PPTX byte stream and returns the text of every
// slide in presentation order. Used by the deck preview and by tests.
func ExtractSlides(data []byte) ([]SlideText, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("pptx: open archive: %w", err)
	}

	var slides []SlideText
	for _, f := range zr.File {
		m := slidePartRe.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("pptx: open %s: %w", f.Name, err)
		}
		raw, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("pptx: read %s: %w", f.Name, err)
		}
		st, err := parseSlideXML(raw)
		if err != nil {
			return nil, fmt.Errorf("pptx: parse %s: %w", f.Name, err)
		}
		st.Index = idx
		slides = append(slides, st)
	}

	sort.Slice(slides, func(i, j int) bool { return slides[i].Index < slides[j].Index })
	return slides, nil
}

// parseSlideXML walks one slide part and collects text runs grouped by the
// placeholder type of the enclosing shape.
func parseSlideXML(raw []byte) (SlideText, error) {
	dec := xml.NewDecoder(bytes.NewReader(raw))

	var (
		st        SlideText
		phType    string
		titleRuns []string
		bodyLines []string
		inText    bool
		depth     int // nesting depth of <sp> elements
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return st, err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "sp":
				depth++
				if depth == 1 {
					phType = ""
				}
			case "ph":
				for _, attr := range el.Attr {
					if attr.Name.Local == "type" {
						phType = attr.Value
					}
				}
			case "t":
				inText = true
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "sp":
				depth--
			case "t":
				inText = false
			}
		case xml.CharData:
			if !inText {
				continue
			}
			text := string(el)
			switch phType {
			case "title", "ctrTitle":
				if text != "" {
					titleRuns = append(titleRuns, text)
				}
			default:
				if text != "" {
					bodyLines = append(bodyLines, text)
				}
			}
		}
	}

	st.Title = strings.Join(titleRuns, " ")
	st.Body = strings.Join(bodyLines, "\n")
	return st, nil
}
