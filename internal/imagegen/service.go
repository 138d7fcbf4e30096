// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package imagegen

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Request carries the user's inputs for one generation.
type Request struct {
	Prompt   string  `json:"prompt"`
	Style    string  `json:"style"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Quality  string  `json:"quality"`
	CfgScale float64 `json:"cfg_scale"`
	Samples  int     `json:"samples"`

	// Rewrite asks for the prompt to be expanded by the text provider
	// before generation. Handled by the caller; the service generates
	// from whatever Prompt it receives.
	Rewrite bool `json:"rewrite"`
}

// Image is one generated raster.
type Image struct {
	Data   []byte `json:"-"`
	Format string `json:"format"`
	Size   Size   `json:"size"`
	Source string `json:"source"` // "api" or "placeholder"
}

// Result is the outcome of one generation: the final prompt sent out, the
// size actually used, and whatever images were produced.
type Result struct {
	Prompt      string   `json:"prompt"`
	FinalPrompt string   `json:"final_prompt"`
	Size        Size     `json:"size"`
	Quality     string   `json:"quality"`
	Images      []Image  `json:"images"`
	Warnings    []string `json:"warnings,omitempty"`
}

// Service orchestrates image generation with placeholder fallback.
// A nil api client means no credential is configured and every request
// goes straight to the placeholder service.
type Service struct {
	log         *slog.Logger
	api         *StabilityClient
	placeholder *PlaceholderClient
}

// NewService wires the generation pipeline.
func NewService(log *slog.Logger, api *StabilityClient, placeholder *PlaceholderClient) *Service {
	return &Service{log: log, api: api, placeholder: placeholder}
}

// HasAPI reports whether a generation credential is configured.
func (s *Service) HasAPI() bool {
	return s.api != nil
}

// Generate produces images for the request. API failures are logged and
// degrade to placeholder fetches; placeholder fetch failures are logged
// and skipped, never raised. The returned result always reflects what was
// actually produced, which may be fewer images than requested.
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, fmt.Errorf("imagegen: empty prompt")
	}

	samples := req.Samples
	if samples < 1 {
		samples = 1
	}

	size, supported := NormalizeSize(req.Width, req.Height)
	res := &Result{
		Prompt:  req.Prompt,
		Size:    size,
		Quality: req.Quality,
	}
	if !supported {
		warning := fmt.Sprintf("unsupported size %dx%d, using %dx%d", req.Width, req.Height, size.Width, size.Height)
		s.log.Warn("correcting image size", "requested_width", req.Width, "requested_height", req.Height)
		res.Warnings = append(res.Warnings, warning)
	}

	res.FinalPrompt = finalPrompt(req.Prompt, req.Style, size)

	if s.api != nil {
		payloads, err := s.api.Generate(ctx, res.FinalPrompt, size, samples, StepsForQuality(req.Quality), ClampCfg(req.CfgScale))
		if err == nil {
			for i, data := range payloads {
				img, err := s.inspect(data, "api")
				if err != nil {
					s.log.Warn("skipping undecodable artifact", "index", i, "error", err)
					continue
				}
				res.Images = append(res.Images, img)
			}
			return res, nil
		}
		s.log.Warn("image api failed, falling back to placeholders", "error", err)
		res.Warnings = append(res.Warnings, "image service unavailable, showing placeholders")
	}

	for i := 0; i < samples; i++ {
		data, err := s.placeholder.Fetch(ctx, size, req.Prompt, i)
		if err != nil {
			s.log.Warn("placeholder fetch failed", "index", i, "error", err)
			continue
		}
		img, err := s.inspect(data, "placeholder")
		if err != nil {
			s.log.Warn("skipping undecodable placeholder", "index", i, "error", err)
			continue
		}
		res.Images = append(res.Images, img)
	}
	return res, nil
}

func (s *Service) inspect(data []byte, source string) (Image, error) {
	format, size, err := sniff(data)
	if err != nil {
		return Image{}, err
	}
	return Image{Data: data, Format: format, Size: size, Source: source}, nil
}

// finalPrompt appends the style tag and the orientation label to the
// user's prompt before it is sent to the image API.
func finalPrompt(prompt, style string, size Size) string {
	parts := []string{strings.TrimSpace(prompt)}
	if strings.TrimSpace(style) != "" {
		parts = append(parts, strings.TrimSpace(style)+" style")
	}
	parts = append(parts, Orientation(size)+" orientation")
	return strings.Join(parts, ", ")
}
