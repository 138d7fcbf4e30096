// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package imagegen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// StabilityClient calls a Stability-style text-to-image endpoint.
type StabilityClient struct {
	apiKey  string
	engine  string
	baseURL string
	client  *http.Client
}

// NewStabilityClient creates a client for the given engine. Returns nil
// when no API key is configured so callers can treat the client's absence
// as "placeholder mode".
func NewStabilityClient(apiKey, engine, baseURL string) *StabilityClient {
	if apiKey == "" {
		return nil
	}
	return &StabilityClient{
		apiKey:  apiKey,
		engine:  engine,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

type textPrompt struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}

type generationRequest struct {
	TextPrompts []textPrompt `json:"text_prompts"`
	CfgScale    float64      `json:"cfg_scale"`
	Height      int          `json:"height"`
	Width       int          `json:"width"`
	Samples     int          `json:"samples"`
	Steps       int          `json:"steps"`
}

type generationResponse struct {
	Artifacts []struct {
		Base64       string `json:"base64"`
		Seed         int64  `json:"seed"`
		FinishReason string `json:"finishReason"`
	} `json:"artifacts"`
}

// Generate requests samples images for the prompt and returns the decoded
// payload of every artifact the API produced.
func (c *StabilityClient) Generate(ctx context.Context, prompt string, size Size, samples, steps int, cfgScale float64) ([][]byte, error) {
	reqBody := generationRequest{
		TextPrompts: []textPrompt{{Text: prompt, Weight: 1}},
		CfgScale:    cfgScale,
		Height:      size.Height,
		Width:       size.Width,
		Samples:     samples,
		Steps:       steps,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("stability: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/generation/%s/text-to-image", c.baseURL, c.engine)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("stability: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stability: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("stability: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("stability: status %d: %s", resp.StatusCode, body)
	}

	var gen generationResponse
	if err := json.Unmarshal(body, &gen); err != nil {
		return nil, fmt.Errorf("stability: parse response: %w", err)
	}
	if len(gen.Artifacts) == 0 {
		return nil, fmt.Errorf("stability: no artifacts in response")
	}

	images := make([][]byte, 0, len(gen.Artifacts))
	for i, a := range gen.Artifacts {
		data, err := base64.StdEncoding.DecodeString(a.Base64)
		if err != nil {
			return nil, fmt.Errorf("stability: decode artifact %d: %w", i, err)
		}
		images = append(images, data)
	}
	return images, nil
}
