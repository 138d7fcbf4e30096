// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package imagegen

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// PlaceholderClient fetches images from a public random-image service.
// The sig query parameter keeps repeated fetches for the same prompt from
// colliding on the service's cache.
type PlaceholderClient struct {
	baseURL string
	client  *http.Client
}

// NewPlaceholderClient creates a client for the given service base URL.
func NewPlaceholderClient(baseURL string) *PlaceholderClient {
	return &PlaceholderClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// URL builds the fetch URL for one image slot: the prompt words joined by
// commas in the query, plus a per-slot sig index.
func (c *PlaceholderClient) URL(size Size, prompt string, index int) string {
	words := strings.Join(strings.Fields(prompt), ",")
	return fmt.Sprintf("%s/%d/%d/?%s&sig=%d", c.baseURL, size.Width, size.Height, words, index)
}

// Fetch downloads one placeholder image.
func (c *PlaceholderClient) Fetch(ctx context.Context, size Size, prompt string, index int) ([]byte, error) {
	url := c.URL(size, prompt, index)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("placeholder: build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("placeholder: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("placeholder: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("placeholder: read response: %w", err)
	}
	return data, nil
}
