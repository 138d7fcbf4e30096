// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// ---------- Helpers ----------

// newTestServer creates an httptest.Server that responds with the given status
// code and body bytes. The caller must call Close on the returned server.
func newTestServer(t *testing.T, statusCode int, body []byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		w.Write(body)
	}))
}

// geminiSuccessBody builds a JSON body matching the Gemini generateContent
// response format with a single candidate containing the given text.
func geminiSuccessBody(text string) []byte {
	resp := geminiResponse{
		Candidates: []geminiCandidate{
			{Content: geminiContent{Parts: []geminiPart{{Text: text}}}},
		},
	}
	b, _ := json.Marshal(resp)
	return b
}

// openAISuccessBody builds a JSON body matching the OpenAI chat completions
// response format with a single choice containing the given text.
func openAISuccessBody(text string) []byte {
	return []byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":` +
		string(mustJSON(text)) + `}}]}`)
}

func mustJSON(s string) []byte {
	b, _ := json.Marshal(s)
	return b
}

// =====================================================================
// Gemini Provider Tests
// =====================================================================

func TestGeminiGenerate_Success(t *testing.T) {
	want := "Hello from Gemini"
	srv := newTestServer(t, http.StatusOK, geminiSuccessBody(want))
	defer srv.Close()

	p := newGemini(ProviderConfig{
		APIKey:  "test-key",
		Model:   "gemini-2.0-flash",
		BaseURL: srv.URL,
	})

	got, err := p.Generate(context.Background(), "You are helpful.", "Say hello")
	if err != nil {
		t.Fatalf("Generate: unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("Generate: got %q, want %q", got, want)
	}
}

func TestGeminiGenerate_VerifiesRequestShape(t *testing.T) {
	// Capture the request sent by the provider.
	var capturedPath string
	var capturedHeaders http.Header
	var capturedBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		capturedHeaders = r.Header.Clone()
		capturedBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(geminiSuccessBody("ok"))
	}))
	defer srv.Close()

	p := newGemini(ProviderConfig{
		APIKey:  "secret-gemini-key",
		Model:   "gemini-2.0-flash",
		BaseURL: srv.URL,
	})

	if _, err := p.Generate(context.Background(), "system here", "user here"); err != nil {
		t.Fatalf("Generate: unexpected error: %v", err)
	}

	if capturedPath != "/v1beta/models/gemini-2.0-flash:generateContent" {
		t.Errorf("request path = %q, want the generateContent endpoint", capturedPath)
	}
	if got := capturedHeaders.Get("x-goog-api-key"); got != "secret-gemini-key" {
		t.Errorf("x-goog-api-key = %q, want %q", got, "secret-gemini-key")
	}
	if got := capturedHeaders.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}

	var req geminiRequest
	if err := json.Unmarshal(capturedBody, &req); err != nil {
		t.Fatalf("request body is not valid JSON: %v", err)
	}
	if req.SystemInstruction == nil || len(req.SystemInstruction.Parts) == 0 ||
		req.SystemInstruction.Parts[0].Text != "system here" {
		t.Errorf("system_instruction not carried: %+v", req.SystemInstruction)
	}
	if len(req.Contents) != 1 || req.Contents[0].Parts[0].Text != "user here" {
		t.Errorf("contents not carried: %+v", req.Contents)
	}
}

func TestGeminiGenerate_APIError(t *testing.T) {
	srv := newTestServer(t, http.StatusForbidden, []byte(`{"error":{"message":"key invalid"}}`))
	defer srv.Close()

	p := newGemini(ProviderConfig{APIKey: "bad", Model: "gemini-2.0-flash", BaseURL: srv.URL})

	_, err := p.Generate(context.Background(), "sys", "user")
	if err == nil {
		t.Fatal("Generate should fail on a 403 response")
	}
	// The raw body must be surfaced to the user per the error contract.
	if !strings.Contains(err.Error(), "403") || !strings.Contains(err.Error(), "key invalid") {
		t.Errorf("error should carry status and raw body, got: %v", err)
	}
}

func TestGeminiGenerate_NoCandidates(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, []byte(`{"candidates":[]}`))
	defer srv.Close()

	p := newGemini(ProviderConfig{APIKey: "k", Model: "gemini-2.0-flash", BaseURL: srv.URL})

	if _, err := p.Generate(context.Background(), "sys", "user"); err == nil {
		t.Fatal("Generate should fail when no candidates are returned")
	}
}

// =====================================================================
// OpenAI Provider Tests
// =====================================================================

func TestOpenAIGenerate_Success(t *testing.T) {
	want := "Hello from OpenAI"
	srv := newTestServer(t, http.StatusOK, openAISuccessBody(want))
	defer srv.Close()

	p := newOpenAI(ProviderConfig{
		APIKey:  "test-key",
		Model:   "gpt-4o",
		BaseURL: srv.URL,
	})

	got, err := p.Generate(context.Background(), "You are helpful.", "Say hello")
	if err != nil {
		t.Fatalf("Generate: unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("Generate: got %q, want %q", got, want)
	}
}

func TestOpenAIGenerate_VerifiesRequest(t *testing.T) {
	var capturedAuth string
	var capturedBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedAuth = r.Header.Get("Authorization")
		capturedBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(openAISuccessBody("ok"))
	}))
	defer srv.Close()

	p := newOpenAI(ProviderConfig{APIKey: "sk-secret", Model: "gpt-4o", BaseURL: srv.URL})

	if _, err := p.Generate(context.Background(), "system here", "user here"); err != nil {
		t.Fatalf("Generate: unexpected error: %v", err)
	}

	if capturedAuth != "Bearer sk-secret" {
		t.Errorf("Authorization = %q, want bearer token", capturedAuth)
	}

	var req struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(capturedBody, &req); err != nil {
		t.Fatalf("request body is not valid JSON: %v", err)
	}
	if req.Model != "gpt-4o" {
		t.Errorf("model = %q, want gpt-4o", req.Model)
	}
	if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Content != "user here" {
		t.Errorf("messages not carried: %+v", req.Messages)
	}
}

func TestOpenAIGenerate_APIError(t *testing.T) {
	srv := newTestServer(t, http.StatusUnauthorized,
		[]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	defer srv.Close()

	p := newOpenAI(ProviderConfig{APIKey: "bad", Model: "gpt-4o", BaseURL: srv.URL})

	if _, err := p.Generate(context.Background(), "sys", "user"); err == nil {
		t.Fatal("Generate should fail on a 401 response")
	}
}
