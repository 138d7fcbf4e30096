// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"slidesmith/internal/ai"
	"slidesmith/internal/artifact"
	"slidesmith/internal/deck"
	"slidesmith/internal/markdown"
	"slidesmith/internal/middleware"
	"slidesmith/internal/pptx"
	"slidesmith/internal/session"
)

// Deck handles deck generation, download, preview and history.
type Deck struct {
	log       *slog.Logger
	registry  *ai.Registry
	builder   *deck.Builder
	artifacts *artifact.Store
	sessions  *session.Store
}

// NewDeck wires the deck handler.
func NewDeck(log *slog.Logger, registry *ai.Registry, builder *deck.Builder, artifacts *artifact.Store, sessions *session.Store) *Deck {
	return &Deck{
		log:       log,
		registry:  registry,
		builder:   builder,
		artifacts: artifacts,
		sessions:  sessions,
	}
}

type deckRequest struct {
	Topic      string `json:"topic"`
	Notes      string `json:"notes"`
	SlideCount int    `json:"slide_count"`
	Style      string `json:"style"`
	Theme      string `json:"theme"`
}

type deckResponse struct {
	Token       string   `json:"token"`
	Title       string   `json:"title"`
	SlideCount  int      `json:"slide_count"`
	Theme       string   `json:"theme"`
	DownloadURL string   `json:"download_url"`
	DataURI     string   `json:"data_uri"`
	Warnings    []string `json:"warnings,omitempty"`
}

// Create runs the full assembly flow: prompt the text provider, parse the
// slide content, build the artifact, store it behind a deletion timer and
// record the result in the session history. Content-level failures fall
// back to placeholder content; only a missing credential or a storage
// problem aborts the request.
func (h *Deck) Create(w http.ResponseWriter, r *http.Request) {
	var req deckRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if msg := validateDeckRequest(req.Topic, req.Notes, req.Style); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	var warnings []string
	slideCount, adjusted := clampSlideCount(req.SlideCount)
	if adjusted {
		warnings = append(warnings, fmt.Sprintf("slide count adjusted to %d", slideCount))
	}
	style := req.Style
	if strings.TrimSpace(style) == "" {
		style = "professional"
	}

	content, fatal := h.generateContent(r.Context(), req.Topic, req.Notes, slideCount, style, &warnings)
	if fatal != "" {
		writeError(w, http.StatusServiceUnavailable, fatal)
		return
	}

	data, err := h.builder.Build(content, req.Theme)
	if err != nil {
		h.log.Error("deck build failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Deck assembly failed.")
		return
	}

	token, err := h.artifacts.Put(data)
	if err != nil {
		h.log.Error("artifact store failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not store the deck.")
		return
	}

	sess := middleware.SessionFromCtx(r.Context())
	if sess != nil {
		rec := session.DeckRecord{
			Topic:      req.Topic,
			Theme:      req.Theme,
			Style:      style,
			SlideCount: len(content.Slides),
			Token:      token,
		}
		if err := h.sessions.AppendDeck(r.Context(), sess, rec); err != nil {
			h.log.Error("deck history append failed", "error", err)
		}
	}

	writeJSON(w, http.StatusCreated, deckResponse{
		Token:       token,
		Title:       content.Title,
		SlideCount:  len(content.Slides) + 1, // plus the title slide
		Theme:       req.Theme,
		DownloadURL: "/deck/" + token,
		DataURI:     artifact.DataURI(pptx.MimeType, data),
		Warnings:    warnings,
	})
}

// generateContent calls the active text provider and parses its response.
// A missing credential is fatal and returned as a user-facing message.
// Provider errors and unparseable responses degrade to placeholder
// content with a warning so the caller still gets a deck.
func (h *Deck) generateContent(ctx context.Context, topic, notes string, slideCount int, style string, warnings *[]string) (*deck.Content, string) {
	prompt := deck.BuildPrompt(topic, notes, slideCount, style)

	raw, err := h.registry.Generate(ctx, deck.SystemPrompt, prompt)
	if err != nil {
		var noProvider *ai.ErrNoProvider
		if errors.As(err, &noProvider) {
			return nil, "Text generation is not configured. Set a provider API key."
		}
		h.log.Error("content generation failed", "error", err)
		*warnings = append(*warnings, "content generation failed, deck contains placeholder content")
		return deck.PlaceholderContent(), ""
	}

	content, err := deck.ParseContent(raw)
	if err != nil {
		h.log.Warn("unparseable provider response", "error", err)
		*warnings = append(*warnings, "provider response could not be parsed, deck contains placeholder content")
		return deck.PlaceholderContent(), ""
	}
	return content, ""
}

// Download streams a stored artifact as a file attachment. Expired and
// unknown tokens both read as gone.
func (h *Deck) Download(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	data, err := h.artifacts.Get(token)
	if errors.Is(err, artifact.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Deck not found or expired.")
		return
	}
	if err != nil {
		h.log.Error("artifact read failed", "token", token, "error", err)
		writeError(w, http.StatusInternalServerError, "Could not read the deck.")
		return
	}

	w.Header().Set("Content-Type", pptx.MimeType)
	w.Header().Set("Content-Disposition", `attachment; filename="presentation.pptx"`)
	w.Write(data)
}

type previewSlide struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	Body  string `json:"body"`
	HTML  string `json:"html"`
}

// Preview extracts the text of a stored artifact and renders each slide
// body as HTML for the in-browser preview.
func (h *Deck) Preview(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	data, err := h.artifacts.Get(token)
	if errors.Is(err, artifact.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Deck not found or expired.")
		return
	}
	if err != nil {
		h.log.Error("artifact read failed", "token", token, "error", err)
		writeError(w, http.StatusInternalServerError, "Could not read the deck.")
		return
	}

	slides, err := pptx.ExtractSlides(data)
	if err != nil {
		h.log.Error("artifact parse failed", "token", token, "error", err)
		writeError(w, http.StatusInternalServerError, "Could not parse the deck.")
		return
	}

	preview := make([]previewSlide, 0, len(slides))
	for _, s := range slides {
		html, err := markdown.ToHTML(s.Body)
		if err != nil {
			h.log.Warn("preview render failed", "slide", s.Index, "error", err)
			html = ""
		}
		preview = append(preview, previewSlide{
			Index: s.Index,
			Title: s.Title,
			Body:  s.Body,
			HTML:  html,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"slides": preview})
}

// History returns the session's deck records, newest last.
func (h *Deck) History(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeError(w, http.StatusInternalServerError, "No session.")
		return
	}
	decks := sess.Decks
	if decks == nil {
		decks = []session.DeckRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"decks": decks})
}
