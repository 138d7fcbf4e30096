// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"slidesmith/internal/ai"
	"slidesmith/internal/imagegen"
	"slidesmith/internal/middleware"
	"slidesmith/internal/session"
)

// Images handles image generation, serving and history.
type Images struct {
	log      *slog.Logger
	registry *ai.Registry
	svc      *imagegen.Service
	sessions *session.Store
}

// NewImages wires the image handler.
func NewImages(log *slog.Logger, registry *ai.Registry, svc *imagegen.Service, sessions *session.Store) *Images {
	return &Images{log: log, registry: registry, svc: svc, sessions: sessions}
}

// rewriteSystemPrompt instructs the text provider to expand a terse image
// prompt into a detailed one.
const rewriteSystemPrompt = "You are an expert at writing prompts for image generation models. " +
	"Rewrite the user's prompt into a single vivid, detailed prompt of at most 60 words. " +
	"Describe subject, setting, lighting and mood. Respond with the rewritten prompt only."

type imageResponseItem struct {
	Key    string `json:"key"`
	URL    string `json:"url"`
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Source string `json:"source"`
}

type imageResponse struct {
	Prompt      string              `json:"prompt"`
	FinalPrompt string              `json:"final_prompt"`
	Width       int                 `json:"width"`
	Height      int                 `json:"height"`
	Quality     string              `json:"quality"`
	Images      []imageResponseItem `json:"images"`
	Warnings    []string            `json:"warnings,omitempty"`
}

// Create generates images for a prompt, stores the rasters under the
// session and appends a history record. API failures degrade to
// placeholders inside the service and are not errors here.
func (h *Images) Create(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeError(w, http.StatusInternalServerError, "No session.")
		return
	}

	var req imagegen.Request
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if msg := validateImageRequest(req.Prompt, req.Style); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	req.Samples = clampSamples(req.Samples)

	if req.Rewrite {
		req.Prompt = h.rewritePrompt(r.Context(), req.Prompt)
	}

	res, err := h.svc.Generate(r.Context(), req)
	if err != nil {
		h.log.Error("image generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Image generation failed.")
		return
	}
	if len(res.Images) == 0 {
		writeError(w, http.StatusBadGateway, "No images could be produced. Try again.")
		return
	}

	rec := session.ImageRecord{
		Prompt:      res.Prompt,
		FinalPrompt: res.FinalPrompt,
		Width:       res.Size.Width,
		Height:      res.Size.Height,
		Quality:     res.Quality,
	}
	items := make([]imageResponseItem, 0, len(res.Images))
	for _, img := range res.Images {
		key, err := h.sessions.StoreImage(r.Context(), sess.ID, img.Data)
		if err != nil {
			h.log.Error("image store failed", "error", err)
			continue
		}
		rec.Items = append(rec.Items, session.ImageItem{
			Key:    key,
			Format: img.Format,
			Width:  img.Size.Width,
			Height: img.Size.Height,
			Source: img.Source,
		})
		items = append(items, imageResponseItem{
			Key:    key,
			URL:    "/images/" + key,
			Format: img.Format,
			Width:  img.Size.Width,
			Height: img.Size.Height,
			Source: img.Source,
		})
	}
	if len(items) == 0 {
		writeError(w, http.StatusInternalServerError, "Could not store the images.")
		return
	}

	if err := h.sessions.AppendImages(r.Context(), sess, rec); err != nil {
		h.log.Error("image history append failed", "error", err)
	}

	writeJSON(w, http.StatusCreated, imageResponse{
		Prompt:      res.Prompt,
		FinalPrompt: res.FinalPrompt,
		Width:       res.Size.Width,
		Height:      res.Size.Height,
		Quality:     res.Quality,
		Images:      items,
		Warnings:    res.Warnings,
	})
}

// rewritePrompt expands the prompt through the text provider. Any failure
// (including no configured provider) keeps the original prompt; image
// generation never blocks on the text side.
func (h *Images) rewritePrompt(ctx context.Context, prompt string) string {
	rewritten, err := h.registry.Generate(ctx, rewriteSystemPrompt, prompt)
	if err != nil {
		h.log.Warn("prompt rewrite failed, keeping original", "error", err)
		return prompt
	}
	rewritten = strings.TrimSpace(rewritten)
	if rewritten == "" {
		return prompt
	}
	return rewritten
}

// Serve streams one stored raster. The key is only looked up under the
// caller's own session, so images never leak across sessions.
func (h *Images) Serve(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeError(w, http.StatusInternalServerError, "No session.")
		return
	}
	key := chi.URLParam(r, "key")

	var format string
	for _, rec := range sess.Images {
		for _, item := range rec.Items {
			if item.Key == key {
				format = item.Format
			}
		}
	}
	if format == "" {
		writeError(w, http.StatusNotFound, "Image not found.")
		return
	}

	data, err := h.sessions.GetImage(r.Context(), sess.ID, key)
	if err != nil {
		h.log.Error("image read failed", "key", key, "error", err)
		writeError(w, http.StatusInternalServerError, "Could not read the image.")
		return
	}
	if data == nil {
		writeError(w, http.StatusNotFound, "Image not found or expired.")
		return
	}

	w.Header().Set("Content-Type", imagegen.MimeForFormat(format))
	w.Write(data)
}

// History returns the session's image records, newest last.
func (h *Images) History(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeError(w, http.StatusInternalServerError, "No session.")
		return
	}
	images := sess.Images
	if images == nil {
		images = []session.ImageRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"images": images})
}
