// Package router sets up all HTTP routes and middleware chains for the
// Slidesmith server. Generation and history routes sit behind the session
// middleware; artifact downloads are token-addressed and need no session.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"slidesmith/internal/handlers"
	"slidesmith/internal/middleware"
	"slidesmith/internal/session"
	"slidesmith/web"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, limiter *middleware.RateLimiter, deck *handlers.Deck, images *handlers.Images) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Health check.
	r.Get("/health", healthHandler)

	// Static UI.
	r.Get("/", indexHandler)
	r.Handle("/static/*", http.StripPrefix("/static/", staticHandler()))

	// Session-scoped API: generation, history, per-session images.
	r.Group(func(r chi.Router) {
		r.Use(middleware.EnsureSession(sessionStore))

		// Generation endpoints are the expensive ones; rate-limit them.
		r.Group(func(r chi.Router) {
			r.Use(limiter.Middleware)
			r.Post("/api/deck", deck.Create)
			r.Post("/api/images", images.Create)
		})

		r.Get("/api/deck/history", deck.History)
		r.Get("/api/images/history", images.History)
		r.Get("/images/{key}", images.Serve)
	})

	// Artifact downloads are addressed by unguessable token.
	r.Get("/deck/{token}", deck.Download)
	r.Get("/deck/{token}/preview", deck.Preview)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// indexHandler serves the single-page UI from the embedded assets.
func indexHandler(w http.ResponseWriter, r *http.Request) {
	data, err := web.StaticFS.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

// staticHandler serves the embedded static tree.
func staticHandler() http.Handler {
	sub, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
