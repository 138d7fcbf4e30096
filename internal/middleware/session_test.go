// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"slidesmith/internal/session"
)

func testSessionStore(t *testing.T) *session.Store {
	t.Helper()

	host := os.Getenv("VALKEY_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("VALKEY_PORT")
	if port == "" {
		port = "6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}
	t.Cleanup(func() {
		keys, _ := client.Keys(context.Background(), "session:*").Result()
		if len(keys) > 0 {
			client.Del(context.Background(), keys...)
		}
		client.Close()
	})

	return session.NewStore(client, time.Hour)
}

func TestEnsureSessionCreatesAndExposes(t *testing.T) {
	store := testSessionStore(t)

	var got *session.Data
	handler := EnsureSession(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = SessionFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if got == nil || got.ID == "" {
		t.Fatal("handler did not receive a session")
	}

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("session cookie not set")
	}

	// Second request with the cookie sees the same session.
	var again *session.Data
	handler2 := EnsureSession(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		again = SessionFromCtx(r.Context())
	}))
	r2 := httptest.NewRequest(http.MethodGet, "/", nil)
	r2.AddCookie(cookie)
	handler2.ServeHTTP(httptest.NewRecorder(), r2)

	if again == nil || again.ID != got.ID {
		t.Error("session not carried across requests")
	}
}

func TestSessionFromCtxWithoutMiddleware(t *testing.T) {
	if SessionFromCtx(context.Background()) != nil {
		t.Error("expected nil session outside the middleware")
	}
}
