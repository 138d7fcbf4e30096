// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package artifact holds generated deck files in a transient directory.
// Every artifact gets a random token and a deletion timer; after the TTL
// the file is removed whether or not it was ever downloaded.
package artifact

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Ext is the file extension given to stored deck artifacts.
const Ext = ".pptx"

// ErrNotFound is returned when a token has no artifact, either because it
// never existed or because the deletion timer already fired.
var ErrNotFound = fmt.Errorf("artifact not found")

// Store owns a directory of expiring artifacts.
type Store struct {
	log *slog.Logger
	dir string
	ttl time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewStore creates the artifact directory if needed.
func NewStore(log *slog.Logger, dir string, ttl time.Duration) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("artifact dir: %w", err)
	}
	return &Store{
		log:    log,
		dir:    dir,
		ttl:    ttl,
		timers: make(map[string]*time.Timer),
	}, nil
}

// Put writes an artifact and schedules its deletion. Returns the token
// the artifact can be fetched by until the timer fires.
func (s *Store) Put(data []byte) (string, error) {
	token := uuid.NewString()
	path := s.path(token)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("artifact write: %w", err)
	}

	s.mu.Lock()
	s.timers[token] = time.AfterFunc(s.ttl, func() { s.expire(token) })
	s.mu.Unlock()

	s.log.Info("artifact stored", "token", token, "bytes", len(data), "ttl", s.ttl)
	return token, nil
}

// Get reads an artifact by token. Returns ErrNotFound for unknown or
// expired tokens.
func (s *Store) Get(token string) ([]byte, error) {
	if _, err := uuid.Parse(token); err != nil {
		return nil, ErrNotFound
	}
	data, err := os.ReadFile(s.path(token))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("artifact read: %w", err)
	}
	return data, nil
}

// Cancel stops the deletion timer for a token, keeping the artifact until
// the store is closed. Reports whether a pending timer was stopped.
func (s *Store) Cancel(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.timers[token]
	if !ok {
		return false
	}
	delete(s.timers, token)
	return t.Stop()
}

// Close stops all pending timers and removes every remaining artifact.
func (s *Store) Close() {
	s.mu.Lock()
	tokens := make([]string, 0, len(s.timers))
	for token, t := range s.timers {
		t.Stop()
		tokens = append(tokens, token)
	}
	s.timers = make(map[string]*time.Timer)
	s.mu.Unlock()

	for _, token := range tokens {
		if err := os.Remove(s.path(token)); err != nil && !os.IsNotExist(err) {
			s.log.Warn("artifact cleanup failed", "token", token, "error", err)
		}
	}
}

func (s *Store) expire(token string) {
	s.mu.Lock()
	delete(s.timers, token)
	s.mu.Unlock()

	if err := os.Remove(s.path(token)); err != nil && !os.IsNotExist(err) {
		s.log.Warn("artifact expiry failed", "token", token, "error", err)
		return
	}
	s.log.Info("artifact expired", "token", token)
}

func (s *Store) path(token string) string {
	return filepath.Join(s.dir, token+Ext)
}

// DataURI encodes an artifact inline for download links.
func DataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
