// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package artifact

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func testStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := NewStore(log, t.TempDir(), ttl)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestPutAndGet(t *testing.T) {
	s := testStore(t, time.Minute)

	data := []byte("deck bytes")
	token, err := s.Put(data)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(token)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("artifact round-trip mismatch")
	}
}

func TestGetUnknownToken(t *testing.T) {
	s := testStore(t, time.Minute)

	if _, err := s.Get("3b8f6d1e-0000-4000-8000-000000000000"); err != ErrNotFound {
		t.Errorf("unknown token: err = %v, want ErrNotFound", err)
	}
	// Non-UUID tokens are rejected before touching the filesystem.
	if _, err := s.Get("../../etc/passwd"); err != ErrNotFound {
		t.Errorf("bad token: err = %v, want ErrNotFound", err)
	}
}

func TestTimerDeletesArtifact(t *testing.T) {
	s := testStore(t, 20*time.Millisecond)

	token, err := s.Put([]byte("short-lived"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := s.Get(token); err == ErrNotFound {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("artifact still present after TTL")
}

func TestCancelKeepsArtifact(t *testing.T) {
	s := testStore(t, 20*time.Millisecond)

	token, err := s.Put([]byte("pinned"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !s.Cancel(token) {
		t.Fatal("Cancel reported no pending timer")
	}

	time.Sleep(100 * time.Millisecond)
	if _, err := s.Get(token); err != nil {
		t.Errorf("artifact deleted despite cancel: %v", err)
	}

	if s.Cancel(token) {
		t.Error("second Cancel should report nothing to stop")
	}
}

func TestCloseRemovesArtifacts(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := NewStore(log, t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	token, err := s.Put([]byte("doomed"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	s.Close()

	if _, err := s.Get(token); err != ErrNotFound {
		t.Errorf("artifact survived Close: %v", err)
	}
}

func TestDataURI(t *testing.T) {
	got := DataURI("application/test", []byte{1, 2, 3})
	if !strings.HasPrefix(got, "data:application/test;base64,") {
		t.Errorf("DataURI = %q", got)
	}
}
