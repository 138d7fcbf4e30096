// Package session provides Valkey-backed HTTP session management.
// Sessions are anonymous, identified by a secure cookie, and stored as
// JSON in Valkey with automatic TTL expiry. Each session carries the
// append-only generation history for that browser plus the raster blobs
// produced for it.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// CookieName is the name of the session cookie sent to the browser.
	CookieName = "ss_session"

	// DefaultTTL is how long a session lives in Valkey before automatic expiry.
	DefaultTTL = 24 * time.Hour

	// keyPrefix namespaces session keys in Valkey to avoid collisions.
	keyPrefix = "session:"

	// imagePrefix namespaces per-session raster blobs.
	imagePrefix = "img:"

	// idLength is the byte length of the random session ID (32 bytes = 64 hex chars).
	idLength = 32
)

// DeckRecord is one deck-generation entry in a session's history.
type DeckRecord struct {
	ID         uuid.UUID `json:"id"`
	Topic      string    `json:"topic"`
	Theme      string    `json:"theme"`
	Style      string    `json:"style"`
	SlideCount int       `json:"slide_count"`
	Token      string    `json:"token"`
	CreatedAt  time.Time `json:"created_at"`
}

// ImageItem is one stored raster belonging to an ImageRecord. Key
// addresses the blob in Valkey; Format names the decoded image format.
type ImageItem struct {
	Key    string `json:"key"`
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Source string `json:"source"`
}

// ImageRecord is one image-generation entry in a session's history.
type ImageRecord struct {
	ID          uuid.UUID   `json:"id"`
	Prompt      string      `json:"prompt"`
	FinalPrompt string      `json:"final_prompt"`
	Width       int         `json:"width"`
	Height      int         `json:"height"`
	Quality     string      `json:"quality"`
	Items       []ImageItem `json:"items"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Data holds the session payload stored in Valkey.
type Data struct {
	ID        string        `json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	Decks     []DeckRecord  `json:"decks,omitempty"`
	Images    []ImageRecord `json:"images,omitempty"`
}

// Store manages session lifecycle in Valkey.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a session store backed by the given Valkey client.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{client: client, ttl: ttl}
}

// Connect creates a Valkey client and verifies the connection with a ping.
func Connect(addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("valkey ping: %w", err)
	}

	slog.Info("valkey connected", "addr", addr)
	return client, nil
}

// LoadOrCreate returns the session for the request's cookie, creating a
// fresh one (and setting the cookie) when none exists or the stored
// session has expired.
func (s *Store) LoadOrCreate(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Data, error) {
	if cookie, err := r.Cookie(CookieName); err == nil {
		payload, err := s.client.Get(ctx, keyPrefix+cookie.Value).Bytes()
		if err == nil {
			var data Data
			if err := json.Unmarshal(payload, &data); err != nil {
				return nil, fmt.Errorf("session unmarshal: %w", err)
			}
			return &data, nil
		}
		if err != redis.Nil {
			return nil, fmt.Errorf("session get: %w", err)
		}
	}

	id, err := generateID()
	if err != nil {
		return nil, fmt.Errorf("session create: %w", err)
	}
	data := &Data{ID: id, CreatedAt: time.Now()}
	if err := s.Save(ctx, data); err != nil {
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true behind TLS in production
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.ttl.Seconds()),
	})

	return data, nil
}

// Save writes the session payload back to Valkey and resets the TTL.
func (s *Store) Save(ctx context.Context, data *Data) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("session marshal: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+data.ID, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("session store: %w", err)
	}
	return nil
}

// AppendDeck adds a deck record to the session history and persists it.
func (s *Store) AppendDeck(ctx context.Context, data *Data, rec DeckRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	data.Decks = append(data.Decks, rec)
	return s.Save(ctx, data)
}

// AppendImages adds an image record to the session history and persists it.
func (s *Store) AppendImages(ctx context.Context, data *Data, rec ImageRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	data.Images = append(data.Images, rec)
	return s.Save(ctx, data)
}

// StoreImage saves a raster blob under the session with the session's TTL
// and returns the key to serve it by.
func (s *Store) StoreImage(ctx context.Context, sessionID string, data []byte) (string, error) {
	key := uuid.NewString()
	if err := s.client.Set(ctx, imagePrefix+sessionID+":"+key, data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("image store: %w", err)
	}
	return key, nil
}

// GetImage fetches a raster blob belonging to the session. Returns nil
// with no error when the key does not exist or has expired.
func (s *Store) GetImage(ctx context.Context, sessionID, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, imagePrefix+sessionID+":"+key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("image get: %w", err)
	}
	return data, nil
}

// Destroy removes the session from Valkey and clears the cookie.
func (s *Store) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil // No cookie, nothing to destroy
	}

	s.client.Del(ctx, keyPrefix+cookie.Value)

	// Expire the cookie immediately.
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	return nil
}

// generateID creates a cryptographically random session identifier.
func generateID() (string, error) {
	b := make([]byte, idLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
