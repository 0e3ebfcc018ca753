package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// Wizard sessions expire after half an hour of inactivity. Every save
// refreshes the TTL, so an active guest never times out mid-flow.
const sessionTTL = 30 * time.Minute

// ErrSessionNotFound is returned when a session id is unknown or expired.
var ErrSessionNotFound = errors.New("booking session not found or expired")

// SessionStore persists wizard state in Redis between requests. The store
// holds only in-flight drafts; nothing here outlives the flow.
type SessionStore struct {
	Client *redis.Client
}

func sessionKey(id string) string {
	return "booking:session:" + id
}

// Create stores a fresh wizard and returns its session id.
func (s *SessionStore) Create(ctx context.Context, w *Wizard) (string, error) {
	id := uuid.New().String()
	if err := s.Save(ctx, id, w); err != nil {
		return "", err
	}
	return id, nil
}

// Get loads the wizard for a session id.
func (s *SessionStore) Get(ctx context.Context, id string) (*Wizard, error) {
	data, err := s.Client.Get(ctx, sessionKey(id)).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load booking session: %w", err)
	}
	var w Wizard
	if err := json.Unmarshal([]byte(data), &w); err != nil {
		return nil, fmt.Errorf("failed to decode booking session: %w", err)
	}
	return &w, nil
}

// Save writes the wizard back and refreshes the session TTL.
func (s *SessionStore) Save(ctx context.Context, id string, w *Wizard) error {
	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("failed to encode booking session: %w", err)
	}
	if err := s.Client.Set(ctx, sessionKey(id), data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to store booking session: %w", err)
	}
	return nil
}

// Delete drops a session once the flow completes or is abandoned.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.Client.Del(ctx, sessionKey(id)).Err()
}
