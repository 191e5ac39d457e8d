package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/decision-service/internal/core/domain"
)

const defaultKeyPrefix = "sess"

// SessionStore keeps sessions in Redis with the session's remaining lifetime
// as key TTL.
// Key format: <prefix>:<token>
type SessionStore struct {
	client *redis.Client
	prefix string
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
// An empty prefix falls back to "sess".
func NewSessionStore(client *redis.Client, prefix string) *SessionStore {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &SessionStore{client: client, prefix: prefix}
}

type sessionRecord struct {
	Identifier string `json:"usuario"`
	Role       string `json:"tipo"`
	CreatedAt  int64  `json:"created_at"`
	ExpiresAt  int64  `json:"expires_at,omitempty"`
}

// Save writes the session. A session without ExpiresAt never expires.
func (s *SessionStore) Save(ctx context.Context, sess *domain.Session) error {
	rec := sessionRecord{
		Identifier: sess.Identifier,
		Role:       string(sess.Role),
		CreatedAt:  sess.CreatedAt.Unix(),
	}
	var ttl time.Duration
	if !sess.ExpiresAt.IsZero() {
		rec.ExpiresAt = sess.ExpiresAt.Unix()
		ttl = time.Until(sess.ExpiresAt)
		if ttl <= 0 {
			return nil
		}
	}

	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sess.Token), b, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, token string) (*domain.Session, error) {
	b, err := s.client.Get(ctx, s.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	var rec sessionRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}

	sess := &domain.Session{
		Token:      token,
		Identifier: rec.Identifier,
		Role:       domain.Role(rec.Role),
		CreatedAt:  time.Unix(rec.CreatedAt, 0).UTC(),
	}
	if rec.ExpiresAt != 0 {
		sess.ExpiresAt = time.Unix(rec.ExpiresAt, 0).UTC()
	}
	return sess, nil
}

// Delete removes the session key. Missing keys are not an error.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (s *SessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *SessionStore) key(token string) string {
	return fmt.Sprintf("%s:%s", s.prefix, token)
}
