// Package rediscache decorates the read session repository with a
// short-TTL Redis cache. Staleness within the TTL only delays an
// invalidation; it can never validate a session that was never issued.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/fandangolas/heimdall/internal/application/ports"
	"github.com/fandangolas/heimdall/internal/domain"
)

// DefaultTTL bounds how long an invalidated session can still validate.
const DefaultTTL = 30 * time.Second

type cachedSession struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	Active      bool      `json:"active"`
}

// SessionCache is a cache-aside ReadSessionRepository decorator.
type SessionCache struct {
	inner  ports.ReadSessionRepository
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

func NewSessionCache(inner ports.ReadSessionRepository, client *redis.Client, ttl time.Duration, log zerolog.Logger) *SessionCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SessionCache{inner: inner, client: client, ttl: ttl, log: log}
}

func (c *SessionCache) FindByID(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	key := "session:" + id.String()

	raw, err := c.client.Get(ctx, key).Result()
	if err == nil {
		if session, decodeErr := decode([]byte(raw)); decodeErr == nil {
			return session, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		// Cache trouble must not break validation; fall through to the store.
		c.log.Warn().Err(err).Str("session_id", id.String()).Msg("session cache read failed")
	}

	session, err := c.inner.FindByID(ctx, id)
	if err != nil || session == nil {
		return session, err
	}

	if payload, encodeErr := encode(session); encodeErr == nil {
		if setErr := c.client.Set(ctx, key, payload, c.ttl).Err(); setErr != nil {
			c.log.Warn().Err(setErr).Str("session_id", id.String()).Msg("session cache write failed")
		}
	}
	return session, nil
}

func encode(s *domain.Session) ([]byte, error) {
	return json.Marshal(cachedSession{
		ID:          s.ID.String(),
		UserID:      s.UserID.String(),
		Email:       s.Email.Value(),
		Permissions: s.Permissions,
		CreatedAt:   s.CreatedAt,
		ExpiresAt:   s.ExpiresAt,
		Active:      s.Active,
	})
}

func decode(raw []byte) (*domain.Session, error) {
	var c cachedSession
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	id, err := domain.ParseSessionID(c.ID)
	if err != nil {
		return nil, err
	}
	userID, err := domain.ParseUserID(c.UserID)
	if err != nil {
		return nil, err
	}
	email, err := domain.NewEmail(c.Email)
	if err != nil {
		return nil, err
	}
	return &domain.Session{
		ID:          id,
		UserID:      userID,
		Email:       email,
		Permissions: c.Permissions,
		CreatedAt:   c.CreatedAt,
		ExpiresAt:   c.ExpiresAt,
		Active:      c.Active,
	}, nil
}

var _ ports.ReadSessionRepository = (*SessionCache)(nil)
