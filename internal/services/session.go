package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// SessionDuration is 7 days
	SessionDuration = 7 * 24 * time.Hour
	// SessionKeyPrefix is the Redis key prefix for sessions
	SessionKeyPrefix = "session:"
	// UserSessionKeyPrefix is the Redis key prefix for user->session mapping
	UserSessionKeyPrefix = "user_session:"
)

// SessionService stores opaque bearer tokens in Redis. It is the concrete
// identity resolver behind the authorization guard: a valid token maps to a
// user ID, anything else means unauthenticated.
type SessionService struct {
	Redis *redis.Client
}

func NewSessionService(rdb *redis.Client) *SessionService {
	return &SessionService{Redis: rdb}
}

// Create creates a new session for a user. An existing session for the same
// user is invalidated first so the 7-day timer resets from the current login.
func (s *SessionService) Create(ctx context.Context, userID string) (string, error) {
	s.InvalidateUser(ctx, userID)

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	sessionToken := base64.URLEncoding.EncodeToString(tokenBytes)

	sessionKey := SessionKeyPrefix + sessionToken
	userSessionKey := UserSessionKeyPrefix + userID

	if err := s.Redis.Set(ctx, sessionKey, userID, SessionDuration).Err(); err != nil {
		return "", err
	}
	if err := s.Redis.Set(ctx, userSessionKey, sessionToken, SessionDuration).Err(); err != nil {
		return "", err
	}

	return sessionToken, nil
}

// Validate checks a session token and returns the user ID it belongs to.
func (s *SessionService) Validate(ctx context.Context, sessionToken string) (string, bool, error) {
	if sessionToken == "" {
		return "", false, nil
	}

	userID, err := s.Redis.Get(ctx, SessionKeyPrefix+sessionToken).Result()
	if err != nil {
		return "", false, nil
	}
	return userID, true, nil
}

// Refresh extends the session expiration by 7 days from now.
func (s *SessionService) Refresh(ctx context.Context, sessionToken string) error {
	if sessionToken == "" {
		return fmt.Errorf("session token is empty")
	}

	sessionKey := SessionKeyPrefix + sessionToken
	userID, err := s.Redis.Get(ctx, sessionKey).Result()
	if err != nil {
		return err
	}

	if err := s.Redis.Expire(ctx, sessionKey, SessionDuration).Err(); err != nil {
		return err
	}
	return s.Redis.Expire(ctx, UserSessionKeyPrefix+userID, SessionDuration).Err()
}

// Invalidate removes a session.
func (s *SessionService) Invalidate(ctx context.Context, sessionToken string) error {
	if sessionToken == "" {
		return nil
	}

	sessionKey := SessionKeyPrefix + sessionToken
	userID, err := s.Redis.Get(ctx, sessionKey).Result()
	if err == nil && userID != "" {
		s.Redis.Del(ctx, UserSessionKeyPrefix+userID)
	}
	return s.Redis.Del(ctx, sessionKey).Err()
}

// InvalidateUser invalidates the user's current session (useful when the
// password changes).
func (s *SessionService) InvalidateUser(ctx context.Context, userID string) error {
	userSessionKey := UserSessionKeyPrefix + userID

	sessionToken, err := s.Redis.Get(ctx, userSessionKey).Result()
	if err == nil && sessionToken != "" {
		s.Redis.Del(ctx, SessionKeyPrefix+sessionToken)
	}
	return s.Redis.Del(ctx, userSessionKey).Err()
}
