// ABOUTME: Browser session types and the Store interface backing them
// ABOUTME: A session binds a cookie ID to a backend bearer token and cached identity

package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a session doesn't exist or has expired.
var ErrNotFound = errors.New("session not found")

// Session is one authenticated browser. The bearer token is the only
// credential; user_id, username, and is_admin are cached copies of the
// identity the backend resolved at login time.
type Session struct {
	ID        string
	Token     string
	UserID    int64
	Username  string
	IsAdmin   bool
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Store defines session persistence. Get never returns expired sessions.
type Store interface {
	Create(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) (int64, error)
	Close() error
}

// NewID generates a cryptographically secure session identifier.
func NewID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}
