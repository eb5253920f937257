package sessions

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	apperrors "github.com/jrsteele09/go-quiz-server/internal/errors"
)

// ErrNotFound is returned for ids that were never created, were deleted or
// have expired. The three cases are indistinguishable to callers.
var ErrNotFound = fmt.Errorf("session %w", apperrors.ErrNotFound)

// Session is the server side record of one successful login.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Principal is the identity a session is created for.
type Principal struct {
	UserID string
	Email  string
	Name   string
}

// Registry owns session records. Implementations are safe for concurrent use.
type Registry interface {
	// Create stores a new session for p with a fresh unguessable id.
	Create(ctx context.Context, p Principal) (*Session, error)

	// Get returns ErrNotFound for unknown and expired ids.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete is idempotent.
	Delete(ctx context.Context, id string) error

	Close() error
}

// GenerateID returns 32 random bytes, base64url encoded.
func GenerateID() (string, error) {
	const size = 32

	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("[sessions GenerateID] %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// NewSession builds a record for p expiring ttl after now.
func NewSession(p Principal, now time.Time, ttl time.Duration) (*Session, error) {
	id, err := GenerateID()
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:        id,
		UserID:    p.UserID,
		Email:     p.Email,
		Name:      p.Name,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}, nil
}
