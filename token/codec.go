package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/go-quiz-server/internal/errors"
)

// ErrInvalidToken covers malformed, forged, wrongly signed and expired
// tokens. Callers must not tell these apart in responses; use Cause for logs.
var ErrInvalidToken = fmt.Errorf("invalid token: %w", apperrors.ErrUnauthenticated)

// Claims carried by a session token.
type Claims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session tokens.
type Codec struct {
	signer Signer
	now    func() time.Time
}

type Option func(*Codec)

// WithNowTime overrides the clock used for iat, exp and expiry checks.
func WithNowTime(now func() time.Time) Option {
	return func(c *Codec) {
		c.now = now
	}
}

// NewCodec returns an HS256 codec for secret.
func NewCodec(secret string, opts ...Option) (*Codec, error) {
	signer, err := NewHMACSigner(secret)
	if err != nil {
		return nil, err
	}
	c := &Codec{signer: signer, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Sign issues a token for claims valid for ttl. Every call gets a fresh jti.
func (c *Codec) Sign(claims Claims, ttl time.Duration) (string, time.Time, error) {
	if ttl <= 0 {
		return "", time.Time{}, fmt.Errorf("[token Sign] ttl must be positive, got %s", ttl)
	}
	now := c.now()
	expiresAt := now.Add(ttl)
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		ID:        uuid.NewString(),
	}
	raw, err := c.signer.Sign(claims)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("[token Sign] %w", err)
	}
	return raw, expiresAt, nil
}

// Verify parses raw and checks signature, algorithm and expiry.
func (c *Codec) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, c.signer.GetVerificationKey,
		jwt.WithValidMethods([]string{c.signer.GetSigningMethod().Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return nil, invalid(err)
	}
	if !parsed.Valid {
		return nil, invalid(errors.New("token not valid"))
	}
	if claims.ID == "" {
		return nil, invalid(errors.New("missing id claim"))
	}
	return claims, nil
}

// Cause returns a short reason for a verification failure, for logs only.
func Cause(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, jwt.ErrTokenExpired):
		return "expired"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "signature"
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return "unverifiable"
	case errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		return "not yet valid"
	default:
		return "invalid"
	}
}

func invalid(cause error) error {
	return apperrors.Kind(ErrInvalidToken, cause)
}
