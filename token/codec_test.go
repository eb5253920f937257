package token_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/go-quiz-server/internal/errors"
	"github.com/jrsteele09/go-quiz-server/token"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newCodec(t *testing.T, c *clock, key string) *token.Codec {
	t.Helper()
	codec, err := token.NewCodec(key, token.WithNowTime(c.now))
	require.NoError(t, err)
	return codec
}

func testClaims() token.Claims {
	return token.Claims{ID: "user1", Email: "test@example.com", Name: "Test User"}
}

func TestRoundTrip(t *testing.T) {
	c := &clock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	codec := newCodec(t, c, secret)

	raw, exp, err := codec.Sign(testClaims(), time.Hour)
	require.NoError(t, err)
	require.Equal(t, c.t.Add(time.Hour), exp)

	c.t = c.t.Add(59 * time.Minute)
	claims, err := codec.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "user1", claims.ID)
	require.Equal(t, "test@example.com", claims.Email)
	require.Equal(t, "Test User", claims.Name)
	require.NotEmpty(t, claims.RegisteredClaims.ID)
}

func TestExpired(t *testing.T) {
	c := &clock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	codec := newCodec(t, c, secret)

	raw, _, err := codec.Sign(testClaims(), time.Hour)
	require.NoError(t, err)

	c.t = c.t.Add(time.Hour + time.Second)
	_, err = codec.Verify(raw)
	require.ErrorIs(t, err, token.ErrInvalidToken)
	require.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	require.Equal(t, "expired", token.Cause(err))
}

func TestWrongSecret(t *testing.T) {
	c := &clock{t: time.Now()}
	raw, _, err := newCodec(t, c, secret).Sign(testClaims(), time.Hour)
	require.NoError(t, err)

	_, err = newCodec(t, c, strings.Repeat("x", 32)).Verify(raw)
	require.ErrorIs(t, err, token.ErrInvalidToken)
	require.Equal(t, "signature", token.Cause(err))
}

func TestTampered(t *testing.T) {
	c := &clock{t: time.Now()}
	codec := newCodec(t, c, secret)
	raw, _, err := codec.Sign(testClaims(), time.Hour)
	require.NoError(t, err)

	parts := strings.Split(raw, ".")
	forged, _, err := newCodec(t, c, "another-secret-another-secret-xx").Sign(
		token.Claims{ID: "user2", Email: "admin@gmail.com", Name: "Admin User"}, time.Hour)
	require.NoError(t, err)
	forgedParts := strings.Split(forged, ".")
	tampered := parts[0] + "." + forgedParts[1] + "." + parts[2]

	_, err = codec.Verify(tampered)
	require.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestMalformed(t *testing.T) {
	codec := newCodec(t, &clock{t: time.Now()}, secret)
	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := codec.Verify(raw)
		require.ErrorIs(t, err, token.ErrInvalidToken, raw)
	}
}

func TestRejectsNoneAlgorithm(t *testing.T) {
	c := &clock{t: time.Now()}
	claims := testClaims()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(c.t),
		ExpiresAt: jwt.NewNumericDate(c.t.Add(time.Hour)),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newCodec(t, c, secret).Verify(raw)
	require.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestSignIsUnique(t *testing.T) {
	codec := newCodec(t, &clock{t: time.Now()}, secret)
	a, _, err := codec.Sign(testClaims(), time.Hour)
	require.NoError(t, err)
	b, _, err := codec.Sign(testClaims(), time.Hour)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestNewCodecRequiresSecret(t *testing.T) {
	_, err := token.NewCodec("")
	require.Error(t, err)
}
