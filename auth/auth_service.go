// Package auth issues and checks admin credentials: password login creating
// a server side session plus a signed token, token verification for
// protected routes, logout and token refresh from a live session.
package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/jrsteele09/go-quiz-server/internal/errors"
	"github.com/jrsteele09/go-quiz-server/internal/telemetry"
	"github.com/jrsteele09/go-quiz-server/sessions"
	"github.com/jrsteele09/go-quiz-server/token"
	"github.com/jrsteele09/go-quiz-server/users"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/crypto/bcrypt"
)

// Repos holds the stores the Service depends on.
type Repos struct {
	Users    users.UserRepo
	Sessions sessions.Registry
}

// LoginResult is returned by a successful Login.
type LoginResult struct {
	Session        *sessions.Session
	Token          string
	TokenExpiresAt time.Time
	User           users.PublicUser
}

// RefreshResult is returned by a successful Refresh.
type RefreshResult struct {
	Token          string
	TokenExpiresAt time.Time
	User           users.PublicUser
}

// PasswordChecker compares a plain password with a stored hash.
type PasswordChecker func(password, hash string) bool

type Service struct {
	repos     Repos
	codec     *token.Codec
	tokenTTL  time.Duration
	checkPass PasswordChecker
	dummyHash string
}

type ServiceOption func(*Service)

// WithPasswordChecker replaces the bcrypt comparison.
func WithPasswordChecker(check PasswordChecker) ServiceOption {
	return func(s *Service) {
		s.checkPass = check
	}
}

func NewService(repos Repos, codec *token.Codec, tokenTTL time.Duration, options ...ServiceOption) (*Service, error) {
	if repos.Users == nil {
		return nil, errors.New("[auth NewService] Users repo is required")
	}
	if repos.Sessions == nil {
		return nil, errors.New("[auth NewService] Sessions registry is required")
	}
	if codec == nil {
		return nil, errors.New("[auth NewService] token codec is required")
	}
	if tokenTTL <= 0 {
		return nil, fmt.Errorf("[auth NewService] token ttl must be positive, got %s", tokenTTL)
	}

	// An unknown email is compared against this hash so it costs the same as
	// a wrong password.
	random := make([]byte, 32)
	if _, err := rand.Read(random); err != nil {
		return nil, fmt.Errorf("[auth NewService] %w", err)
	}
	dummy, err := bcrypt.GenerateFromPassword(random, bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("[auth NewService] %w", err)
	}

	s := &Service{
		repos:     repos,
		codec:     codec,
		tokenTTL:  tokenTTL,
		checkPass: users.CheckPasswordHash,
		dummyHash: string(dummy),
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Login runs Received → Validated → PrincipalResolved → PasswordVerified →
// SessionIssued → TokenIssued → Responded. Unknown email and wrong password
// both return ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, req LoginRequest) (result *LoginResult, err error) {
	attempt := &loginAttempt{state: StateReceived}
	ctx, span := telemetry.StartSpan(ctx, "auth.login")
	defer func() {
		span.SetAttributes(
			attribute.String("auth.state", attempt.state.String()),
			attribute.String("auth.outcome", attempt.outcome()),
		)
		if attempt.reason == RejectInternal {
			span.RecordError(err)
			span.SetStatus(codes.Error, "login failed")
		}
		span.End()
		telemetry.LoginAttempts.WithLabelValues(attempt.outcome()).Inc()
	}()
	logger := zerolog.Ctx(ctx)

	if err := req.Validate(); err != nil {
		attempt.reject(RejectValidation)
		return nil, err
	}
	attempt.advance(StateValidated)

	user, err := s.repos.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		_ = s.checkPass(req.Password, s.dummyHash)
		if !users.IsNotFound(err) {
			attempt.reject(RejectInternal)
			return nil, apperrors.Wrapf(err, "[auth Login] lookup")
		}
		attempt.reject(RejectCredentials)
		logger.Warn().Str("reason", "unknown email").Msg("login rejected")
		return nil, ErrInvalidCredentials
	}
	attempt.advance(StatePrincipalResolved)

	if !s.checkPass(req.Password, user.PasswordHash) {
		attempt.reject(RejectCredentials)
		logger.Warn().Str("reason", "bad password").Str("user_id", user.ID).Msg("login rejected")
		return nil, ErrInvalidCredentials
	}
	attempt.advance(StatePasswordVerified)

	session, err := s.repos.Sessions.Create(ctx, sessions.Principal{UserID: user.ID, Email: user.Email, Name: user.Name})
	if err != nil {
		attempt.reject(RejectInternal)
		return nil, apperrors.Kind(apperrors.ErrInternal, fmt.Errorf("[auth Login] create session: %w", err))
	}
	attempt.advance(StateSessionIssued)

	raw, exp, err := s.codec.Sign(token.Claims{ID: user.ID, Email: user.Email, Name: user.Name}, s.tokenTTL)
	if err != nil {
		attempt.reject(RejectInternal)
		_ = s.repos.Sessions.Delete(ctx, session.ID)
		return nil, apperrors.Kind(apperrors.ErrInternal, fmt.Errorf("[auth Login] sign token: %w", err))
	}
	attempt.advance(StateTokenIssued)

	logger.Info().Str("user_id", user.ID).Msg("login succeeded")
	attempt.advance(StateResponded)
	return &LoginResult{
		Session:        session,
		Token:          raw,
		TokenExpiresAt: exp,
		User:           user.Public(),
	}, nil
}

// VerifyRequest checks a token without touching the credential store, so a
// token outlives changes to its principal until it expires.
func (s *Service) VerifyRequest(ctx context.Context, raw string) (*users.PublicUser, error) {
	if raw == "" {
		return nil, ErrUnauthenticated
	}
	claims, err := s.codec.Verify(raw)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Str("reason", token.Cause(err)).Msg("token rejected")
		return nil, apperrors.Kind(ErrUnauthenticated, err)
	}
	return &users.PublicUser{ID: claims.ID, Email: claims.Email, Name: claims.Name}, nil
}

// Logout removes the session. Tokens already issued stay valid until they
// expire.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.repos.Sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("[auth Logout] %w", err)
	}
	return nil
}

// Refresh mints a new token from a live session.
func (s *Service) Refresh(ctx context.Context, sessionID string) (*RefreshResult, error) {
	if sessionID == "" {
		return nil, ErrUnauthenticated
	}
	session, err := s.repos.Sessions.Get(ctx, sessionID)
	if errors.Is(err, sessions.ErrNotFound) {
		zerolog.Ctx(ctx).Warn().Str("reason", "session not found").Msg("refresh rejected")
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, apperrors.Kind(apperrors.ErrInternal, fmt.Errorf("[auth Refresh] %w", err))
	}

	user := users.PublicUser{ID: session.UserID, Email: session.Email, Name: session.Name}
	raw, exp, err := s.codec.Sign(token.Claims{ID: user.ID, Email: user.Email, Name: user.Name}, s.tokenTTL)
	if err != nil {
		return nil, apperrors.Kind(apperrors.ErrInternal, fmt.Errorf("[auth Refresh] sign token: %w", err))
	}
	return &RefreshResult{Token: raw, TokenExpiresAt: exp, User: user}, nil
}
