package config

import "time"

const (
	jwtSecretVar            = "JWT_SECRET"
	tokenTTLVar             = "TOKEN_TTL"
	sessionTTLVar           = "SESSION_TTL"
	sessionSweepIntervalVar = "SESSION_SWEEP_INTERVAL"
)

type AuthConfig interface {
	GetJWTSecret() string
	GetTokenTTL() time.Duration
	GetSessionTTL() time.Duration
	GetSessionSweepInterval() time.Duration
}

// Auth holds the token signing secret resolved once at Load.
type Auth struct {
	secret string
}

var _ AuthConfig = Auth{}

func (a Auth) GetJWTSecret() string {
	return a.secret
}

func (Auth) GetTokenTTL() time.Duration {
	return GetDuration(tokenTTLVar, 1*time.Hour)
}

func (Auth) GetSessionTTL() time.Duration {
	return GetDuration(sessionTTLVar, 7*24*time.Hour) // 7 days
}

// GetSessionSweepInterval returns how often expired sessions are reaped in
// the background. Zero disables the sweeper; expiry is then lazy only.
func (Auth) GetSessionSweepInterval() time.Duration {
	return GetDuration(sessionSweepIntervalVar, 0)
}
