package auth

// LoginState is the furthest step a login attempt reached.
type LoginState int

const (
	StateReceived LoginState = iota
	StateValidated
	StatePrincipalResolved
	StatePasswordVerified
	StateSessionIssued
	StateTokenIssued
	StateResponded
)

var stateNames = [...]string{
	StateReceived:          "received",
	StateValidated:         "validated",
	StatePrincipalResolved: "principal_resolved",
	StatePasswordVerified:  "password_verified",
	StateSessionIssued:     "session_issued",
	StateTokenIssued:       "token_issued",
	StateResponded:         "responded",
}

func (s LoginState) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// RejectReason says why a login attempt stopped short of StateResponded.
type RejectReason string

const (
	RejectNone        RejectReason = ""
	RejectValidation  RejectReason = "validation"
	RejectCredentials RejectReason = "invalid_credentials"
	RejectInternal    RejectReason = "internal"
)

type loginAttempt struct {
	state  LoginState
	reason RejectReason
}

func (a *loginAttempt) advance(s LoginState) { a.state = s }

func (a *loginAttempt) reject(r RejectReason) { a.reason = r }

// outcome is the auth_login_attempts_total label.
func (a *loginAttempt) outcome() string {
	if a.reason == RejectNone {
		return "success"
	}
	return string(a.reason)
}
