package config

const (
	loginRatePerSecondVar     = "LOGIN_RATE_PER_SECOND"
	loginRateBurstVar         = "LOGIN_RATE_BURST"
	adminFetchFailRedirectVar = "ADMIN_FETCH_FAILURE_REDIRECT"
	trustProxyHeadersVar      = "TRUST_PROXY_HEADERS"
)

type SecurityConfig interface {
	GetSecureCookies() bool
	GetEnableRateLimiting() bool
	GetLoginRatePerSecond() float64
	GetLoginRateBurst() int
	GetAdminFetchFailureRedirect() bool
	GetTrustProxyHeaders() bool
}

type Security struct{}

var _ SecurityConfig = Security{}

// GetSecureCookies reports whether cookies carry the Secure flag.
func (Security) GetSecureCookies() bool {
	return !EnvVars{}.IsDev()
}

func (s Security) GetEnableRateLimiting() bool {
	return s.GetLoginRatePerSecond() > 0
}

func (Security) GetLoginRatePerSecond() float64 {
	return GetFloat(loginRatePerSecondVar, 5)
}

func (Security) GetLoginRateBurst() int {
	return GetInt(loginRateBurstVar, 10)
}

// GetAdminFetchFailureRedirect selects the legacy admin page behaviour where a
// failed question fetch redirects to /login instead of answering 502.
func (Security) GetAdminFetchFailureRedirect() bool {
	return GetBool(adminFetchFailRedirectVar, false)
}

// GetTrustProxyHeaders reports whether X-Forwarded-For identifies the client.
// Enable only behind a proxy that appends the peer address to the header.
func (Security) GetTrustProxyHeaders() bool {
	return GetBool(trustProxyHeadersVar, false)
}
