package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes
	RouteLogin       = "/login"
	RouteLogout      = "/logout"
	RouteAuthRefresh = "/auth/refresh"

	// Admin Routes
	RouteAdmin           = "/admin"
	RouteAdminQuestions  = "/admin/questions"
	RouteAdminQuestionID = "/admin/questions/{questionId}"

	// Operational Routes
	RouteHealth  = "/health"
	RouteReady   = "/ready"
	RouteMetrics = "/metrics"
)

// Cookie names
const (
	cookieSessionID = "sessionId"
	cookieToken     = "token"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"
)
