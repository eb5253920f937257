package server

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/jrsteele09/go-quiz-server/auth"
	"github.com/jrsteele09/go-quiz-server/internal/config"
	"github.com/jrsteele09/go-quiz-server/questions"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env          string // Environment (e.g., "DEV", "PROD")
	mux          *http.ServeMux
	routes       []string
	config       config.Config
	auth         *auth.Service
	questions    questions.Store
	loginLimiter *ipRateLimiter
	shuttingDown atomic.Bool

	loginTmpl *template.Template
	adminTmpl *template.Template
	errorTmpl *template.Template
}

func New(cfg config.Config, authService *auth.Service, store questions.Store) (*Server, error) {
	if authService == nil {
		return nil, errors.New("[Server New] auth service is required")
	}
	if store == nil {
		return nil, errors.New("[Server New] question store is required")
	}

	s := &Server{
		env:       cfg.GetEnv(),
		mux:       http.NewServeMux(),
		config:    cfg,
		auth:      authService,
		questions: store,
	}
	if cfg.GetEnableRateLimiting() {
		s.loginLimiter = newIPRateLimiter(cfg.GetLoginRatePerSecond(), cfg.GetLoginRateBurst())
	}

	var err error
	if s.loginTmpl, err = ParseTemplate("login.html"); err != nil {
		return nil, fmt.Errorf("[Server New] failed to parse login template: %w", err)
	}
	if s.adminTmpl, err = ParseTemplate("admin.html"); err != nil {
		return nil, fmt.Errorf("[Server New] failed to parse admin template: %w", err)
	}
	if s.errorTmpl, err = ParseTemplate("error.html"); err != nil {
		return nil, fmt.Errorf("[Server New] failed to parse error template: %w", err)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// SetShuttingDown makes /ready answer 503 so load balancers stop routing
// new traffic while in-flight requests drain.
func (s *Server) SetShuttingDown() {
	s.shuttingDown.Store(true)
}

// Close stops background work owned by the server.
func (s *Server) Close() {
	if s.loginLimiter != nil {
		s.loginLimiter.Close()
	}
}

func (s *Server) isDev() bool {
	return strings.EqualFold(s.env, "DEV")
}

func (s *Server) logRoutes() {
	if !s.isDev() {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Debug().Msgf("[%-19s] %s", displayMethod, path)
}
