package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-quiz-server/auth"
	"github.com/jrsteele09/go-quiz-server/internal/config"
	"github.com/jrsteele09/go-quiz-server/internal/logger"
	"github.com/jrsteele09/go-quiz-server/internal/telemetry"
	"github.com/jrsteele09/go-quiz-server/questions"
	"github.com/jrsteele09/go-quiz-server/questions/pgstore"
	fakequestionstore "github.com/jrsteele09/go-quiz-server/questions/repofake"
	"github.com/jrsteele09/go-quiz-server/questions/webhook"
	"github.com/jrsteele09/go-quiz-server/server"
	"github.com/jrsteele09/go-quiz-server/sessions"
	"github.com/jrsteele09/go-quiz-server/sessions/redisrepo"
	"github.com/jrsteele09/go-quiz-server/token"
	"github.com/jrsteele09/go-quiz-server/users"
	fakeuserrepo "github.com/jrsteele09/go-quiz-server/users/repofake"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
}

// closers run in reverse order of registration during shutdown.
type closers []func(context.Context) error

func (c *closers) add(fn func(context.Context) error) { *c = append(*c, fn) }

func (c closers) closeAll(ctx context.Context) {
	for i := len(c) - 1; i >= 0; i-- {
		if err := c[i](ctx); err != nil {
			log.Err(err).Msg("shutdown step failed")
		}
	}
}

func run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Setup(cfg.GetLogLevel(), cfg.GetEnv())
	displayAppname(cfg.GetAppName())

	var cleanup closers
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GetShutdownTimeout())
		defer cancel()
		cleanup.closeAll(shutdownCtx)
	}()

	if cfg.GetTracingEnabled() {
		tp, err := telemetry.InitTracing(ctx, cfg)
		if err != nil {
			return err
		}
		cleanup.add(tp.Shutdown)
	}
	if cfg.GetProfilingEnabled() {
		profiler, err := telemetry.InitProfiling(cfg)
		if err != nil {
			return err
		}
		cleanup.add(func(context.Context) error { return profiler.Stop() })
	}

	userRepo, err := seedUsers(ctx, cfg)
	if err != nil {
		return err
	}

	registry, err := newSessionRegistry(ctx, cfg)
	if err != nil {
		return err
	}
	cleanup.add(func(context.Context) error { return registry.Close() })

	store, closeStore, err := newQuestionStore(ctx, cfg)
	if err != nil {
		return err
	}
	cleanup.add(func(context.Context) error { return closeStore() })

	codec, err := token.NewCodec(cfg.GetJWTSecret())
	if err != nil {
		return err
	}
	authService, err := auth.NewService(auth.Repos{Users: userRepo, Sessions: registry}, codec, cfg.GetTokenTTL())
	if err != nil {
		return err
	}

	srv, err := server.New(cfg, authService, store)
	if err != nil {
		return err
	}
	cleanup.add(func(context.Context) error { srv.Close(); return nil })

	httpServer := &http.Server{
		Addr:              cfg.GetPort(),
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() { serveErr <- listenAndServe(httpServer) }()

	select {
	case err := <-serveErr:
		return err
	case sig := <-waitForStopSignal():
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	srv.SetShuttingDown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GetShutdownTimeout())
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	log.Info().Msg("Server stopped")
	return nil
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func seedUsers(ctx context.Context, cfg config.Config) (users.UserRepo, error) {
	repo := fakeuserrepo.NewFakeUserRepo()

	var seeds []users.SeedUser
	switch path := cfg.GetSeedUsersFile(); {
	case path != "":
		loaded, err := users.LoadSeedFile(path)
		if err != nil {
			return nil, err
		}
		seeds = loaded
	case cfg.IsDev():
		seeds = users.DefaultSeedUsers()
	default:
		log.Warn().Msg("no SEED_USERS_FILE set, nobody can sign in")
	}

	if err := users.Seed(ctx, repo, seeds); err != nil {
		return nil, err
	}
	log.Info().Int("count", len(seeds)).Msg("seeded principals")
	return repo, nil
}

func newSessionRegistry(ctx context.Context, cfg config.Config) (sessions.Registry, error) {
	switch cfg.GetSessionStore() {
	case config.SessionStoreRedis:
		return redisrepo.Dial(ctx, cfg.GetRedisAddr(), cfg.GetRedisPassword(), cfg.GetSessionTTL())
	default:
		return sessions.NewMemoryRegistry(cfg.GetSessionTTL(),
			sessions.WithSweepInterval(cfg.GetSessionSweepInterval())), nil
	}
}

func newQuestionStore(ctx context.Context, cfg config.Config) (questions.Store, func() error, error) {
	noop := func() error { return nil }
	backend := cfg.GetQuestionStore()

	var (
		store   questions.Store
		closeFn = noop
	)
	switch backend {
	case config.QuestionStoreWebhook:
		store = webhook.New(cfg.GetQuestionsWebhookURL())
	case config.QuestionStorePostgres:
		pg, err := pgstore.Open(cfg.GetDatabaseURL())
		if err != nil {
			return nil, nil, err
		}
		if err := pg.Migrate(ctx); err != nil {
			_ = pg.Close()
			return nil, nil, err
		}
		store, closeFn = pg, pg.Close
	default:
		log.Warn().Msg("using the in-memory question store, questions are lost on restart")
		store = fakequestionstore.NewFakeQuestionStore()
	}
	return questions.Instrument(store, backend, cfg.GetQuestionStoreTimeout()), closeFn, nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}

