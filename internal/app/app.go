package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/mcqapp/quiz-service/internal/auth"
	"github.com/mcqapp/quiz-service/internal/auth/jwt"
	"github.com/mcqapp/quiz-service/internal/config"
	"github.com/mcqapp/quiz-service/internal/history"
	"github.com/mcqapp/quiz-service/internal/logging"
	"github.com/mcqapp/quiz-service/internal/question"
	"github.com/mcqapp/quiz-service/internal/server"
	"github.com/mcqapp/quiz-service/internal/session"
	"github.com/mcqapp/quiz-service/internal/store"
)

// Application aggregates shared infrastructure (stores, services, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	http   *http.Server
	reaper *session.Reaper

	bgCancels []context.CancelFunc
}

// New bootstraps config, logger, flat-file stores, and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	if cfg.Security.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be configured")
	}

	// Question bank: loaded once, defaults seeded when the file is missing
	// or unreadable.
	questionStore := question.NewStore(cfg.Storage.QuestionsPath(), logger)
	bank := questionStore.Load()
	questionSvc := question.NewService(bank)
	logger.Info().Int("categories", len(bank)).Str("path", cfg.Storage.QuestionsPath()).Msg("question bank loaded")

	userStore := store.NewUserStore(cfg.Storage.UsersPath(), logger)

	authSvc := auth.NewService(userStore, auth.ServiceOptions{
		TokenConfig: jwt.TokenConfig{
			AccessSecret:  []byte(cfg.Security.JWTSecret),
			RefreshSecret: []byte(cfg.Security.JWTSecret + "_refresh"),
			Issuer:        cfg.Name,
		},
	}, logger)

	recorder := history.NewRecorder(userStore, logger)

	sessionMgr := session.NewManager(cfg.Quiz.SessionTTL, logger)
	sessionSvc := session.NewService(questionSvc, sessionMgr, recorder, session.ServiceOptions{
		ShuffleOptions: cfg.Quiz.ShuffleOptions,
	}, logger)

	handlers := server.Handlers{
		Auth:      auth.NewHTTPHandlers(authSvc, logger),
		AuthSvc:   authSvc,
		Questions: question.NewHTTPHandler(questionSvc, logger),
		Sessions:  session.NewHTTPHandler(sessionSvc, logger),
		Play:      session.NewWSHandler(sessionSvc, authSvc, logger),
		History:   history.NewHTTPHandler(recorder, logger),
	}

	return &Application{
		cfg:       cfg,
		logger:    logger,
		http:      server.NewHTTPServer(cfg, logger, handlers),
		reaper:    session.NewReaper(sessionMgr, cfg.Quiz.ReapInterval, logger),
		bgCancels: make([]context.CancelFunc, 0, 1),
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	a.startBackgroundWorkers(ctx)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	for _, cancel := range a.bgCancels {
		cancel()
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}

func (a *Application) startBackgroundWorkers(ctx context.Context) {
	if a.reaper != nil {
		bgCtx, cancel := context.WithCancel(ctx)
		a.bgCancels = append(a.bgCancels, cancel)
		go func() {
			if err := a.reaper.Run(bgCtx); err != nil && err != context.Canceled {
				a.logger.Warn().Err(err).Msg("session reaper stopped")
			}
		}()
	}
}
