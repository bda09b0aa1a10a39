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

	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/padraicbc/signupapp/config"
	"github.com/padraicbc/signupapp/db"
	"github.com/padraicbc/signupapp/handlers"
	applog "github.com/padraicbc/signupapp/logger"
	"github.com/padraicbc/signupapp/ui"
	"github.com/padraicbc/signupapp/users"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run owns every deferred cleanup; main exits only after it returns.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := applog.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handle := db.NewHandle(cfg, db.WithLogger(logger))
	defer func() {
		if err := handle.Close(); err != nil {
			logger.Error("close database", zap.Error(err))
		}
	}()

	bdb, err := handle.DB(ctx)
	if err != nil {
		logger.Error("database unavailable", zap.Error(err))
		return fmt.Errorf("database unavailable: %w", err)
	}
	if err := db.Migrate(ctx, bdb.DB, logger); err != nil {
		logger.Error("migrations failed", zap.Error(err))
		return fmt.Errorf("migrations failed: %w", err)
	}

	renderer, err := ui.NewRenderer()
	if err != nil {
		return err
	}

	svc := users.NewService(users.NewStore(handle), logger)
	h := handlers.New(svc, handle, logger, cfg.SignupRedirect)
	e := handlers.NewEcho(h, renderer, logger)

	s := &http.Server{
		Addr:         cfg.Port,
		Handler:      e,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	errc := make(chan error, 1)
	if cfg.Production() && len(cfg.TLSDomains) > 0 {
		autoTLS := &autocert.Manager{
			Prompt:     autocert.AcceptTOS,
			Cache:      autocert.DirCache(".cache"),
			HostPolicy: autocert.HostWhitelist(cfg.TLSDomains...),
		}
		s.Addr = ":443"
		s.TLSConfig = autoTLS.TLSConfig()
		logger.Info("starting server", zap.String("mode", "tls"), zap.Strings("domains", cfg.TLSDomains))
		go func() { errc <- s.ListenAndServeTLS("", "") }()
	} else {
		logger.Info("starting server", zap.String("mode", cfg.Env), zap.String("addr", cfg.Port))
		go func() { errc <- s.ListenAndServe() }()
	}

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server exited", zap.Error(err))
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
			return err
		}
	}
	return nil
}
