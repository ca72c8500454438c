package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mverdejo/hangman-backend/internal/config"
	"github.com/mverdejo/hangman-backend/internal/httpapi"
	"github.com/mverdejo/hangman-backend/internal/hub"
	"github.com/mverdejo/hangman-backend/internal/room"
	"github.com/mverdejo/hangman-backend/internal/store"
	"github.com/mverdejo/hangman-backend/internal/words"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	var st *store.Store
	var sink room.ResultSink
	if cfg.DatabaseURL != "" {
		st, err = store.Open(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("open store", zap.Error(err))
		}
		sink = resultSink{store: st, logger: logger}
	} else {
		logger.Info("DATABASE_URL not set, game results will not be recorded")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	h := hub.NewHub(ctx, sink)
	reg := words.NewRegistry(
		words.NewEnglishProvider(cfg.EnglishAPIURL, cfg.EnglishAPIKey),
		words.NewSpanishProvider(cfg.SpanishAPIURL, cfg.SpanishAPIToken),
	)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: httpapi.SetupRoutes(h, reg, st, logger),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
	logger.Info("server stopped")
}

// resultSink writes finished games to the store; failures are logged and
// dropped so gameplay never depends on the database.
type resultSink struct {
	store  *store.Store
	logger *zap.Logger
}

func (s resultSink) Record(res room.Result) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := s.store.SaveResult(ctx, store.GameResult{
		Code:         res.Code,
		Player:       res.Player,
		Language:     string(res.Language),
		Word:         res.Word,
		WrongGuesses: res.WrongGuesses,
		Won:          res.Won,
	})
	if err != nil {
		s.logger.Warn("record game result", zap.Error(err))
	}
}
