package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mverdejo/hangman-backend/internal/hub"
	"github.com/mverdejo/hangman-backend/internal/store"
	"github.com/mverdejo/hangman-backend/internal/words"
	"github.com/mverdejo/hangman-backend/internal/ws"
)

func SetupRoutes(h *hub.Hub, reg *words.Registry, st *store.Store, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Get("/api/word", WordProxy(reg, logger))

	r.Post("/games", CreateGame(h, reg, logger))
	r.Get("/games/{code}", GetGame(h))
	r.Post("/games/{code}/guess", GuessLetter(h))
	r.Post("/games/{code}/reset", ResetGame(h, reg, logger))

	r.Get("/leaderboard", Leaderboard(st, logger))
	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(h, reg, logger))
	return r
}
