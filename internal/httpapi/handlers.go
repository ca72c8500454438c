package httpapi

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/url"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mverdejo/hangman-backend/internal/game"
	"github.com/mverdejo/hangman-backend/internal/hub"
	"github.com/mverdejo/hangman-backend/internal/room"
	"github.com/mverdejo/hangman-backend/internal/store"
	"github.com/mverdejo/hangman-backend/internal/words"
)

func GenerateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, 6)
	for i := 0; i < 6; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

// WordProxy relays the upstream word API for the requested language with the
// server-held credential attached. The body travels verbatim; every upstream
// failure is a generic 500.
func WordProxy(reg *words.Registry, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := reg.Lookup(r.URL.Query().Get("lang"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		body, err := p.FetchRaw(r.Context())
		if err != nil {
			logger.Warn("word provider call failed",
				zap.String("lang", string(p.Language())), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "word provider unavailable")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}
}

type createGameRequest struct {
	Language string `json:"language"`
	Player   string `json:"player"`
}

type createGameResponse struct {
	Code  string    `json:"code"`
	State game.View `json:"state"`
}

func CreateGame(h *hub.Hub, reg *words.Registry, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createGameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		p, err := reg.Lookup(req.Language)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		word, err := p.RandomWord(r.Context())
		if err != nil {
			logger.Warn("word fetch for new game failed",
				zap.String("lang", string(p.Language())), zap.Error(err))
			writeError(w, http.StatusBadGateway, "could not fetch a word")
			return
		}

		var code string
		for {
			c, err := GenerateCode()
			if err != nil {
				writeError(w, http.StatusInternalServerError, "failed to generate code")
				return
			}
			reply := make(chan *room.Room, 1)
			h.Inbox() <- hub.GetRoom{Code: c, Reply: reply}
			if <-reply == nil {
				code = c
				break
			}
			logger.Info("collision on code, regenerating", zap.String("code", c))
		}

		sess := game.NewSession(p.Language(), word)
		reply := make(chan *room.Room, 1)
		h.Inbox() <- hub.EnsureRoom{Code: code, Player: req.Player, Session: sess, Reply: reply}
		rm := <-reply
		if rm == nil {
			writeError(w, http.StatusInternalServerError, "failed to create game")
			return
		}

		writeJSON(w, http.StatusCreated, createGameResponse{
			Code:  code,
			State: game.ViewOf(sess),
		})
	}
}

func GetGame(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rm, ok := findRoom(h, w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, game.ViewOf(roomState(rm).Session))
	}
}

type guessRequest struct {
	Letter string `json:"letter"`
}

func GuessLetter(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rm, ok := findRoom(h, w, r)
		if !ok {
			return
		}

		var req guessRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		letter, size := utf8.DecodeRuneInString(req.Letter)
		if letter == utf8.RuneError || size != len(req.Letter) {
			writeError(w, http.StatusBadRequest, game.ErrNotALetter.Error())
			return
		}

		if err := sendCommand(rm, room.Command{Type: room.CmdGuess, Letter: letter}); err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, game.ErrGameOver) {
				status = http.StatusConflict
			}
			writeError(w, status, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, game.ViewOf(roomState(rm).Session))
	}
}

func ResetGame(h *hub.Hub, reg *words.Registry, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rm, ok := findRoom(h, w, r)
		if !ok {
			return
		}

		lang := roomState(rm).Session.Language
		p, err := reg.ForLanguage(lang)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		word, err := p.RandomWord(r.Context())
		if err != nil {
			logger.Warn("word fetch for reset failed",
				zap.String("lang", string(lang)), zap.Error(err))
			writeError(w, http.StatusBadGateway, "could not fetch a word")
			return
		}

		if err := sendCommand(rm, room.Command{Type: room.CmdReset, Word: word}); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, game.ViewOf(roomState(rm).Session))
	}
}

func Leaderboard(st *store.Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if st == nil {
			writeError(w, http.StatusServiceUnavailable, "leaderboard not configured")
			return
		}

		entries, err := st.TopPlayers(r.Context(), 10)
		if err != nil {
			logger.Error("leaderboard query failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "leaderboard unavailable")
			return
		}
		writeJSON(w, http.StatusOK, entries)
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func findRoom(h *hub.Hub, w http.ResponseWriter, r *http.Request) (*room.Room, bool) {
	code, _ := url.PathUnescape(chi.URLParam(r, "code"))
	if code == "" {
		writeError(w, http.StatusBadRequest, "missing code")
		return nil, false
	}

	reply := make(chan *room.Room, 1)
	h.Inbox() <- hub.GetRoom{Code: code, Reply: reply}
	rm := <-reply
	if rm == nil {
		writeError(w, http.StatusNotFound, "game not found")
		return nil, false
	}
	return rm, true
}

func roomState(rm *room.Room) room.View {
	reply := make(chan room.View, 1)
	rm.Inbox() <- room.GetState{Reply: reply}
	return <-reply
}

func sendCommand(rm *room.Room, cmd room.Command) error {
	reply := make(chan error, 1)
	rm.Inbox() <- room.FromClient{Cmd: cmd, Reply: reply}
	return <-reply
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, struct {
		Error string `json:"error"`
	}{Error: msg})
}
