package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mverdejo/hangman-backend/internal/hub"
	"github.com/mverdejo/hangman-backend/internal/room"
	"github.com/mverdejo/hangman-backend/internal/types"
	"github.com/mverdejo/hangman-backend/internal/words"
)

func Handler(h *hub.Hub, reg *words.Registry, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}

		reply := make(chan *room.Room, 1)
		h.Inbox() <- hub.GetRoom{Code: code, Reply: reply}
		rm := <-reply
		if rm == nil {
			http.Error(w, "game not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// In dev ONLY, you can loosen origin checks:
			// OriginPatterns: []string{"http://localhost:*", "http://127.0.0.1:*"},
		})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan room.Snapshot, 8)
		clientID := uuid.NewString()

		rm.Inbox() <- room.Join{ClientID: clientID, Outbox: out}
		defer func() { rm.Inbox() <- room.Leave{ClientID: clientID} }()

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for snap := range out {
				msg := types.ServerMessage{Type: "StateSnapshot", Version: snap.Version, State: &snap.State}
				payload, _ := json.Marshal(msg)
				ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
		}()

		// Reader loop
		for {
			ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
			_, data, err := conn.Read(ctx)
			cancel()
			if err != nil {
				// Treat clean close/going-away as normal:
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				// Otherwise, just exit (room.Leave in defer):
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				writeErrorMessage(r.Context(), conn, "bad json")
				continue
			}

			cmd, ok := toRoomCommand(r.Context(), rm, reg, logger, cm)
			if !ok {
				writeErrorMessage(r.Context(), conn, "unknown or invalid message")
				continue
			}

			errReply := make(chan error, 1)
			rm.Inbox() <- room.FromClient{Cmd: cmd, Reply: errReply}
			if cmdErr := <-errReply; cmdErr != nil {
				writeErrorMessage(r.Context(), conn, cmdErr.Error())
			}
		}
	}
}

func toRoomCommand(ctx context.Context, rm *room.Room, reg *words.Registry, logger *zap.Logger, m types.ClientMessage) (room.Command, bool) {
	switch m.Type {
	case "Guess":
		letter, size := utf8.DecodeRuneInString(m.Letter)
		if letter == utf8.RuneError || size != len(m.Letter) {
			return room.Command{}, false
		}
		return room.Command{Type: room.CmdGuess, Letter: letter}, true

	case "Reset":
		// The room does no I/O, so the replacement word is fetched here.
		reply := make(chan room.View, 1)
		rm.Inbox() <- room.GetState{Reply: reply}
		view := <-reply

		p, err := reg.ForLanguage(view.Session.Language)
		if err != nil {
			return room.Command{}, false
		}
		word, err := p.RandomWord(ctx)
		if err != nil {
			logger.Warn("word fetch for ws reset failed",
				zap.String("lang", string(view.Session.Language)), zap.Error(err))
			return room.Command{}, false
		}
		return room.Command{Type: room.CmdReset, Word: word}, true

	default:
		return room.Command{}, false
	}
}

func writeErrorMessage(ctx context.Context, conn *websocket.Conn, msg string) {
	payload, _ := json.Marshal(types.ServerMessage{Type: "Error", Error: msg})
	_ = conn.Write(ctx, websocket.MessageText, payload)
}
