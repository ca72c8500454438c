package room

import (
	"context"
	"errors"

	"github.com/mverdejo/hangman-backend/internal/game"
)

var ErrUnsupportedCommand = errors.New("unsupported command")

type Msg interface{ isRoomMsg() }

type CommandType string

const (
	CmdGuess CommandType = "Guess"
	CmdReset CommandType = "Reset"
)

type Command struct {
	Type   CommandType
	Letter rune
	Word   string // replacement target, Reset only
}

type FromClient struct {
	Cmd Command
	// Reply, when set, receives the transition error (or nil) so the sender
	// can report rejected guesses back to its own client.
	Reply chan error
}

func (FromClient) isRoomMsg() {}

type Join struct {
	ClientID string
	Outbox   chan Snapshot // where this client wants to receive snapshots
}

func (Join) isRoomMsg() {}

type Leave struct{ ClientID string }

func (Leave) isRoomMsg() {}

type Shutdown struct{}

func (Shutdown) isRoomMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isRoomMsg() {}

type Snapshot struct {
	Version int
	State   game.View
}

// View reflects internal room state without data races; used by handlers and
// tests that need the full session rather than the masked client view.
type View struct {
	Version    int
	NumClients int
	Session    game.Session
}

// Result describes one finished game, handed to the sink exactly once per
// playthrough.
type Result struct {
	Code         string
	Player       string
	Language     game.Language
	Word         string
	WrongGuesses int
	Won          bool
}

type ResultSink interface {
	Record(Result)
}

type Room struct {
	inbox    chan Msg
	code     string
	player   string
	session  game.Session
	version  int
	recorded bool
	clients  map[string]chan Snapshot
	sink     ResultSink
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewRoom(parent context.Context, code, player string, initial game.Session, sink ResultSink) *Room {
	ctx, cancel := context.WithCancel(parent)

	r := &Room{
		inbox:   make(chan Msg, 64), // Small buffer
		code:    code,
		player:  player,
		session: initial,
		version: 0,
		clients: make(map[string]chan Snapshot),
		sink:    sink,
		ctx:     ctx,
		cancel:  cancel,
	}

	go r.loop()
	return r
}

func (r *Room) loop() {
	for {
		select {
		case <-r.ctx.Done():
			r.shutdown()
			return

		case m := <-r.inbox:
			switch msg := m.(type) {
			case Join:
				// Register client + send current snapshot immediately
				r.clients[msg.ClientID] = msg.Outbox
				msg.Outbox <- Snapshot{Version: r.version, State: game.ViewOf(r.session)}

			case Leave:
				delete(r.clients, msg.ClientID)

			case FromClient:
				next, err := apply(r.session, msg.Cmd)
				if msg.Reply != nil {
					msg.Reply <- err
				}
				if err != nil {
					break
				}
				if msg.Cmd.Type == CmdReset {
					r.recorded = false
				}
				r.session = next
				r.version++
				r.broadcast(Snapshot{Version: r.version, State: game.ViewOf(r.session)})
				r.maybeRecord()

			case GetState:
				msg.Reply <- View{
					Version:    r.version,
					NumClients: len(r.clients),
					Session:    r.session,
				}

			case Shutdown:
				r.shutdown()
				return
			}
		}
	}
}

func apply(s game.Session, cmd Command) (game.Session, error) {
	switch cmd.Type {
	case CmdGuess:
		return game.Guess(s, cmd.Letter)
	case CmdReset:
		return game.Reset(s, cmd.Word), nil
	default:
		return s, ErrUnsupportedCommand
	}
}

// maybeRecord hands the finished game to the sink once per playthrough. The
// sink may block on I/O, so it runs off the room goroutine.
func (r *Room) maybeRecord() {
	if r.recorded || r.sink == nil || !game.IsGameOver(r.session) {
		return
	}
	r.recorded = true

	res := Result{
		Code:         r.code,
		Player:       r.player,
		Language:     r.session.Language,
		Word:         r.session.TargetWord,
		WrongGuesses: r.session.WrongCount,
		Won:          r.session.Won,
	}
	go r.sink.Record(res)
}

func (r *Room) shutdown() {
	for id, ch := range r.clients {
		close(ch) // Tell client no more snapshots
		delete(r.clients, id)
	}
	r.cancel()
}

func (r *Room) broadcast(snap Snapshot) {
	for id, ch := range r.clients {
		select {
		case ch <- snap:
			//ok
		default:
			// Client is slow/full - drop them.
			close(ch)
			delete(r.clients, id)
		}
	}
}

// Expose the inbox so handlers, the WS layer, and tests can send messages.
func (r *Room) Inbox() chan<- Msg { return r.inbox }
