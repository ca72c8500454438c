package hub

import (
	"context"

	"github.com/mverdejo/hangman-backend/internal/game"
	"github.com/mverdejo/hangman-backend/internal/room"
)

type HubMsg interface{ isHubMsg() }

type CreateRoom struct {
	Code    string
	Player  string
	Session game.Session
	Reply   chan *room.Room
}

type GetRoom struct {
	Code  string
	Reply chan *room.Room
}

type EnsureRoom struct {
	Code    string
	Player  string
	Session game.Session // only used if creation happens
	Reply   chan *room.Room
}

type RemoveRoom struct {
	Code string
}

type ShutdownHub struct{}

func (CreateRoom) isHubMsg()  {}
func (GetRoom) isHubMsg()     {}
func (EnsureRoom) isHubMsg()  {}
func (RemoveRoom) isHubMsg()  {}
func (ShutdownHub) isHubMsg() {}

// Hub owns the code → room table. All access goes through the inbox so there
// is a single writer.
type Hub struct {
	inbox  chan HubMsg
	rooms  map[string]*room.Room
	sink   room.ResultSink
	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub(parent context.Context, sink room.ResultSink) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:  make(chan HubMsg, 64),
		rooms:  make(map[string]*room.Room),
		sink:   sink,
		ctx:    ctx,
		cancel: cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateRoom:
				if rm := h.rooms[msg.Code]; rm != nil {
					msg.Reply <- rm
					break
				}
				rm := room.NewRoom(h.ctx, msg.Code, msg.Player, msg.Session, h.sink)
				h.rooms[msg.Code] = rm
				msg.Reply <- rm

			case GetRoom:
				msg.Reply <- h.rooms[msg.Code] // May be nil

			case EnsureRoom:
				if rm := h.rooms[msg.Code]; rm != nil {
					msg.Reply <- rm
					break
				}

				rm := room.NewRoom(h.ctx, msg.Code, msg.Player, msg.Session, h.sink)
				h.rooms[msg.Code] = rm
				msg.Reply <- rm

			case RemoveRoom:
				delete(h.rooms, msg.Code)

			case ShutdownHub:
				for _, rm := range h.rooms {
					rm.Inbox() <- room.Shutdown{}
				}
				clear(h.rooms)
				h.cancel()
			}
		}
	}
}
