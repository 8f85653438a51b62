package hub

import (
	"context"
	"errors"

	"github.com/DoyleJ11/draft-room/internal/draft"
	"github.com/DoyleJ11/draft-room/internal/room"
	"go.uber.org/zap"
)

var ErrHubClosed = errors.New("hub closed")

type HubMsg interface{ isHubMsg() }

type CreateRoom struct {
	Code  string
	State draft.State
	Reply chan *room.Room
}

type GetRoom struct {
	Code  string
	Reply chan *room.Room
}

type EnsureRoom struct {
	Code  string
	State draft.State // only used if creation happens
	Reply chan *room.Room
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

type Hub struct {
	inbox  chan HubMsg
	rooms  map[string]*room.Room
	log    *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub(parent context.Context, log *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:  make(chan HubMsg, 64),
		rooms:  make(map[string]*room.Room),
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

// Done is closed once the hub has stopped serving messages.
func (h *Hub) Done() <-chan struct{} { return h.ctx.Done() }

// Get looks a room up by code. A nil room means no such room.
func (h *Hub) Get(ctx context.Context, code string) (*room.Room, error) {
	return h.ask(ctx, func(reply chan *room.Room) HubMsg {
		return GetRoom{Code: code, Reply: reply}
	})
}

// Ensure returns the room for code, creating it with state if needed.
func (h *Hub) Ensure(ctx context.Context, code string, state draft.State) (*room.Room, error) {
	return h.ask(ctx, func(reply chan *room.Room) HubMsg {
		return EnsureRoom{Code: code, State: state, Reply: reply}
	})
}

func (h *Hub) ask(ctx context.Context, build func(chan *room.Room) HubMsg) (*room.Room, error) {
	reply := make(chan *room.Room, 1)
	select {
	case h.inbox <- build(reply):
	case <-h.ctx.Done():
		return nil, ErrHubClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case rm := <-reply:
		return rm, nil
	case <-h.ctx.Done():
		return nil, ErrHubClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateRoom:
				msg.Reply <- h.ensure(msg.Code, msg.State)

			case GetRoom:
				msg.Reply <- h.rooms[msg.Code] // May be nil

			case EnsureRoom:
				msg.Reply <- h.ensure(msg.Code, msg.State)

			case RemoveRoom:
				if rm := h.rooms[msg.Code]; rm != nil {
					stopRoom(rm)
					delete(h.rooms, msg.Code)
					h.log.Info("room removed", zap.String("room", msg.Code))
				}

			case ShutdownHub:
				h.shutdown()
				h.cancel()
				return
			}
		}
	}
}

func (h *Hub) ensure(code string, state draft.State) *room.Room {
	if rm := h.rooms[code]; rm != nil {
		return rm
	}
	rm := room.NewRoom(h.ctx, code, state, h.log)
	h.rooms[code] = rm
	h.log.Info("room created", zap.String("room", code))
	return rm
}

func (h *Hub) shutdown() {
	for code, rm := range h.rooms {
		stopRoom(rm)
		delete(h.rooms, code)
	}
	h.log.Info("hub stopped")
}

// A room whose inbox is full is already stuck; it stops with the hub context.
func stopRoom(rm *room.Room) {
	select {
	case rm.Inbox() <- room.Shutdown{}:
	default:
	}
}
