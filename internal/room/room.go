package room

import (
	"context"
	"errors"

	"github.com/DoyleJ11/draft-room/internal/controls"
	"github.com/DoyleJ11/draft-room/internal/draft"
	"go.uber.org/zap"
)

var ErrRoomClosed = errors.New("room closed")

type Msg interface{ isRoomMsg() }

// Dispatch applies a lifecycle command. Reply receives nil or the reducer error.
type Dispatch struct {
	Cmd   draft.Command
	Reply chan error
}

func (Dispatch) isRoomMsg() {}

type GetSnapshot struct {
	Reply chan View
}

func (GetSnapshot) isRoomMsg() {}

type Shutdown struct{}

func (Shutdown) isRoomMsg() {}

type View struct {
	Version int
	State   draft.State
}

func (v View) Snapshot() draft.Snapshot { return v.State.Snapshot() }

type Room struct {
	code    string
	inbox   chan Msg
	state   draft.State
	version int
	log     *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewRoom(parent context.Context, code string, initial draft.State, log *zap.Logger) *Room {
	ctx, cancel := context.WithCancel(parent)

	r := &Room{
		code:   code,
		inbox:  make(chan Msg, 64),
		state:  initial,
		log:    log.With(zap.String("room", code)),
		ctx:    ctx,
		cancel: cancel,
	}

	go r.loop()
	return r
}

func (r *Room) loop() {
	for {
		select {
		case <-r.ctx.Done():
			return

		case m := <-r.inbox:
			switch msg := m.(type) {
			case Dispatch:
				_, next, err := draft.Apply(r.state, msg.Cmd)
				if err != nil {
					r.log.Info("command rejected",
						zap.String("command", string(msg.Cmd.Type)),
						zap.String("status", string(r.state.Status)),
						zap.Error(err))
					reply(msg.Reply, err)
					break
				}
				r.state = next
				r.version++
				r.log.Info("command applied",
					zap.String("command", string(msg.Cmd.Type)),
					zap.String("status", string(r.state.Status)),
					zap.Int("version", r.version))
				reply(msg.Reply, nil)

			case GetSnapshot:
				msg.Reply <- View{Version: r.version, State: r.state}

			case Shutdown:
				r.cancel()
				return
			}
		}
	}
}

// Reply channels are expected to be buffered; a caller that went away
// doesn't block the loop.
func reply(ch chan error, err error) {
	if ch == nil {
		return
	}
	select {
	case ch <- err:
	default:
	}
}

func (r *Room) Inbox() chan<- Msg { return r.inbox }

func (r *Room) Code() string { return r.code }

// Do sends a command and waits for the outcome.
func (r *Room) Do(ctx context.Context, cmd draft.Command) error {
	res := make(chan error, 1)
	select {
	case r.inbox <- Dispatch{Cmd: cmd, Reply: res}:
	case <-r.ctx.Done():
		return ErrRoomClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-res:
		return err
	case <-r.ctx.Done():
		return ErrRoomClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Room) Snapshot(ctx context.Context) (View, error) {
	res := make(chan View, 1)
	select {
	case r.inbox <- GetSnapshot{Reply: res}:
	case <-r.ctx.Done():
		return View{}, ErrRoomClosed
	case <-ctx.Done():
		return View{}, ctx.Err()
	}

	select {
	case v := <-res:
		return v, nil
	case <-r.ctx.Done():
		return View{}, ErrRoomClosed
	case <-ctx.Done():
		return View{}, ctx.Err()
	}
}

// IntentCommand maps a panel intent to the lifecycle command it requests.
func IntentCommand(i controls.Intent) (draft.Command, bool) {
	switch i {
	case controls.IntentStart:
		return draft.Command{Type: draft.CmdStart}, true
	case controls.IntentPause:
		return draft.Command{Type: draft.CmdPause}, true
	default:
		return draft.Command{}, false
	}
}
