package lobby

import (
	"context"
	"time"

	"go.uber.org/zap"

	"spinroom/internal/engine"
	"spinroom/internal/types"
)

type Msg interface{ isLobbyMsg() }

// Join seats a new connection. Reply receives nil on admit, or the engine
// error (engine.ErrRoomFull for a full room) when the seat is refused.
type Join struct {
	ClientID string
	Name     string
	Outbox   chan types.Envelope // where this client wants to receive events
	Reply    chan error
}

func (Join) isLobbyMsg() {}

type Leave struct{ ClientID string }

func (Leave) isLobbyMsg() {}

// FromClient carries a game command from a seated connection.
type FromClient struct {
	ClientID string
	Cmd      engine.Command
}

func (FromClient) isLobbyMsg() {}

type Chat struct {
	ClientID string
	Text     string
}

func (Chat) isLobbyMsg() {}

type Shutdown struct{}

func (Shutdown) isLobbyMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isLobbyMsg() {}

type View struct {
	NumClients int
	State      engine.State
}

// Lobby is the per-room coordinator. One goroutine owns the state, so every
// mutation of a room is serialized; different rooms run fully in parallel.
type Lobby struct {
	code    string
	inbox   chan Msg
	state   engine.State
	clients map[string]chan types.Envelope
	log     *zap.Logger
	onEmpty func()
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewLobby starts the room goroutine. onEmpty is called once, after the last
// client leaves and the lobby has shut itself down; it may be nil.
func NewLobby(parent context.Context, code string, log *zap.Logger, onEmpty func()) *Lobby {
	ctx, cancel := context.WithCancel(parent)

	l := &Lobby{
		code:    code,
		inbox:   make(chan Msg, 64),
		state:   engine.NewEmptyState(),
		clients: make(map[string]chan types.Envelope),
		log:     log.With(zap.String("room", code)),
		onEmpty: onEmpty,
		ctx:     ctx,
		cancel:  cancel,
	}

	go l.loop()
	return l
}

// Inbox exposes the message channel so the WS layer and tests can send.
func (l *Lobby) Inbox() chan<- Msg { return l.inbox }

// Done is closed once the lobby has shut down.
func (l *Lobby) Done() <-chan struct{} { return l.ctx.Done() }

func (l *Lobby) Closed() bool {
	select {
	case <-l.ctx.Done():
		return true
	default:
		return false
	}
}

func (l *Lobby) loop() {
	for {
		select {
		case <-l.ctx.Done():
			l.shutdown()
			return

		case m := <-l.inbox:
			switch msg := m.(type) {
			case Join:
				cmd := engine.Command{
					Type:   engine.CmdJoin,
					Player: engine.PlayerID(msg.ClientID),
					Name:   msg.Name,
				}
				events, newState, err := engine.Apply(l.state, cmd)
				if err != nil {
					// Capacity violations are reported to the requester
					// only; nothing was mutated.
					msg.Reply <- err
					break
				}
				l.clients[msg.ClientID] = msg.Outbox
				l.state = newState
				msg.Reply <- nil
				l.dispatch(events)
				l.log.Info("client joined", zap.String("client", msg.ClientID))

			case Leave:
				if ch, ok := l.clients[msg.ClientID]; ok {
					delete(l.clients, msg.ClientID)
					close(ch)
				}
				cmd := engine.Command{Type: engine.CmdLeave, Player: engine.PlayerID(msg.ClientID)}
				events, newState, err := engine.Apply(l.state, cmd)
				if err == nil {
					l.state = newState
					l.dispatch(events)
					l.log.Info("client left", zap.String("client", msg.ClientID))
				}
				if len(l.clients) == 0 {
					l.shutdown()
					if l.onEmpty != nil {
						l.onEmpty()
					}
					return
				}

			case FromClient:
				if _, seated := l.clients[msg.ClientID]; !seated {
					break
				}
				events, newState, err := engine.Apply(l.state, msg.Cmd)
				if err != nil {
					// Preconditions not met are expected races (stale
					// spins, duplicate finishes); fail silently.
					break
				}
				l.state = newState
				l.dispatch(events)

			case Chat:
				p, ok := l.state.PlayerByID(engine.PlayerID(msg.ClientID))
				if !ok {
					break
				}
				l.broadcast(types.Envelope{Type: "message", Data: types.ChatMessage{
					Name: p.Name,
					Text: msg.Text,
					Ts:   time.Now().UnixMilli(),
				}})

			case GetState:
				// test-only: reflect internal state without data races
				msg.Reply <- View{
					NumClients: len(l.clients),
					State:      l.state,
				}

			case Shutdown:
				l.shutdown()
				return
			}
		}
	}
}

// dispatch maps engine events to deliveries. Public broadcasts never carry
// slot contents; slots cross to a connection only in its own spin_result,
// and to everyone only in the one-shot reveal.
func (l *Lobby) dispatch(events []engine.Event) {
	for _, ev := range events {
		switch ev.Type {
		case engine.EvtPlayerJoined:
			l.broadcast(systemNotice(ev.Name + " joined the room"))
			l.broadcast(l.participants())
			l.broadcast(l.publicState())

		case engine.EvtGameStarted:
			l.broadcast(types.Envelope{Type: "game_started", Data: types.GameStarted{
				Msg: "Both players are in. Good luck!",
			}})
			for id := range l.clients {
				if p, ok := l.state.PlayerByID(engine.PlayerID(id)); ok {
					l.sendTo(id, privateResult(p))
				}
			}
			l.log.Info("game started")

		case engine.EvtSpun:
			if p, ok := l.state.PlayerByID(ev.Player); ok {
				l.sendTo(string(ev.Player), privateResult(p))
			}
			l.broadcast(l.publicState())

		case engine.EvtLocksSet, engine.EvtPlayerReady:
			l.broadcast(l.publicState())

		case engine.EvtRevealed:
			l.broadcast(l.reveal())
			l.log.Info("reveal broadcast")

		case engine.EvtPlayerLeft:
			l.broadcast(systemNotice(ev.Name + " left the room"))
			l.broadcast(l.participants())
		}
	}
}

func (l *Lobby) publicState() types.Envelope {
	players := make([]types.RoomPlayer, 0, len(l.state.Players))
	for _, p := range l.state.Players {
		players = append(players, types.RoomPlayer{
			ID:        string(p.ID),
			Name:      p.Name,
			SpinsLeft: p.SpinsLeft,
			Ready:     p.Ready,
		})
	}
	return types.Envelope{Type: "game_state", Data: types.GameState{
		Room:    l.code,
		Players: players,
	}}
}

func (l *Lobby) participants() types.Envelope {
	names := make([]string, 0, len(l.state.Players))
	for _, p := range l.state.Players {
		names = append(names, p.Name)
	}
	return types.Envelope{Type: "participants", Data: names}
}

func (l *Lobby) reveal() types.Envelope {
	players := make([]types.RevealPlayer, 0, len(l.state.Players))
	for _, p := range l.state.Players {
		players = append(players, types.RevealPlayer{
			ID:    string(p.ID),
			Name:  p.Name,
			Slots: slotStrings(p.Slots),
		})
	}
	return types.Envelope{Type: "reveal", Data: types.Reveal{Players: players}}
}

func privateResult(p engine.Player) types.Envelope {
	return types.Envelope{Type: "spin_result", Data: types.SpinResult{
		Slots:     slotStrings(p.Slots),
		SpinsLeft: p.SpinsLeft,
	}}
}

func systemNotice(text string) types.Envelope {
	return types.Envelope{Type: "system", Data: text}
}

func slotStrings(slots [engine.SlotCount]engine.Symbol) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = string(s)
	}
	return out
}

func (l *Lobby) sendTo(clientID string, env types.Envelope) {
	ch, ok := l.clients[clientID]
	if !ok {
		return
	}
	select {
	case ch <- env:
	default:
		// Client is slow/full - drop them.
		close(ch)
		delete(l.clients, clientID)
	}
}

func (l *Lobby) broadcast(env types.Envelope) {
	for id, ch := range l.clients {
		select {
		case ch <- env:
			//ok
		default:
			close(ch)
			delete(l.clients, id)
		}
	}
}

func (l *Lobby) shutdown() {
	for id, ch := range l.clients {
		close(ch) // Tell client no more events
		delete(l.clients, id)
	}
	l.cancel()
}
