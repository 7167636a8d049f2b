package hub

import (
	"context"

	"go.uber.org/zap"

	"spinroom/internal/lobby"
)

type HubMsg interface{ isHubMsg() }

// EnsureLobby resolves the room for a code, creating it on first reference.
type EnsureLobby struct {
	Code  string
	Reply chan *lobby.Lobby
}

type GetLobby struct {
	Code  string
	Reply chan *lobby.Lobby
}

type RemoveLobby struct {
	Code string
}

type ShutdownHub struct{}

func (EnsureLobby) isHubMsg() {}
func (GetLobby) isHubMsg()    {}
func (RemoveLobby) isHubMsg() {}
func (ShutdownHub) isHubMsg() {}

// Hub is the process-wide room registry. Like the lobbies it is a single
// goroutine owning its map, so concurrent joins cannot corrupt it or
// double-create a room.
type Hub struct {
	inbox   chan HubMsg
	lobbies map[string]*lobby.Lobby
	log     *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewHub(parent context.Context, log *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:   make(chan HubMsg, 64),
		lobbies: make(map[string]*lobby.Lobby),
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
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
			case EnsureLobby:
				if lb := h.lobbies[msg.Code]; lb != nil && !lb.Closed() {
					msg.Reply <- lb
					break
				}
				msg.Reply <- h.create(msg.Code)

			case GetLobby:
				lb := h.lobbies[msg.Code]
				if lb != nil && lb.Closed() {
					lb = nil
				}
				msg.Reply <- lb // May be nil

			case RemoveLobby:
				// Only evict the lobby that actually shut down; the code
				// may have been re-created in the meantime.
				if lb := h.lobbies[msg.Code]; lb != nil && lb.Closed() {
					delete(h.lobbies, msg.Code)
					h.log.Info("room evicted", zap.String("room", msg.Code))
				}

			case ShutdownHub:
				for _, lb := range h.lobbies {
					lb.Inbox() <- lobby.Shutdown{}
				}
				clear(h.lobbies)
				h.cancel()
			}
		}
	}
}

func (h *Hub) create(code string) *lobby.Lobby {
	// The lobby reports back once its last client leaves so finished
	// rooms don't accumulate in the registry.
	lb := lobby.NewLobby(h.ctx, code, h.log, func() {
		h.inbox <- RemoveLobby{Code: code}
	})
	h.lobbies[code] = lb
	h.log.Info("room created", zap.String("room", code))
	return lb
}
