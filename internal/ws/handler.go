package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"spinroom/internal/engine"
	"spinroom/internal/hub"
	"spinroom/internal/lobby"
	"spinroom/internal/types"
)

const writeTimeout = 3 * time.Second

// Handler runs one WebSocket session. The first accepted event must be a
// join; rooms are created lazily on first join. A connection belongs to at
// most one room: after a successful join, further join events are ignored,
// and after a room_full rejection the client may retry another code.
func Handler(h *hub.Hub, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// In dev ONLY, you can loosen origin checks:
			// OriginPatterns: []string{"http://localhost:*", "http://127.0.0.1:*"},
		})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		clientID := uuid.New().String()
		logger := log.With(zap.String("client", clientID))

		var lb *lobby.Lobby // non-nil once seated

		defer func() {
			if lb != nil {
				select {
				case lb.Inbox() <- lobby.Leave{ClientID: clientID}:
				case <-lb.Done():
				}
			}
		}()

		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()

		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				// Treat clean close/going-away as normal:
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				// Otherwise, just exit (lobby.Leave in defer):
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				continue // malformed input is dropped
			}

			if cm.Type == "join" {
				if lb != nil || cm.Room == "" {
					continue
				}
				joined, ok := tryJoin(h, writeCtx, conn, clientID, cm, logger)
				if ok {
					lb = joined
				}
				continue
			}

			// Everything below requires a seat.
			if lb == nil {
				continue
			}

			switch cm.Type {
			case "message":
				lb.Inbox() <- lobby.Chat{ClientID: clientID, Text: cm.Text}
			default:
				cmd, ok := toCommand(cm, clientID)
				if !ok {
					continue
				}
				lb.Inbox() <- lobby.FromClient{ClientID: clientID, Cmd: cmd}
			}
		}
	}
}

// tryJoin resolves the lobby, asks for a seat, and on admit starts the
// writer goroutine that drains this client's outbox.
func tryJoin(h *hub.Hub, writeCtx context.Context, conn *websocket.Conn, clientID string, cm types.ClientMessage, log *zap.Logger) (*lobby.Lobby, bool) {
	lbReply := make(chan *lobby.Lobby, 1)
	h.Inbox() <- hub.EnsureLobby{Code: cm.Room, Reply: lbReply}
	lb := <-lbReply

	out := make(chan types.Envelope, 16)
	reply := make(chan error, 1)

	select {
	case lb.Inbox() <- lobby.Join{ClientID: clientID, Name: cm.Name, Outbox: out, Reply: reply}:
	case <-lb.Done():
		return nil, false
	}

	var err error
	select {
	case err = <-reply:
	case <-lb.Done():
		return nil, false
	}

	if err != nil {
		if err == engine.ErrRoomFull {
			writeEnvelope(writeCtx, conn, types.Envelope{Type: "room_full"})
		}
		return nil, false
	}

	// Writer goroutine
	go func() {
		for env := range out {
			writeEnvelope(writeCtx, conn, env)
		}
	}()

	log.Info("joined room", zap.String("room", cm.Room), zap.String("name", cm.Name))
	return lb, true
}

func writeEnvelope(parent context.Context, conn *websocket.Conn, env types.Envelope) {
	payload, err := json.Marshal(env)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(parent, writeTimeout)
	_ = conn.Write(ctx, websocket.MessageText, payload)
	cancel()
}

func toCommand(m types.ClientMessage, clientID string) (engine.Command, bool) {
	player := engine.PlayerID(clientID)

	switch m.Type {
	case "spin":
		return engine.Command{Type: engine.CmdSpin, Player: player}, true
	case "update_locks":
		return engine.Command{Type: engine.CmdSetLocks, Player: player, Locks: m.Locks}, true
	case "finish":
		return engine.Command{Type: engine.CmdFinish, Player: player}, true
	default:
		return engine.Command{}, false
	}
}
