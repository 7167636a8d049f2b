package hub

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"spinroom/internal/lobby"
	"spinroom/internal/types"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewHub(ctx, zap.NewNop())
}

func TestHub_Ensure_Get_SamePointer(t *testing.T) {
	h := newTestHub(t)
	reply := make(chan *lobby.Lobby, 1)

	h.Inbox() <- EnsureLobby{Code: "ZED123", Reply: reply}
	lb1 := <-reply

	h.Inbox() <- GetLobby{Code: "ZED123", Reply: reply}
	lb2 := <-reply

	if lb1 == nil || lb2 == nil || lb1 != lb2 {
		t.Fatalf("expected same lobby pointer")
	}
}

func TestHub_GetUnknownCodeIsNil(t *testing.T) {
	h := newTestHub(t)
	reply := make(chan *lobby.Lobby, 1)

	h.Inbox() <- GetLobby{Code: "NOPE42", Reply: reply}
	if lb := <-reply; lb != nil {
		t.Fatalf("expected nil for unknown code, got %v", lb)
	}
}

func TestHub_EvictsRoomOnceEmpty(t *testing.T) {
	h := newTestHub(t)
	reply := make(chan *lobby.Lobby, 1)

	h.Inbox() <- EnsureLobby{Code: "ZED123", Reply: reply}
	lb := <-reply

	out := make(chan types.Envelope, 32)
	joinReply := make(chan error, 1)
	lb.Inbox() <- lobby.Join{ClientID: "c1", Name: "Alice", Outbox: out, Reply: joinReply}
	if err := <-joinReply; err != nil {
		t.Fatalf("join: %v", err)
	}
	lb.Inbox() <- lobby.Leave{ClientID: "c1"}

	deadline := time.After(2 * time.Second)
	for {
		h.Inbox() <- GetLobby{Code: "ZED123", Reply: reply}
		if got := <-reply; got == nil {
			return // evicted
		}
		select {
		case <-deadline:
			t.Fatalf("empty room never evicted from registry")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestHub_EnsureReplacesClosedLobby(t *testing.T) {
	h := newTestHub(t)
	reply := make(chan *lobby.Lobby, 1)

	h.Inbox() <- EnsureLobby{Code: "ZED123", Reply: reply}
	lb1 := <-reply

	lb1.Inbox() <- lobby.Shutdown{}
	select {
	case <-lb1.Done():
	case <-time.After(time.Second):
		t.Fatalf("lobby never shut down")
	}

	h.Inbox() <- EnsureLobby{Code: "ZED123", Reply: reply}
	lb2 := <-reply
	if lb2 == nil || lb2 == lb1 {
		t.Fatalf("ensure must replace a closed lobby")
	}
}
