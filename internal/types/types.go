// Package types holds the wire contract between clients and the server.
//
// Client -> Server (flat):
//
//	join:         { room, name }
//	message:      { room, text }
//	spin:         { room }
//	update_locks: { room, locks: bool[5] }
//	finish:       { room }
//
// Server -> Client (Envelope{type, data}):
//
//	system:       string notice
//	message:      { name, text, ts }
//	game_state:   { room, players: [{id, name, spins_left, ready}] }  // never slots
//	game_started: { msg }
//	spin_result:  { slots[5], spins_left }                            // private
//	room_full:    no data
//	reveal:       { players: [{id, name, slots[5]}] }
//	participants: []string, join order
package types

type ClientMessage struct {
	Type  string `json:"type"`
	Room  string `json:"room,omitempty"`
	Name  string `json:"name,omitempty"`
	Text  string `json:"text,omitempty"`
	Locks []bool `json:"locks,omitempty"`
}

type Envelope struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

type ChatMessage struct {
	Name string `json:"name"`
	Text string `json:"text"`
	Ts   int64  `json:"ts"`
}

// RoomPlayer is the public per-player view. Slot contents are deliberately
// absent so an opponent never sees in-progress results.
type RoomPlayer struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SpinsLeft int    `json:"spins_left"`
	Ready     bool   `json:"ready"`
}

type GameState struct {
	Room    string       `json:"room"`
	Players []RoomPlayer `json:"players"`
}

type GameStarted struct {
	Msg string `json:"msg"`
}

// SpinResult is the private view delivered only to the owning connection.
type SpinResult struct {
	Slots     []string `json:"slots"`
	SpinsLeft int      `json:"spins_left"`
}

type RevealPlayer struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Slots []string `json:"slots"`
}

type Reveal struct {
	Players []RevealPlayer `json:"players"`
}
