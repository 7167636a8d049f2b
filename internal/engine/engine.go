package engine

import (
	"errors"
	"slices"
	"strings"
)

var ErrRoomFull = errors.New("room is full")
var ErrAlreadyJoined = errors.New("player already seated")
var ErrUnknownPlayer = errors.New("unknown player")
var ErrNoSpinsLeft = errors.New("no spins left")
var ErrBadLockVector = errors.New("bad lock vector")
var ErrUnsupportedCommand = errors.New("unsupported command")

const (
	// SlotCount is the number of reel positions per player.
	SlotCount = 5
	// MaxPlayers is the seat capacity of a room.
	MaxPlayers = 2
	// StartSpins is how many spins each player gets.
	StartSpins = 3
)

type PlayerID string

// Player is the per-connection game record. Slots and Locks are arrays so
// the length-5 invariant holds by construction. A zero Symbol means the
// position has not been spun yet.
type Player struct {
	ID        PlayerID
	Name      string
	Slots     [SlotCount]Symbol
	Locks     [SlotCount]bool
	SpinsLeft int
	Ready     bool
}

// State is one room's game state. Players is in join order and never
// exceeds MaxPlayers. Started is set once, when the second player joins.
// Revealed is the one-shot latch that keeps reveal from firing twice.
type State struct {
	Players  []Player
	Started  bool
	Revealed bool
}

type CommandType string

const (
	CmdJoin     CommandType = "Join"
	CmdSpin     CommandType = "Spin"
	CmdSetLocks CommandType = "SetLocks"
	CmdFinish   CommandType = "Finish"
	CmdLeave    CommandType = "Leave"
)

type Command struct {
	Type   CommandType
	Player PlayerID
	Name   string
	Locks  []bool
}

type EventType string

const (
	EvtPlayerJoined EventType = "PlayerJoined"
	EvtGameStarted  EventType = "GameStarted"
	EvtSpun         EventType = "Spun"
	EvtLocksSet     EventType = "LocksSet"
	EvtPlayerReady  EventType = "PlayerReady"
	EvtRevealed     EventType = "Revealed"
	EvtPlayerLeft   EventType = "PlayerLeft"
)

type Event struct {
	Type   EventType
	Player PlayerID
	Name   string
}

// Apply runs one command against the room state and returns the events the
// coordinator should fan out, plus the successor state. The input state is
// never mutated; on error it is returned unchanged.
func Apply(s State, cmd Command) ([]Event, State, error) {
	newState := s
	newState.Players = slices.Clone(s.Players)

	switch cmd.Type {
	case CmdJoin:
		if s.playerIndex(cmd.Player) >= 0 {
			return nil, s, ErrAlreadyJoined
		}
		if len(s.Players) >= MaxPlayers {
			return nil, s, ErrRoomFull
		}

		name := strings.TrimSpace(cmd.Name)
		if name == "" {
			name = "Anonymous"
		}
		newState.Players = append(newState.Players, Player{
			ID:        cmd.Player,
			Name:      name,
			SpinsLeft: StartSpins,
		})

		events := []Event{{Type: EvtPlayerJoined, Player: cmd.Player, Name: name}}

		// The start transition happens exactly once, on the join that
		// fills the second seat.
		if len(newState.Players) == MaxPlayers && !newState.Started {
			newState.Started = true
			events = append(events, Event{Type: EvtGameStarted})
		}
		return events, newState, nil

	case CmdSpin:
		i := s.playerIndex(cmd.Player)
		if i < 0 {
			return nil, s, ErrUnknownPlayer
		}
		p := &newState.Players[i]
		if p.SpinsLeft <= 0 {
			return nil, s, ErrNoSpinsLeft
		}

		p.Slots = spinSlots(p.Slots, p.Locks)
		p.SpinsLeft--
		return []Event{{Type: EvtSpun, Player: cmd.Player}}, newState, nil

	case CmdSetLocks:
		i := s.playerIndex(cmd.Player)
		if i < 0 {
			return nil, s, ErrUnknownPlayer
		}
		if len(cmd.Locks) != SlotCount {
			return nil, s, ErrBadLockVector
		}

		p := &newState.Players[i]
		copy(p.Locks[:], cmd.Locks)
		return []Event{{Type: EvtLocksSet, Player: cmd.Player}}, newState, nil

	case CmdFinish:
		i := s.playerIndex(cmd.Player)
		if i < 0 {
			return nil, s, ErrUnknownPlayer
		}

		newState.Players[i].Ready = true
		events := []Event{{Type: EvtPlayerReady, Player: cmd.Player}}
		return maybeReveal(newState, events)

	case CmdLeave:
		i := s.playerIndex(cmd.Player)
		if i < 0 {
			return nil, s, ErrUnknownPlayer
		}

		name := newState.Players[i].Name
		newState.Players = slices.Delete(newState.Players, i, i+1)
		events := []Event{{Type: EvtPlayerLeft, Player: cmd.Player, Name: name}}

		// A departure can satisfy "everyone remaining is ready", so the
		// remaining player is never blocked waiting on a ghost.
		return maybeReveal(newState, events)

	default:
		return nil, s, ErrUnsupportedCommand
	}
}

func maybeReveal(s State, events []Event) ([]Event, State, error) {
	if s.Revealed || !s.Started || len(s.Players) == 0 {
		return events, s, nil
	}
	if !allReady(s) {
		return events, s, nil
	}
	s.Revealed = true
	events = append(events, Event{Type: EvtRevealed})
	return events, s, nil
}

func allReady(s State) bool {
	for _, p := range s.Players {
		if !p.Ready {
			return false
		}
	}
	return true
}

func (s State) playerIndex(id PlayerID) int {
	for i, p := range s.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}
