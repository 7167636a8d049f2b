package engine

func NewEmptyState() State {
	return State{}
}

// PlayerByID returns a copy of the player's record, if seated.
func (s State) PlayerByID(id PlayerID) (Player, bool) {
	i := s.playerIndex(id)
	if i < 0 {
		return Player{}, false
	}
	return s.Players[i], true
}

func ContainsEvent(events []Event, eventType EventType) bool {
	for _, event := range events {
		if event.Type == eventType {
			return true
		}
	}
	return false
}
