package chat

// EventType discriminates the variants of StreamEvent.
type EventType string

const (
	EventSession  EventType = "session"
	EventToken    EventType = "token"
	EventComplete EventType = "complete"
	EventError    EventType = "error"
)

// Terminal reports whether an event of this type ends the turn.
func (t EventType) Terminal() bool {
	return t == EventComplete || t == EventError
}

// StreamEvent is one element of a turn's event sequence. Exactly one of the
// payload fields matching Type is set:
//
//	EventSession  → Session
//	EventToken    → Delta
//	EventComplete → Turn
//	EventError    → Detail
type StreamEvent struct {
	Type    EventType
	Session *SessionInfo
	Delta   string
	Turn    *TurnResponse
	Detail  string
}
