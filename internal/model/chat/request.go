package chat

// DefaultLocale is applied when a turn request carries no locale.
const DefaultLocale = "zh-CN"

// TurnRequest is the body of one chat turn sent to the backend.
// SessionID is empty on the first turn of a conversation; the backend
// assigns one and announces it via the session_established event.
type TurnRequest struct {
	UserID          string `json:"user_id"`
	SessionID       string `json:"session_id,omitempty"`
	Message         string `json:"message"`
	Locale          string `json:"locale"`
	EnableStreaming bool   `json:"enable_streaming"`
}
