package chat

// Roles a message can carry on the wire.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is a single conversation turn as the backend serializes it.
// CreatedAt is an RFC3339 string; normalization guarantees it is never empty.
type Message struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}
