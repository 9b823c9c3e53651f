package core

const (
	TuskName          = "TuskChat"
	TuskUserAgent     = "TuskChat/0.1"
	TuskRepositoryURL = "https://github.com/sandevgo/tuskchat"
	TaskVersion       = "0.1.0"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// DefaultUserID is the single logical identity used when none is configured.
const DefaultUserID = "default-user"

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// PlaceholderMessage stands in for a stored entry that could not be decoded.
func PlaceholderMessage() Message {
	return Message{Role: RoleSystem, Content: "Error: Failed to load message"}
}

func (m Message) Valid() bool {
	switch m.Role {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}
