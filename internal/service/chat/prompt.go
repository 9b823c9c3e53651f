package chat

import (
	"strings"

	"github.com/sandevgo/tuskchat/internal/core"
)

// BuildPrompt renders prior turns as "role: content" lines followed by the
// new input and an open assistant slot.
func BuildPrompt(turns []core.Message, input string) string {
	var sb strings.Builder
	sb.WriteString("Context:\n")
	for i, msg := range turns {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(msg.Role)
		sb.WriteString(": ")
		sb.WriteString(msg.Content)
	}
	sb.WriteString("\n\nUser: ")
	sb.WriteString(input)
	sb.WriteString("\n\nAssistant:")
	return sb.String()
}
