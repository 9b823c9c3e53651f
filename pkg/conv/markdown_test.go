package conv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdownToTelegramHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty input", input: "", expected: ""},
		{name: "plain text", input: "Hello world", expected: "Hello world\n"},
		{name: "bold text", input: "**bold**", expected: "<strong>bold</strong>\n"},
		{name: "italic text", input: "*italic*", expected: "<em>italic</em>\n"},
		{name: "raw HTML underline preserved", input: "<u>underline</u>", expected: "<u>underline</u>\n"},
		{name: "strikethrough", input: "~~strikethrough~~", expected: "<del>strikethrough</del>\n"},
		{name: "inline code", input: "`code`", expected: "<code>code</code>\n"},
		{
			name:     "code block with language",
			input:    "```go\nfunc main() {}\n```",
			expected: "<pre><code class=\"language-go\">func main() {}\n</code></pre>\n",
		},
		{name: "blockquote", input: "> quote", expected: "<blockquote>\nquote\n</blockquote>\n"},
		{
			name:     "link with target blank stripped",
			input:    "[link](https://example.com)",
			expected: "<a href=\"https://example.com\">link</a>\n",
		},
		{name: "header tags stripped", input: "# Info", expected: "Info\n"},
		{name: "script tags sanitized", input: "<script>alert('xss')</script>", expected: "\n"},
		{
			name:     "command reply",
			input:    "✅ **Conversation history cleared**",
			expected: "✅ <strong>Conversation history cleared</strong>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MarkdownToTelegramHTML([]byte(tt.input)))
		})
	}
}

func TestMarkdownToPlainText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty input", input: "", expected: ""},
		{name: "bold", input: "**Stored messages**", expected: "Stored messages"},
		{name: "inline code", input: "`/clear` Delete the stored conversation", expected: "/clear Delete the stored conversation"},
		{name: "entities restored", input: "a < b & c", expected: "a < b & c"},
		{name: "script dropped", input: "<script>alert(1)</script>", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MarkdownToPlainText([]byte(tt.input)))
		})
	}
}
