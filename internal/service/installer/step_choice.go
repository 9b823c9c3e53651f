package installer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type choice struct {
	id    string
	title string
}

// ChoiceStep renders a vertical menu and hands the picked id to onSelect.
type ChoiceStep struct {
	prompt   string
	choices  []choice
	cursor   int
	onSelect func(state *InstallState, id string)
}

func (s *ChoiceStep) Init() tea.Cmd {
	return nil
}

func (s *ChoiceStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.choices)-1 {
				s.cursor++
			}
		case "enter":
			s.onSelect(state, s.choices[s.cursor].id)
			return nil, nil
		}
	}
	return s, nil
}

func (s *ChoiceStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString(s.prompt + "\n\n")
	for i, c := range s.choices {
		if s.cursor == i {
			b.WriteString(selStyle.Render(fmt.Sprintf("❯ %s", c.title)) + "\n")
		} else {
			b.WriteString(itemStyle.Render(fmt.Sprintf("  %s", c.title)) + "\n")
		}
	}
	b.WriteString("\n(press ctrl+c to quit)\n")
	return b.String()
}

func NewProviderStep() Step {
	return &ChoiceStep{
		prompt: "Select your AI Provider:",
		choices: []choice{
			{"gemini", "Gemini"},
			{"openai", "OpenAI"},
			{"anthropic", "Anthropic"},
			{"openrouter", "OpenRouter"},
			{"ollama", "Ollama"},
			{"custom", "Custom (OpenAI-compatible)"},
		},
		onSelect: func(state *InstallState, id string) { state.Provider = id },
	}
}

func NewBackendStep() Step {
	return &ChoiceStep{
		prompt: "Where should conversation history be stored?",
		choices: []choice{
			{"kv", "Remote KV (Upstash / Vercel KV REST API)"},
			{"sqlite", "Local SQLite file"},
			{"memory", "In memory (lost on exit)"},
		},
		onSelect: func(state *InstallState, id string) { state.Backend = id },
	}
}

func NewChannelStep() Step {
	return &ChoiceStep{
		prompt: "Select your Chat Channel:",
		choices: []choice{
			{"cli", "Terminal (CLI)"},
			{"telegram", "Telegram"},
		},
		onSelect: func(state *InstallState, id string) { state.Channel = id },
	}
}
