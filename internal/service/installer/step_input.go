package installer

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// InputStep asks for one value. It is skipped when the when guard says so.
type InputStep struct {
	input    textinput.Model
	prompt   string
	fallback string
	err      error
	when     func(state *InstallState) bool
	validate func(value string) error
	apply    func(state *InstallState, value string)
}

func newInputStep(prompt, placeholder string, secret bool) *InputStep {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 50
	ti.Placeholder = placeholder
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return &InputStep{input: ti, prompt: prompt}
}

func (s *InputStep) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, func() tea.Msg { return nextMsg{} })
}

func (s *InputStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.when != nil && !s.when(state) {
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		val := strings.TrimSpace(s.input.Value())
		if val == "" {
			val = s.fallback
		}
		if s.validate != nil {
			if s.err = s.validate(val); s.err != nil {
				return s, cmd
			}
		}
		s.apply(state, val)
		return nil, nil
	}
	return s, cmd
}

func (s *InputStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString(s.prompt + ":\n\n" + s.input.View() + "\n\n")
	if s.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n")
	}
	b.WriteString("(press enter to confirm)\n")
	return b.String()
}

func NewCustomURLStep() Step {
	s := newInputStep("Enter Custom OpenAI Base URL", "https://api.example.com/v1", false)
	s.when = func(state *InstallState) bool { return state.Provider == "custom" }
	s.validate = validateURL
	s.apply = func(state *InstallState, v string) { state.CustomBaseURL = v }
	return s
}

func NewOllamaURLStep() Step {
	s := newInputStep("Enter Ollama Base URL", "http://127.0.0.1:11434", false)
	s.fallback = "http://127.0.0.1:11434"
	s.when = func(state *InstallState) bool { return state.Provider == "ollama" }
	s.validate = validateURL
	s.apply = func(state *InstallState, v string) { state.OllamaBaseURL = v }
	return s
}

func NewKVURLStep() Step {
	s := newInputStep("Enter the KV REST API URL", "https://example.upstash.io", false)
	s.when = usesKV
	s.validate = validateURL
	s.apply = func(state *InstallState, v string) { state.KVURL = v }
	return s
}

func NewKVTokenStep() Step {
	s := newInputStep("Enter the KV REST API Token", "AX...", true)
	s.when = usesKV
	s.validate = required("token")
	s.apply = func(state *InstallState, v string) { state.KVToken = v }
	return s
}

func NewTelegramTokenStep() Step {
	s := newInputStep("Enter your Telegram Bot Token", "123456789:ABCDEF...", true)
	s.when = usesTelegram
	s.validate = required("token")
	s.apply = func(state *InstallState, v string) { state.TelegramToken = v }
	return s
}

func NewTelegramOwnerStep() Step {
	s := newInputStep("Enter your Telegram User ID (Owner)", "123456789", false)
	s.when = usesTelegram
	s.validate = func(v string) error {
		if _, err := strconv.ParseInt(v, 10, 64); err != nil {
			return fmt.Errorf("owner id must be numeric")
		}
		return nil
	}
	s.apply = func(state *InstallState, v string) { state.TelegramOwnerID = v }
	return s
}

func usesKV(state *InstallState) bool       { return state.Backend == "kv" }
func usesTelegram(state *InstallState) bool { return state.Channel == "telegram" }

func required(name string) func(string) error {
	return func(v string) error {
		if v == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func validateURL(v string) error {
	u, err := url.Parse(v)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%q is not an http(s) URL", v)
	}
	return nil
}
