package installer

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/tuskchat/internal/core"
)

// FinalizationStep computes derived values
type FinalizationStep struct{}

func NewFinalizationStep() Step {
	return &FinalizationStep{}
}

func (s *FinalizationStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *FinalizationStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	finalize(state)
	return nil, nil
}

func (s *FinalizationStep) View(state *InstallState) string {
	return "Finalizing configuration...\n"
}

func finalize(state *InstallState) {
	state.EnableTelegram = state.Channel == "telegram" && state.TelegramToken != ""
	state.EnableCLI = !state.EnableTelegram

	if state.UserID == "" {
		state.UserID = core.DefaultUserID
	}
	if state.Backend != "kv" {
		state.KVURL = ""
		state.KVToken = ""
	}
}
