package installer

import (
	tea "github.com/charmbracelet/bubbletea"
)

// FinalizationStep drops the answers that the chosen mode does not use
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
	if !state.Memory {
		state.Settings.ServerURL = ""
		state.Settings.OrgID = ""
		state.Settings.ProjectID = ""
		state.Settings.UserID = ""
	}

	state.Settings.EnableTelegram = state.Telegram && state.Settings.TelegramToken != ""
	if !state.Settings.EnableTelegram {
		state.Settings.TelegramToken = ""
		state.Settings.TelegramOwner = 0
	}
}
