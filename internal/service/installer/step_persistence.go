package installer

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/memchat/pkg/env"
)

// SaveEnvStep writes the collected configuration to <runtime>/.env
type SaveEnvStep struct {
	dir   string
	err   error
	saved bool
}

func NewSaveEnvStep(runtimePath string) Step {
	return &SaveEnvStep{dir: runtimePath}
}

func (s *SaveEnvStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *SaveEnvStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.saved {
		return nil, nil
	}
	if s.err != nil {
		return s, nil
	}

	if err := saveEnv(s.dir, &state.Settings); err != nil {
		s.err = err
		return s, nil
	}

	s.saved = true
	return nil, nil
}

func (s *SaveEnvStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	if s.saved {
		return "Configuration saved successfully!\n"
	}
	return "Saving configuration...\n"
}

func saveEnv(dir string, settings *Settings) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create runtime directory: %w", err)
	}

	envPath := filepath.Join(dir, ".env")
	if _, err := os.Stat(envPath); err == nil {
		return fmt.Errorf(".env file already exists at %s", envPath)
	}

	content, err := env.MarshalEnv(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	// credentials may be inside
	if err := os.WriteFile(envPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", envPath, err)
	}
	return nil
}
