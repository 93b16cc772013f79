package installer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TextStep collects a single value
type TextStep struct {
	prompt   string
	fallback string
	input    textinput.Model
	validate func(string) error
	apply    func(state *InstallState, value string)
	skip     func(state *InstallState) bool
	err      error
}

type textOption func(*TextStep)

func withFallback(v string) textOption {
	return func(s *TextStep) {
		s.fallback = v
		s.input.Placeholder = v
	}
}

func withSecret() textOption {
	return func(s *TextStep) {
		s.input.EchoMode = textinput.EchoPassword
		s.input.EchoCharacter = '•'
	}
}

func withValidate(fn func(string) error) textOption {
	return func(s *TextStep) { s.validate = fn }
}

func withSkip(fn func(state *InstallState) bool) textOption {
	return func(s *TextStep) { s.skip = fn }
}

func NewTextStep(prompt string, apply func(state *InstallState, value string), opts ...textOption) Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 50

	s := &TextStep{
		prompt: prompt,
		input:  ti,
		apply:  apply,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TextStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *TextStep) Skip(state *InstallState) bool {
	return s.skip != nil && s.skip(state)
}

func (s *TextStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		value := strings.TrimSpace(s.input.Value())
		if value == "" {
			value = s.fallback
		}
		if value == "" {
			s.err = fmt.Errorf("a value is required")
			return s, nil
		}
		if s.validate != nil {
			if err := s.validate(value); err != nil {
				s.err = err
				return s, nil
			}
		}
		s.apply(state, value)
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *TextStep) View(state *InstallState) string {
	view := s.prompt + "\n\n" + s.input.View() + "\n\n"
	if s.err != nil {
		view += errorStyle.Render(s.err.Error()) + "\n\n"
	}
	return view + "(press enter to confirm)\n"
}
