package installer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type choice struct {
	label string
	desc  string
}

// ChoiceStep asks to pick one of a few fixed options
type ChoiceStep struct {
	title   string
	choices []choice
	cursor  int
	apply   func(state *InstallState, index int)
}

func NewModeStep() Step {
	return &ChoiceStep{
		title: "Select the chat mode:",
		choices: []choice{
			{label: "Stateless", desc: "every message stands alone"},
			{label: "Memory", desc: "remembers you through a MemMachine server"},
		},
		apply: func(state *InstallState, index int) {
			state.Memory = index == 1
		},
	}
}

func NewChannelStep() Step {
	return &ChoiceStep{
		title: "Where will you chat?",
		choices: []choice{
			{label: "Terminal", desc: "memchat stateless / memchat memory"},
			{label: "Terminal and Telegram", desc: "also run memchat telegram"},
		},
		apply: func(state *InstallState, index int) {
			state.Telegram = index == 1
		},
	}
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
			s.apply(state, s.cursor)
			return nil, nil
		}
	}
	return s, nil
}

func (s *ChoiceStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString(s.title + "\n\n")
	for i, c := range s.choices {
		line := fmt.Sprintf("%s  %s", c.label, descStyle.Render(c.desc))
		if s.cursor == i {
			b.WriteString(selStyle.Render("❯ "+line) + "\n")
		} else {
			b.WriteString(itemStyle.Render("  "+line) + "\n")
		}
	}
	b.WriteString("\n(press ctrl+c to quit)\n")
	return b.String()
}
