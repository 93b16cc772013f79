package installer

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/memchat/internal/providers/llm"
)

// ModelStep picks the default Bedrock model from the catalog
type ModelStep struct {
	list list.Model
}

func NewModelStep(catalog llm.Catalog) Step {
	items := make([]list.Item, len(catalog))
	for i, m := range catalog {
		items[i] = item{
			id:    m.ID,
			title: m.Name,
			desc:  "ID: " + m.ID + " | family: " + llm.ResolveFamily(m.ID).String(),
		}
	}

	l := list.New(items, list.NewDefaultDelegate(), 60, 20)
	l.Title = "Select the default model"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return &ModelStep{list: l}
}

func (s *ModelStep) Init() tea.Cmd {
	return nil
}

func (s *ModelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if width > 0 && height > 4 {
		s.list.SetSize(width, height-4)
	}

	var cmd tea.Cmd
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		wasFiltering := s.list.FilterState() == list.Filtering
		s.list, cmd = s.list.Update(msg)

		if wasFiltering || s.list.FilterState() == list.Filtering {
			return s, cmd
		}

		if i, ok := s.list.SelectedItem().(item); ok {
			state.Settings.ModelID = i.id
			return nil, nil
		}
		return s, cmd
	}

	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *ModelStep) View(state *InstallState) string {
	return s.list.View()
}
