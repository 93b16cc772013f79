package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/sandevgo/memchat/internal/core"
	"github.com/sandevgo/memchat/internal/service/chat"
	"github.com/sandevgo/memchat/internal/service/command"
	"github.com/sandevgo/memchat/internal/service/ui"
	"github.com/sandevgo/memchat/pkg/conv"
	"github.com/sandevgo/memchat/pkg/log"
)

const (
	headerHeight = 3
	inputHeight  = 3
)

type Options struct {
	Session     *chat.Session
	Router      *command.Router
	TypingSpeed time.Duration
	Region      string
	ServerURL   string
}

type entryKind int

const (
	entryUser entryKind = iota
	entryAssistant
	entryContext
	entryWarning
	entrySystem
)

type entry struct {
	kind entryKind
	text string
}

type replyMsg struct {
	reply    chat.Reply
	warnings []string
}

type commandMsg struct {
	name string
	out  string
}

type tickMsg struct{}

// typing holds the words of the reply still being revealed.
type typing struct {
	words []string
	next  int
}

type model struct {
	ctx  context.Context
	opts Options

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer

	entries []entry
	typing  *typing
	busy    bool
	ready   bool
	width   int
	height  int
}

func newModel(ctx context.Context, opts Options) model {
	ti := textinput.New()
	ti.Placeholder = "Type a message, /help for commands, Ctrl+C to exit"
	ti.Focus()
	ti.CharLimit = 4000

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = ui.AssistantStyle

	return model{
		ctx:      ctx,
		opts:     opts,
		input:    ti,
		viewport: viewport.New(80, 20),
		spinner:  sp,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-headerHeight-inputHeight, 1)
		m.input.Width = max(msg.Width-4, 10)
		m.renderer, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(max(msg.Width-4, 20)),
		)
		m.ready = true
		m.refresh()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.busy {
				return m, nil
			}
			return m.submit()
		}

	case replyMsg:
		for _, w := range msg.warnings {
			m.entries = append(m.entries, entry{kind: entryWarning, text: w})
		}
		if m.opts.Session.ShowContext() && msg.reply.Context != "" {
			m.entries = append(m.entries, entry{kind: entryContext, text: msg.reply.Context})
		}
		m.entries = append(m.entries, entry{kind: entryAssistant})
		m.typing = &typing{words: conv.Words(msg.reply.Text)}
		m.refresh()
		return m, m.tick()

	case tickMsg:
		if m.typing == nil {
			return m, nil
		}
		last := &m.entries[len(m.entries)-1]
		last.text += m.typing.words[m.typing.next]
		m.typing.next++
		if m.typing.next >= len(m.typing.words) {
			m.typing = nil
			m.busy = false
		}
		m.refresh()
		if m.typing != nil {
			return m, m.tick()
		}
		return m, nil

	case commandMsg:
		if msg.name == "clear" || msg.name == "forget" {
			m.entries = nil
		}
		m.entries = append(m.entries, entry{kind: entrySystem, text: msg.out})
		m.busy = false
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	if text == "" {
		return m, nil
	}

	switch strings.ToLower(text) {
	case "quit", "exit", "/quit", "/exit":
		return m, tea.Quit
	}

	m.busy = true
	if strings.HasPrefix(text, "/") {
		return m, m.runCommand(text)
	}

	m.entries = append(m.entries, entry{kind: entryUser, text: text})
	m.refresh()
	return m, tea.Batch(m.spinner.Tick, m.respond(text))
}

// respond runs the turn off the UI loop.
func (m model) respond(text string) tea.Cmd {
	return func() tea.Msg {
		reply := m.opts.Session.Respond(m.ctx, text)
		return replyMsg{reply: reply, warnings: m.opts.Session.DrainWarnings()}
	}
}

func (m model) runCommand(text string) tea.Cmd {
	return func() tea.Msg {
		name := strings.TrimPrefix(strings.Fields(text)[0], "/")
		out, _ := m.opts.Router.Execute(m.ctx, m.opts.Session, text)
		// a failing command reports its own error
		dropped := m.opts.Session.DrainWarnings()
		log.FromCtx(m.ctx).Debug().Str("command", name).Int("warnings_dropped", len(dropped)).Msg("command executed")
		return commandMsg{name: name, out: out}
	}
}

func (m model) tick() tea.Cmd {
	return tea.Tick(m.opts.TypingSpeed, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (m *model) refresh() {
	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()
}

func (m model) renderHistory() string {
	var sb strings.Builder
	for i, e := range m.entries {
		typingNow := m.typing != nil && i == len(m.entries)-1
		switch e.kind {
		case entryUser:
			sb.WriteString(ui.UserStyle.Render("You") + "\n" + e.text + "\n\n")
		case entryAssistant:
			text := e.text
			if !typingNow {
				text = m.markdown(text)
			}
			sb.WriteString(ui.AssistantStyle.Render("Assistant") + "\n" + text + "\n\n")
		case entryContext:
			sb.WriteString(ui.ContextStyle.Render("🧠 Memory context\n"+e.text) + "\n")
		case entryWarning:
			sb.WriteString(ui.WarnStyle.Render(e.text) + "\n")
		case entrySystem:
			sb.WriteString(m.markdown(e.text) + "\n")
		}
	}
	return sb.String()
}

func (m model) markdown(text string) string {
	if m.renderer == nil {
		return text
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

func (m model) header() string {
	s := m.opts.Session
	parts := []string{
		"memchat",
		s.Mode().String() + " mode",
		"model: " + s.Catalog().Name(s.Model()),
		"region: " + m.opts.Region,
	}
	if s.Mode() == core.ModeMemory {
		parts = append(parts, "server: "+m.opts.ServerURL, "user: "+s.UserID)
	}
	return ui.HeaderStyle.Render(strings.Join(parts, " · "))
}

func (m model) View() string {
	if !m.ready {
		return "Starting...\n"
	}

	status := m.input.View()
	if m.busy && m.typing == nil {
		status = fmt.Sprintf("%s Thinking...", m.spinner.View())
	}

	return m.header() + "\n" + m.viewport.View() + "\n" + status
}

// Run starts the chat UI and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newModel(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat ui: %w", err)
	}
	return nil
}
