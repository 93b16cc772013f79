package installer

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sandevgo/memchat/internal/config"
	"github.com/sandevgo/memchat/internal/providers/llm"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	itemStyle  = lipgloss.NewStyle().PaddingLeft(2)
	selStyle   = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("5"))
	descStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

var ErrInterrupted = errors.New("memchat installation interrupted")

// Step represents a single step in the installation wizard
type Step interface {
	Init() tea.Cmd
	Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd)
	View(state *InstallState) string
}

// Skipper is implemented by steps that only apply to some answers.
type Skipper interface {
	Skip(state *InstallState) bool
}

func getSteps(runtimePath string) []Step {
	noMemory := func(s *InstallState) bool { return !s.Memory }
	noTelegram := func(s *InstallState) bool { return !s.Telegram }

	return []Step{
		NewModeStep(),
		NewTextStep("AWS region for Bedrock:",
			func(s *InstallState, v string) { s.Settings.Region = v },
			withFallback("us-west-2")),
		NewModelStep(llm.DefaultCatalog()),
		NewTextStep("MemMachine server URL:",
			func(s *InstallState, v string) { s.Settings.ServerURL = v },
			withFallback("http://localhost:8080"),
			withValidate(validateURL),
			withSkip(noMemory)),
		NewTextStep("Organization id:",
			func(s *InstallState, v string) { s.Settings.OrgID = v },
			withSkip(noMemory)),
		NewTextStep("Project id:",
			func(s *InstallState, v string) { s.Settings.ProjectID = v },
			withSkip(noMemory)),
		NewTextStep("Your user id (memories are stored under it):",
			func(s *InstallState, v string) { s.Settings.UserID = v },
			withValidate(config.ValidateUserID),
			withSkip(noMemory)),
		NewChannelStep(),
		NewTextStep("Enter your Telegram Bot Token:",
			func(s *InstallState, v string) { s.Settings.TelegramToken = v },
			withSecret(),
			withSkip(noTelegram)),
		NewTextStep("Enter your Telegram user id (only this user may talk to the bot):",
			func(s *InstallState, v string) {
				s.Settings.TelegramOwner, _ = strconv.ParseInt(v, 10, 64)
			},
			withValidate(validateOwnerID),
			withSkip(noTelegram)),
		NewFinalizationStep(),
		NewSaveEnvStep(runtimePath),
	}
}

func validateURL(v string) error {
	u, err := url.Parse(v)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("expected an http(s) URL, got %q", v)
	}
	return nil
}

func validateOwnerID(v string) error {
	if _, err := strconv.ParseInt(v, 10, 64); err != nil {
		return fmt.Errorf("expected a numeric user id, got %q", v)
	}
	return nil
}

type item struct {
	id    string
	title string
	desc  string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.id + " " + i.title }

type nextMsg struct{}

// model is the main Bubble Tea model that orchestrates the steps
type model struct {
	steps       []Step
	currentStep int
	state       *InstallState
	quitting    bool
	width       int
	height      int
}

func initialModel(runtimePath string) model {
	return model{
		steps: getSteps(runtimePath),
		state: NewInstallState(),
	}
}

func (m model) Init() tea.Cmd {
	if len(m.steps) > 0 && m.steps[0] != nil {
		return m.steps[0].Init()
	}
	return nil
}

// advance moves past the current step and every following step that does
// not apply to the answers given so far.
func (m model) advance() (model, tea.Cmd) {
	m.currentStep++
	for m.currentStep < len(m.steps) {
		sk, ok := m.steps[m.currentStep].(Skipper)
		if !ok || !sk.Skip(m.state) {
			break
		}
		m.currentStep++
	}
	if m.currentStep >= len(m.steps) {
		return m, tea.Quit
	}
	return m, m.steps[m.currentStep].Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	}

	if m.currentStep >= len(m.steps) {
		return m, tea.Quit
	}

	nextStep, cmd := m.steps[m.currentStep].Update(msg, m.state, m.width, m.height)
	if nextStep == nil {
		return m.advance()
	}

	m.steps[m.currentStep] = nextStep
	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return "Installation cancelled.\n"
	}
	if m.currentStep >= len(m.steps) {
		return "Configuration complete!\n"
	}
	return titleStyle.Render("Setting up memchat 🧠") + "\n\n" + m.steps[m.currentStep].View(m.state)
}

// RunWizard starts the TUI and writes <runtimePath>/.env at the end.
func RunWizard(runtimePath string) (*InstallState, error) {
	p := tea.NewProgram(initialModel(runtimePath), tea.WithAltScreen())
	m, err := p.Run()
	if err != nil {
		return nil, err
	}

	finalModel := m.(model)
	if finalModel.quitting || finalModel.currentStep < len(finalModel.steps) {
		return nil, ErrInterrupted
	}

	return finalModel.state, nil
}
