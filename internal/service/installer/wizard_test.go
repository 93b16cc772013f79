package installer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/memchat/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func drive(t *testing.T, m model, msgs ...tea.Msg) model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

func TestWizard_StatelessTerminal(t *testing.T) {
	dir := t.TempDir()
	m := initialModel(dir)

	m = drive(t, m,
		enter,     // stateless
		enter,     // region fallback
		enter,     // first catalog model
		enter,     // terminal only
		nextMsg{}, // finalization
		nextMsg{}, // save
	)

	assert.Equal(t, len(m.steps), m.currentStep)

	data, err := os.ReadFile(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, "AWS_REGION=us-west-2\nBEDROCK_MODEL_ID=openai.gpt-oss-20b-1:0\n", string(data))

	info, err := os.Stat(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestWizard_MemoryAndTelegram(t *testing.T) {
	dir := t.TempDir()
	m := initialModel(dir)

	m = drive(t, m,
		down, enter, // memory
		typed("eu-central-1"), enter,
		down, enter, // second model
		enter, // server URL fallback
		typed("workshop-org"), enter,
		typed("workshop-project"), enter,
		typed("alice"), enter,
		down, enter, // terminal and telegram
		typed("123:abc"), enter,
		typed("not-a-number"), enter,
	)

	// invalid owner id keeps the wizard on the same step
	step, ok := m.steps[m.currentStep].(*TextStep)
	require.True(t, ok)
	require.Error(t, step.err)

	step.input.SetValue("42")
	m = drive(t, m, enter, nextMsg{}, nextMsg{})

	data, err := os.ReadFile(filepath.Join(dir, ".env"))
	require.NoError(t, err)

	got := string(data)
	for _, line := range []string{
		"AWS_REGION=eu-central-1",
		"BEDROCK_MODEL_ID=anthropic.claude-3-sonnet-20240229-v1:0",
		"MEMORY_SERVER_URL=http://localhost:8080",
		"ORG_ID=workshop-org",
		"PROJECT_ID=workshop-project",
		"USER_ID=alice",
		"ENABLE_TELEGRAM=true",
		"TELEGRAM_TOKEN=123:abc",
		"TELEGRAM_OWNER_ID=42",
	} {
		assert.Contains(t, got, line+"\n")
	}
}

func TestWizard_CtrlCInterrupts(t *testing.T) {
	m := drive(t, initialModel(t.TempDir()), tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, m.quitting)
	assert.Equal(t, "Installation cancelled.\n", m.View())
}

func TestTextStep_Validation(t *testing.T) {
	state := NewInstallState()
	step := NewTextStep("URL:",
		func(s *InstallState, v string) { s.Settings.ServerURL = v },
		withValidate(validateURL),
	)

	next, _ := step.Update(typed("localhost:8080"), state, 80, 24)
	next, _ = next.Update(enter, state, 80, 24)
	require.NotNil(t, next)
	assert.Contains(t, next.View(state), "expected an http(s) URL")

	ts := next.(*TextStep)
	ts.input.SetValue("https://mem.example.com")
	next, _ = ts.Update(enter, state, 80, 24)
	assert.Nil(t, next)
	assert.Equal(t, "https://mem.example.com", state.Settings.ServerURL)
}

func TestTextStep_RejectsQuotedUserID(t *testing.T) {
	state := NewInstallState()
	step := NewTextStep("User:",
		func(s *InstallState, v string) { s.Settings.UserID = v },
		withValidate(config.ValidateUserID),
	)

	next, _ := step.Update(typed("o'brien"), state, 80, 24)
	next, _ = next.Update(enter, state, 80, 24)
	require.NotNil(t, next)
	assert.Contains(t, next.View(state), "invalid USER_ID")
	assert.Empty(t, state.Settings.UserID)
}

func TestTextStep_RequiresValue(t *testing.T) {
	state := NewInstallState()
	step := NewTextStep("User:", func(s *InstallState, v string) { s.Settings.UserID = v })

	next, _ := step.Update(enter, state, 80, 24)
	require.NotNil(t, next)
	assert.Contains(t, next.View(state), "a value is required")
}

func TestSaveEnv_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("X=1\n"), 0600))

	err := saveEnv(dir, &Settings{Region: "us-east-1"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "already exists"))
}

func TestFinalize_DropsUnusedAnswers(t *testing.T) {
	state := &InstallState{
		Memory:   false,
		Telegram: true,
		Settings: Settings{UserID: "alice", TelegramToken: "t", TelegramOwner: 1},
	}
	finalize(state)

	assert.Empty(t, state.Settings.UserID)
	assert.True(t, state.Settings.EnableTelegram)

	state.Telegram = false
	finalize(state)
	assert.False(t, state.Settings.EnableTelegram)
	assert.Empty(t, state.Settings.TelegramToken)
	assert.Zero(t, state.Settings.TelegramOwner)
}
