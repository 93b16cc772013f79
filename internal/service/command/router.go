package command

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sandevgo/memchat/internal/service/chat"
)

type Command interface {
	Name() string
	Usage() string
	Description() string
	Execute(ctx context.Context, s *chat.Session, args []string) (string, error)
}

type Router struct {
	commands map[string]Command
}

func New(commands []Command) *Router {
	r := &Router{
		commands: make(map[string]Command),
	}

	for _, cmd := range commands {
		r.commands[cmd.Name()] = cmd
	}
	return r
}

// NewDefault wires every built-in command, /help included.
func NewDefault() *Router {
	r := New(NewCommands())
	help := NewHelpCommand(r)
	r.commands[help.Name()] = help
	return r
}

// Execute runs input as a slash command. The boolean is false when input is
// not a command and should go to the model instead.
func (r *Router) Execute(ctx context.Context, s *chat.Session, input string) (string, bool) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return "", false
	}

	parts := strings.Fields(input)
	// telegram appends the bot name in groups: /model@memchat_bot
	name, _, _ := strings.Cut(strings.TrimPrefix(parts[0], "/"), "@")
	args := parts[1:]

	cmd, ok := r.commands[name]
	if !ok {
		return fmt.Sprintf("Unknown command: /%s", name), true
	}

	result, err := cmd.Execute(ctx, s, args)
	if err != nil {
		return NewResponseFormatter().Error(name, err), true
	}
	return result, true
}

// ListCommands returns the commands sorted by name.
func (r *Router) ListCommands() []Command {
	res := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		res = append(res, cmd)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name() < res[j].Name() })
	return res
}
