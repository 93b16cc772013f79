package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandevgo/memchat/internal/service/chat"
)

type ContextCommand struct {
	formatter *ResponseFormatter
}

func NewContextCommand() *ContextCommand {
	return &ContextCommand{formatter: NewResponseFormatter()}
}

func (c *ContextCommand) Name() string        { return "context" }
func (c *ContextCommand) Usage() string       { return "/context" }
func (c *ContextCommand) Description() string { return "Toggle display of retrieved memory context" }

func (c *ContextCommand) Execute(ctx context.Context, s *chat.Session, args []string) (string, error) {
	if s.ToggleContext() {
		return c.formatter.Success("Memory context will be shown"), nil
	}
	return c.formatter.Success("Memory context hidden"), nil
}

type ClearCommand struct {
	formatter *ResponseFormatter
}

func NewClearCommand() *ClearCommand {
	return &ClearCommand{formatter: NewResponseFormatter()}
}

func (c *ClearCommand) Name() string        { return "clear" }
func (c *ClearCommand) Usage() string       { return "/clear" }
func (c *ClearCommand) Description() string { return "Clear the conversation on screen" }

func (c *ClearCommand) Execute(ctx context.Context, s *chat.Session, args []string) (string, error) {
	s.Clear()
	return c.formatter.Combine(
		c.formatter.Success("Conversation cleared"),
		c.formatter.Tip("Stored memories are untouched, use /forget to delete them"),
	), nil
}

type ForgetCommand struct {
	formatter *ResponseFormatter
}

func NewForgetCommand() *ForgetCommand {
	return &ForgetCommand{formatter: NewResponseFormatter()}
}

func (c *ForgetCommand) Name() string        { return "forget" }
func (c *ForgetCommand) Usage() string       { return "/forget" }
func (c *ForgetCommand) Description() string { return "Delete every stored memory of the current user" }

func (c *ForgetCommand) Execute(ctx context.Context, s *chat.Session, args []string) (string, error) {
	if err := s.Forget(ctx); err != nil {
		if errors.Is(err, chat.ErrNoMemory) {
			return c.formatter.Combine(
				c.formatter.Info("Forget"),
				c.formatter.Label("Status", "nothing is stored in stateless mode"),
			), nil
		}
		return "", err
	}
	return c.formatter.Success(fmt.Sprintf("All memories of %s deleted", s.UserID)), nil
}

type HealthCommand struct {
	formatter *ResponseFormatter
}

func NewHealthCommand() *HealthCommand {
	return &HealthCommand{formatter: NewResponseFormatter()}
}

func (c *HealthCommand) Name() string        { return "health" }
func (c *HealthCommand) Usage() string       { return "/health" }
func (c *HealthCommand) Description() string { return "Test connections to Bedrock and the memory server" }

func (c *HealthCommand) Execute(ctx context.Context, s *chat.Session, args []string) (string, error) {
	sections := []string{c.formatter.Info("Connection Test")}
	for _, check := range s.Health(ctx) {
		sections = append(sections, c.formatter.Check(check.Name, check.Err))
	}
	return c.formatter.Combine(sections...), nil
}

type HelpCommand struct {
	router    *Router
	formatter *ResponseFormatter
}

func NewHelpCommand(r *Router) *HelpCommand {
	return &HelpCommand{router: r, formatter: NewResponseFormatter()}
}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Usage() string       { return "/help" }
func (c *HelpCommand) Description() string { return "List available commands" }

func (c *HelpCommand) Execute(ctx context.Context, s *chat.Session, args []string) (string, error) {
	cmds := c.router.ListCommands()
	items := make([]string, len(cmds))
	for i, cmd := range cmds {
		items[i] = fmt.Sprintf("`%s` %s", cmd.Usage(), cmd.Description())
	}
	return c.formatter.Combine(
		c.formatter.Info("Commands"),
		c.formatter.List(items),
	), nil
}
