package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/memchat/internal/core"
	"github.com/sandevgo/memchat/internal/service/chat"
)

type ModelCommand struct {
	formatter *ResponseFormatter
}

func NewModelCommand() *ModelCommand {
	return &ModelCommand{
		formatter: NewResponseFormatter(),
	}
}

func (c *ModelCommand) Name() string {
	return "model"
}

func (c *ModelCommand) Usage() string {
	return "/model [id|number]"
}

func (c *ModelCommand) Description() string {
	return "Show or change current model"
}

func (c *ModelCommand) Execute(ctx context.Context, s *chat.Session, args []string) (string, error) {
	catalog := s.Catalog()

	if len(args) == 0 {
		current := s.Model()
		items := make([]string, len(catalog))
		for i, m := range catalog {
			marker := ""
			if m.ID == current {
				marker = " ◀"
			}
			items[i] = fmt.Sprintf("%d. **%s** `%s`%s", i+1, m.Name, m.ID, marker)
		}

		return c.formatter.Combine(
			c.formatter.Info("Current Model"),
			c.formatter.Label("Model", catalog.Name(current)),
			c.formatter.Label("ID", current),
			c.formatter.List(items),
			c.formatter.Usage(c.Usage()),
			c.formatter.Examples([]string{
				"/model 2",
				"/model anthropic.claude-3-haiku-20240307-v1:0",
			}),
		), nil
	}

	m, err := s.SetModel(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to set model: %w", err)
	}

	msg := fmt.Sprintf("Model changed to: %s", m.Name)
	if s.Mode() == core.ModeMemory {
		return c.formatter.Combine(
			c.formatter.Success(msg),
			c.formatter.Tip("Your memories are kept across model switches"),
		), nil
	}
	return c.formatter.Success(msg), nil
}
