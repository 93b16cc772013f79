package telegram

import (
	"context"
	"strings"

	"github.com/sandevgo/memchat/pkg/conv"
	"github.com/sandevgo/memchat/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const maxTelegramMsgLen = 4000 // Safety margin below 4096

// messageSender is the part of tele.Bot used to deliver replies.
type messageSender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

type sender struct {
	bot messageSender
}

func newSender(bot messageSender) *sender {
	return &sender{bot: bot}
}

// sendMarkdown converts Markdown to Telegram HTML and sends it in chunks if needed.
func (s *sender) sendMarkdown(ctx context.Context, to tele.Recipient, md string, silent bool) error {
	html := strings.TrimSpace(conv.MarkdownToTelegramHTML(md))
	if html == "" {
		return nil
	}
	return s.send(ctx, to, html, silent, tele.ModeHTML)
}

func (s *sender) sendPlain(ctx context.Context, to tele.Recipient, text string) error {
	return s.send(ctx, to, text, true)
}

func (s *sender) send(ctx context.Context, to tele.Recipient, text string, silent bool, extra ...interface{}) error {
	logger := log.FromCtx(ctx)

	for i, chunk := range conv.Split(text, maxTelegramMsgLen) {
		opts := append([]interface{}{}, extra...)
		if silent && i == 0 {
			opts = append(opts, tele.Silent)
		}

		if _, err := s.bot.Send(to, chunk, opts...); err != nil {
			logger.Error().Err(err).Int("chunk", i).Int("len", len(chunk)).Msg("failed to send telegram chunk")
			return err
		}
	}
	return nil
}
