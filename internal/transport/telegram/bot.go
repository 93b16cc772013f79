package telegram

import (
	"context"
	"fmt"
	"sync"

	"github.com/sandevgo/memchat/internal/config"
	"github.com/sandevgo/memchat/internal/service/chat"
	"github.com/sandevgo/memchat/internal/service/command"
	"github.com/sandevgo/memchat/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

// SessionFactory opens a new conversation for a chat.
type SessionFactory func() *chat.Session

type Bot struct {
	bot        *tele.Bot
	router     *command.Router
	newSession SessionFactory
	sender     *sender
	ownerID    int64

	mu       sync.Mutex
	sessions map[int64]*chat.Session
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	router *command.Router,
	newSession SessionFactory,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: cfg.PollTimeout},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:        b,
		router:     router,
		newSession: newSession,
		sender:     newSender(b),
		ownerID:    cfg.OwnerID,
		sessions:   make(map[int64]*chat.Session),
	}

	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Middleware: Only allow the owner
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender() == nil || c.Sender().ID != bot.ownerID {
				return nil
			}
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Int64("owner_id", b.ownerID).Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

// session returns the conversation bound to chatID, opening it on first use.
func (b *Bot) session(chatID int64) *chat.Session {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, ok := b.sessions[chatID]
	if !ok {
		s = b.newSession()
		b.sessions[chatID] = s
	}
	return s
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	s := b.session(c.Chat().ID)

	logger := log.FromCtx(ctx).With().
		Int64("chat_id", c.Chat().ID).
		Str("session_id", s.ID).
		Logger()
	ctx = logger.WithContext(ctx)

	if out, ok := b.router.Execute(ctx, s, c.Text()); ok {
		// a failing command reports its own error
		s.DrainWarnings()
		return b.sender.sendMarkdown(ctx, c.Recipient(), out, true)
	}

	_ = c.Notify(tele.Typing)

	reply := s.Respond(ctx, c.Text())

	for _, w := range s.DrainWarnings() {
		if err := b.sender.sendPlain(ctx, c.Recipient(), w); err != nil {
			logger.Error().Err(err).Msg("failed to send warning")
		}
	}

	if s.ShowContext() && reply.Context != "" {
		block := fmt.Sprintf("🧠 **Memory context**\n\n```\n%s\n```", reply.Context)
		if err := b.sender.sendMarkdown(ctx, c.Recipient(), block, true); err != nil {
			logger.Error().Err(err).Msg("failed to send memory context")
		}
	}

	return b.sender.sendMarkdown(ctx, c.Recipient(), reply.Text, false)
}
