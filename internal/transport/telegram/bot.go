package telegram

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sandevgo/tuskchat/internal/config"
	"github.com/sandevgo/tuskchat/internal/core"
	"github.com/sandevgo/tuskchat/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

type chatService interface {
	Send(ctx context.Context, userID, input string) (core.Message, error)
}

type Bot struct {
	bot     *tele.Bot
	sender  *sender
	chat    chatService
	router  core.CmdRouter
	userID  string
	ownerID int64
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	userID string,
	chat chatService,
	router core.CmdRouter,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:     b,
		sender:  newSender(b),
		chat:    chat,
		router:  router,
		userID:  userID,
		ownerID: cfg.OwnerID,
	}

	// Use context from Signal with logger
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
				return nil // Ignore unauthorized users
			}
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := log.WithUser(c.Get(baseContextKey).(context.Context), b.userID)
	logger := log.FromCtx(ctx)

	// Notify user we are working
	_ = c.Notify(tele.Typing)

	reply := b.respond(ctx, c.Text())
	if err := b.sender.sendMarkdown(ctx, c.Chat(), reply); err != nil {
		logger.Error().Err(err).Msg("failed to deliver reply")
		return err
	}
	return nil
}

// respond turns one incoming text into the Markdown reply for it.
func (b *Bot) respond(ctx context.Context, text string) string {
	if out, ok := b.router.Execute(ctx, b.userID, text); ok {
		return out
	}

	msg, err := b.chat.Send(ctx, b.userID, text)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("chat turn failed")
		return errorNotice(err)
	}
	return msg.Content
}

func errorNotice(err error) string {
	switch {
	case errors.Is(err, core.ErrEmptyInput):
		return "⚠️ Message is empty"
	case errors.Is(err, core.ErrStorageUnavailable):
		return "❌ **History storage is unavailable**\n\nPlease try again later."
	case errors.Is(err, core.ErrInference):
		return fmt.Sprintf("❌ **No reply from the model**\n\n`%v`", err)
	default:
		return fmt.Sprintf("❌ **Error**\n\n`%v`", err)
	}
}
