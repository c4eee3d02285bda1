package notifier

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"tradebot/pkg/contextx"
	"tradebot/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// TelegramBot pushes operator notifications to the configured chat.
type TelegramBot struct {
	bot    *telego.Bot
	chatID int64
}

func NewTelegramBot(token string, chatID int64) (*TelegramBot, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return &TelegramBot{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// Broadcast sends a plain text message to the operator chat.
func (b *TelegramBot) Broadcast(ctx context.Context, text string) error {
	msg := tu.Message(tu.ID(b.chatID), text)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

// Queue buffers operator broadcasts so callers never block on the
// Telegram API. A draining loop ships them to the chat.
type Queue struct {
	texts chan string
}

func NewQueue(size int) *Queue {
	return &Queue{texts: make(chan string, size)}
}

// Broadcast enqueues a text for delivery.
func (q *Queue) Broadcast(ctx context.Context, text string) error {
	select {
	case q.texts <- text:
		return nil
	case <-ctx.Done():
		return ctx.Err() //nolint:wrapcheck
	}
}

// Texts exposes the queue's receive side for the draining bot.
func (q *Queue) Texts() <-chan string {
	return q.texts
}

// Run drains the texts channel into the operator chat until the
// context ends or the channel closes.
func (b *TelegramBot) Run(ctx context.Context, texts <-chan string) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err() //nolint:wrapcheck
		case text, ok := <-texts:
			if !ok {
				return nil
			}

			if err := b.Broadcast(ctx, text); err != nil {
				logger(ctx).Error("operator notification failed", logx.Error(err))
			}
		}
	}
}
