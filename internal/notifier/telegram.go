package notifier

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/sirupsen/logrus"
)

// Telegram sends alerts to a group chat through the Bot API.
type Telegram struct {
	bot    *bot.Bot
	chatID int64
	logger *logrus.Logger
}

// NewTelegram validates the token against the Bot API client. Group and
// channel chat IDs are negative.
func NewTelegram(token string, chatID int64, logger *logrus.Logger) (*Telegram, error) {
	b, err := bot.New(token)
	if err != nil {
		return nil, err
	}
	return &Telegram{bot: b, chatID: chatID, logger: logger}, nil
}

func (t *Telegram) Send(ctx context.Context, text string) bool {
	_, err := t.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    t.chatID,
		Text:      text,
		ParseMode: "Markdown",
	})
	if err != nil {
		t.logger.Errorf("telegram send to chat %d failed: %v", t.chatID, err)
		return false
	}
	t.logger.Debugf("telegram message delivered to chat %d", t.chatID)
	return true
}
