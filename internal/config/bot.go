package config

// Bot is the operator notification channel.
type Bot struct {
	Token      string `env:"BOT_TOKEN" json:"-"`
	ChatID     int64  `env:"BOT_CHAT_ID"`
	WebhookURL string `env:"BOT_WEBHOOK_URL" validate:"omitempty,url"`
}
