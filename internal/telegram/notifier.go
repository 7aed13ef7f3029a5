// Package telegram pushes availability alerts through the Telegram Bot API.
package telegram

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/LUANPELO/buscador-buses-colombia/internal/models"
)

// Notifier sends alert notifications to a single chat.
type Notifier struct {
	bot            *tgbotapi.BotAPI
	chatID         int64
	maxRetries     int
	retryDelayBase time.Duration
}

// NewNotifier creates a Telegram notifier.
func NewNotifier(botToken, chatID string, maxRetries int, retryDelayBase time.Duration) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat ID: %w", err)
	}

	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelayBase <= 0 {
		retryDelayBase = time.Second
	}

	return &Notifier{
		bot:            bot,
		chatID:         chatIDInt,
		maxRetries:     maxRetries,
		retryDelayBase: retryDelayBase,
	}, nil
}

// Notify sends one message covering the alerts emitted by a single check.
func (n *Notifier) Notify(alerts []models.Alert) error {
	if len(alerts) == 0 {
		return nil
	}
	return n.sendMarkdownV2(formatMessage(alerts))
}

// sendMarkdownV2 sends a MarkdownV2 message with linear-backoff retry.
func (n *Notifier) sendMarkdownV2(text string) error {
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = "MarkdownV2"

	var lastErr error
	for i := 0; i < n.maxRetries; i++ {
		if _, err := n.bot.Send(msg); err == nil {
			return nil
		} else {
			lastErr = err
		}
		time.Sleep(n.retryDelayBase * time.Duration(i+1))
	}
	return fmt.Errorf("failed after %d retries: %w", n.maxRetries, lastErr)
}

func levelEmoji(level models.AlertLevel) string {
	switch level {
	case models.LevelCritical:
		return "🚨"
	case models.LevelHigh:
		return "⚠️"
	default:
		return "⚡"
	}
}

// formatMessage renders alerts as a Telegram MarkdownV2 message.
func formatMessage(alerts []models.Alert) string {
	first := alerts[0]
	var b strings.Builder

	b.WriteString("🚌 *Alerta de disponibilidad*\n\n")
	b.WriteString(fmt.Sprintf("🗺 %s → %s \\(%s\\)\n\n",
		escapeMarkdownV2(first.Origin),
		escapeMarkdownV2(first.Destination),
		escapeMarkdownV2(first.Date)))

	for _, alert := range alerts {
		b.WriteString(fmt.Sprintf("%s *%s* %s \\- %s\n",
			levelEmoji(alert.Level),
			escapeMarkdownV2(string(alert.Kind)),
			escapeMarkdownV2(alert.Operator),
			escapeMarkdownV2(alert.DepartureTime)))
		b.WriteString(fmt.Sprintf("   Quedan %d de %d asientos\n", alert.SeatsAvailable, alert.SeatsTotal))
		if alert.Price > 0 {
			b.WriteString(fmt.Sprintf("   Precio: %s COP\n", escapeMarkdownV2(fmt.Sprintf("%.0f", alert.Price))))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// escapeMarkdownV2 escapes special characters for Telegram MarkdownV2.
func escapeMarkdownV2(text string) string {
	var b strings.Builder
	b.Grow(len(text) + len(text)/4)
	for _, char := range text {
		switch char {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!':
			b.WriteByte('\\')
		}
		b.WriteRune(char)
	}
	return b.String()
}
