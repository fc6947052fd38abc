// Package telegram broadcasts auction milestones (hammer-downs, trades,
// resets) to a Telegram chat. Announcements are color for spectators, not part
// of settlement: delivery failures are reported to the caller for logging and
// never roll back state.
//
// The client supports MarkdownV2 formatting and retries delivery with linear
// backoff for transient API failures.
package telegram

import (
	"fmt"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/madrasbay/auctionhall/internal/models"
)

// Client handles Telegram announcements
type Client struct {
	bot            *tgbotapi.BotAPI
	chatID         int64
	maxRetries     int
	retryDelayBase time.Duration
}

// NewClient creates a new Telegram client
func NewClient(botToken, chatID string, maxRetries int, retryDelayBase time.Duration) (*Client, error) {
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

	return &Client{
		bot:            bot,
		chatID:         chatIDInt,
		maxRetries:     maxRetries,
		retryDelayBase: retryDelayBase,
	}, nil
}

// AnnounceSale broadcasts a hammer-down.
func (c *Client) AnnounceSale(athlete *models.Athlete, franchise *models.Franchise, price int) error {
	msg := fmt.Sprintf("🔨 *SOLD* — %s \\(%s\\) to %s for *%s*\nRemaining purse: %s",
		escapeMarkdownV2(athlete.Name),
		escapeMarkdownV2(athlete.Role),
		escapeMarkdownV2(franchise.Name),
		escapeMarkdownV2(formatAmount(price)),
		escapeMarkdownV2(formatAmount(franchise.Budget)))
	return c.send(msg)
}

// AnnounceTrade broadcasts a completed trade between franchises.
func (c *Client) AnnounceTrade(athlete *models.Athlete, from, to *models.Franchise) error {
	msg := fmt.Sprintf("🔁 *TRADE* — %s moves from %s to %s at %s",
		escapeMarkdownV2(athlete.Name),
		escapeMarkdownV2(from.Name),
		escapeMarkdownV2(to.Name),
		escapeMarkdownV2(formatAmount(athlete.SoldPrice)))
	return c.send(msg)
}

// AnnounceReset broadcasts a system-wide reset.
func (c *Client) AnnounceReset() error {
	return c.send("♻️ *AUCTION RESET* — all acquisitions cleared, purses restored\\.")
}

// send delivers a MarkdownV2 message with retry.
func (c *Client) send(message string) error {
	msg := tgbotapi.NewMessage(c.chatID, message)
	msg.ParseMode = "MarkdownV2"

	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		_, err := c.bot.Send(msg)
		if err == nil {
			return nil
		}
		lastErr = err
		time.Sleep(c.retryDelayBase * time.Duration(i+1))
	}

	return fmt.Errorf("failed to send message after %d retries: %w", c.maxRetries, lastErr)
}

// formatAmount renders an integer purse amount with the currency mark.
func formatAmount(amount int) string {
	return fmt.Sprintf("₹%d", amount)
}

// escapeMarkdownV2 escapes special characters for Telegram MarkdownV2
func escapeMarkdownV2(text string) string {
	result := ""
	for _, char := range text {
		switch char {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!':
			result += "\\" + string(char)
		default:
			result += string(char)
		}
	}
	return result
}
