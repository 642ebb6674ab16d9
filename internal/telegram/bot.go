package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"go-applytrack/internal/extract"
)

// Bot delivers extraction outcomes to the user. It is the notification
// channel collaborator: success and error messages only, no persistence.
type Bot struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewBot(token string, chatID int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &Bot{
		api:    api,
		chatID: chatID,
	}, nil
}

// SendResult posts the extracted fields for review. Empty fields show as
// N/A so the user sees what still needs manual completion.
func (b *Bot) SendResult(res *extract.Result) error {
	text := fmt.Sprintf(
		"🔥 <b>%s</b>\n"+
			"🏢 %s\n"+
			"📍 %s\n"+
			"💰 %s\n"+
			"📅 %s\n"+
			"🔗 <a href=\"%s\">View Posting</a>",
		orNA(res.RoleTitle),
		orNA(res.Organization),
		orNA(res.Location),
		orNA(res.Salary),
		orNA(res.PostedDate),
		res.PostingURL,
	)

	if res.Description != "" {
		text += "\n📄 " + truncate(res.Description, 400)
	}

	return b.send(text)
}

func (b *Bot) SendStatus(message string) error {
	return b.send("ℹ️ " + message)
}

func (b *Bot) SendError(errReq error) error {
	return b.send(fmt.Sprintf("⚠️ <b>Extraction Error</b>:\n%v", errReq))
}

func (b *Bot) send(text string) error {
	msg := tgbotapi.NewMessage(b.chatID, text)
	msg.ParseMode = "HTML" //use HTML for bold/italic
	_, err := b.api.Send(msg)
	return err
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.TrimSpace(s[:max]) + "…"
}
