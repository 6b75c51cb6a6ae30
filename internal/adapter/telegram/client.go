// Package telegram adapts the Bot API to the chat port and routes
// incoming updates to the use cases.
package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tavernbot/internal/app/ports"
)

type Client struct {
	bot *tgbotapi.BotAPI
}

func NewClient(token string) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect bot api: %w", err)
	}
	return &Client{bot: bot}, nil
}

func (c *Client) Bot() *tgbotapi.BotAPI { return c.bot }

func (c *Client) Send(_ context.Context, m ports.OutgoingMessage) (ports.SentMessage, error) {
	msg := tgbotapi.NewMessage(m.ChatID, m.Text)
	msg.ReplyToMessageID = m.ReplyTo
	if m.Markdown {
		msg.ParseMode = tgbotapi.ModeMarkdownV2
	}
	if m.Keyboard != nil {
		msg.ReplyMarkup = toInlineKeyboard(m.Keyboard)
	}

	sent, err := c.bot.Send(msg)
	if err != nil {
		return ports.SentMessage{}, fmt.Errorf("send message: %w", err)
	}
	return ports.SentMessage{ChatID: sent.Chat.ID, MessageID: sent.MessageID}, nil
}

func (c *Client) Edit(_ context.Context, e ports.MessageEdit) error {
	var msg tgbotapi.EditMessageTextConfig
	if e.Keyboard != nil {
		// An empty keyboard here strips the buttons from the message.
		msg = tgbotapi.NewEditMessageTextAndMarkup(e.ChatID, e.MessageID, e.Text, toInlineKeyboard(e.Keyboard))
	} else {
		msg = tgbotapi.NewEditMessageText(e.ChatID, e.MessageID, e.Text)
	}
	if e.Markdown {
		msg.ParseMode = tgbotapi.ModeMarkdownV2
	}
	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("edit message: %w", err)
	}
	return nil
}

func (c *Client) AnswerCallback(_ context.Context, callbackID, notice string) error {
	if _, err := c.bot.Request(tgbotapi.NewCallback(callbackID, notice)); err != nil {
		return fmt.Errorf("answer callback: %w", err)
	}
	return nil
}

func toInlineKeyboard(kb ports.Keyboard) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(kb))
	for _, row := range kb {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data))
		}
		rows = append(rows, buttons)
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

var _ ports.ChatClient = (*Client)(nil)
