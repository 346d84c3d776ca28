package common

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Helper functions для всех callback handlers

// AnswerCallback отвечает на callback query (без alert)
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// AnswerCallbackAlert отвечает на callback query с alert (всплывающее окно)
func AnswerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// GetMessageFromCallback извлекает сообщение из callback query
func GetMessageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}

// ParseIDFromCallback извлекает ID из callback data
// Например: "book_mentor:123" -> 123
func ParseIDFromCallback(data string) (int64, error) {
	value, err := ParseValueFromCallback(data)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(value, 10, 64)
}

// ParseValueFromCallback возвращает всё после первого двоеточия
// Например: "form_set_time:09:00" -> "09:00"
func ParseValueFromCallback(data string) (string, error) {
	_, value, found := strings.Cut(data, ":")
	if !found || value == "" {
		return "", fmt.Errorf("invalid callback data format")
	}
	return value, nil
}

// IsMessageNotModifiedError проверяет ошибку Telegram о неизменившемся сообщении
func IsMessageNotModifiedError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
