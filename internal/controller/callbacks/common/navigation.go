package common

import (
	"context"

	"github.com/Freeeeeet/mentor_bot/internal/controller/callbacks/callbacktypes"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// MainMenuText возвращает текст главного меню
func MainMenuText(isMentor bool) string {
	text := "📋 Главное меню\n\n" +
		"Доступные команды:\n" +
		"/mentors - Выбрать ментора и записаться\n" +
		"/mysessions - Мои сессии\n" +
		"/balance - Баланс кошелька\n" +
		"/help - Справка\n"

	if isMentor {
		text += "\nДля менторов:\n" +
			"/becomementor - Профиль и ставка"
	} else {
		text += "\n/becomementor - Стать ментором"
	}

	return text
}

// HandleBackToMain возвращает пользователя к главному меню
func HandleBackToMain(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	msg := GetMessageFromCallback(callback)
	if msg == nil {
		AnswerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}
	telegramID := callback.From.ID

	if h.BookingService.IsSubmitting(telegramID) {
		AnswerCallbackAlert(ctx, b, callback.ID, ErrorMessage(ErrPaymentInProgress))
		return
	}

	h.StateManager.ClearState(telegramID)

	b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
	})

	user, err := h.UserService.GetByTelegramID(ctx, telegramID)
	if err != nil || user == nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: msg.Chat.ID,
			Text:   "❌ Ошибка. Используйте /start",
		})
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text:   MainMenuText(user.IsMentor),
	})

	AnswerCallback(ctx, b, callback.ID, "Возврат в главное меню")
}

// HandleNoop отвечает на нажатие декоративной кнопки
func HandleNoop(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	AnswerCallback(ctx, b, callback.ID, "")
}
