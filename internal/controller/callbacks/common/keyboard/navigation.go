package keyboard

import "github.com/go-telegram/bot/models"

// Callback data общих кнопок навигации
const (
	CallbackBackToMain = "back_to_main"
	CallbackNoop       = "noop"
)

// BackButton создаёт кнопку "Назад"
func BackButton(callbackData string) models.InlineKeyboardButton {
	return Button("⬅️ Назад", callbackData)
}

// BackToMainButton создаёт кнопку "В главное меню"
func BackToMainButton() models.InlineKeyboardButton {
	return Button("🏠 В главное меню", CallbackBackToMain)
}

// CancelButton создаёт кнопку "Отмена"
func CancelButton(callbackData string) models.InlineKeyboardButton {
	return Button("❌ Отмена", callbackData)
}

// NoopButton создаёт некликабельную подпись, нажатие на неё ничего не делает
func NoopButton(text string) models.InlineKeyboardButton {
	return Button(text, CallbackNoop)
}

// BackRow создаёт ряд с кнопкой "Назад"
func BackRow(callbackData string) []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{BackButton(callbackData)}
}
