package common

import (
	"context"

	"github.com/Freeeeeet/mentor_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/mentor_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandlerContext данные одного нажатия: кто нажал, на каком сообщении, с какими зависимостями
type HandlerContext struct {
	Ctx        context.Context
	Bot        *bot.Bot
	Callback   *models.CallbackQuery
	Handler    *callbacktypes.Handler
	Message    *models.Message
	User       *model.User // заполняется LoadUser
	TelegramID int64
	ChatID     int64
}

func NewHandlerContext(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
) *HandlerContext {
	hc := &HandlerContext{
		Ctx:        ctx,
		Bot:        b,
		Callback:   callback,
		Handler:    h,
		Message:    GetMessageFromCallback(callback),
		TelegramID: callback.From.ID,
	}
	if hc.Message != nil {
		hc.ChatID = hc.Message.Chat.ID
	}
	return hc
}

// LoadUser подгружает пользователя; незарегистрированный пользователь даёт ErrUserNotFound
func (hc *HandlerContext) LoadUser() error {
	if hc.User != nil {
		return nil
	}

	user, err := hc.Handler.UserService.GetByTelegramID(hc.Ctx, hc.TelegramID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	hc.User = user
	return nil
}

func (hc *HandlerContext) RequireMentor() error {
	if err := hc.LoadUser(); err != nil {
		return err
	}
	if !hc.User.IsMentor {
		return ErrNotAMentor
	}
	return nil
}

// Draft копия черновика формы
func (hc *HandlerContext) Draft() (*model.BookingDraft, error) {
	return LoadDraft(hc.Handler.StateManager, hc.TelegramID)
}

// TakeDraft забирает черновик из состояния перед оплатой
func (hc *HandlerContext) TakeDraft() (*model.BookingDraft, error) {
	return TakeDraft(hc.Handler.StateManager, hc.TelegramID)
}

func (hc *HandlerContext) SaveDraft(draft *model.BookingDraft) {
	SaveDraft(hc.Handler.StateManager, hc.TelegramID, draft)
}

func (hc *HandlerContext) ClearState() {
	hc.Handler.StateManager.ClearState(hc.TelegramID)
}

func (hc *HandlerContext) SetState(state callbacktypes.UserState) {
	hc.Handler.StateManager.SetState(hc.TelegramID, state)
}

// Answer закрывает часики на кнопке, text показывается всплывающей подсказкой
func (hc *HandlerContext) Answer(text string) {
	AnswerCallback(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

func (hc *HandlerContext) AnswerAlert(text string) {
	AnswerCallbackAlert(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// EditMessage перерисовывает сообщение с кнопкой в HTML.
// Ответ Telegram "message is not modified" ошибкой не считается.
func (hc *HandlerContext) EditMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	if hc.Message == nil {
		return ErrNoMessage
	}

	_, err := hc.Bot.EditMessageText(hc.Ctx, &bot.EditMessageTextParams{
		ChatID:      hc.ChatID,
		MessageID:   hc.Message.ID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: keyboard,
	})
	if IsMessageNotModifiedError(err) {
		return nil
	}
	return err
}
