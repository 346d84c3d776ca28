package common

import (
	"context"

	"github.com/Freeeeeet/mentor_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/mentor_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// WithUser создаёт HandlerContext и загружает пользователя
// При ошибке автоматически отвечает пользователю
func WithUser(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if err := hc.LoadUser(); err != nil {
		h.Logger.Error("Failed to load user",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	handler(hc)
}

// WithMentor создаёт HandlerContext и проверяет что пользователь - ментор
func WithMentor(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if err := hc.RequireMentor(); err != nil {
		h.Logger.Error("Mentor check failed",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	handler(hc)
}

// WithDraft создаёт HandlerContext и загружает черновик формы.
// Пока идёт оплата, форму менять нельзя.
func WithDraft(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext, *model.BookingDraft),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if h.BookingService.IsSubmitting(hc.TelegramID) {
		hc.AnswerAlert(ErrorMessage(ErrPaymentInProgress))
		return
	}

	draft, err := hc.Draft()
	if err != nil {
		h.Logger.Info("Booking draft is missing",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("data", callback.Data))
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	handler(hc, draft)
}

// HandleError обрабатывает ошибку и отправляет ответ пользователю
func HandleError(hc *HandlerContext, err error, operation string) {
	hc.Handler.Logger.Error("Operation failed",
		zap.String("operation", operation),
		zap.Int64("telegram_id", hc.TelegramID),
		zap.Error(err))
	hc.AnswerAlert(ErrorMessage(err))
}
