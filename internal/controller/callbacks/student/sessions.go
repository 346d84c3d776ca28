package student

import (
	"context"

	"github.com/Freeeeeet/mentor_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/mentor_bot/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleMySessions показывает историю оплаченных сессий
func HandleMySessions(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	records, err := h.BookingService.ListSessions(ctx, hc.TelegramID)
	if err != nil {
		common.HandleError(hc, err, "list sessions")
		return
	}

	text, kb := common.BuildSessionsListScreen(records)
	if err := hc.EditMessage(text, kb); err != nil {
		h.Logger.Error("Failed to show sessions", zap.Int64("telegram_id", hc.TelegramID), zap.Error(err))
	}
	hc.Answer("")
}
