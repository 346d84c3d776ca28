package mentor

import (
	"context"

	"github.com/Freeeeeet/mentor_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/mentor_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/mentor_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleToggleAvailability скрывает ментора из каталога или возвращает обратно
func HandleToggleAvailability(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithMentor(ctx, b, callback, h, func(hc *common.HandlerContext) {
		profile, err := h.MentorService.GetByUserID(ctx, hc.User.ID)
		if err != nil {
			common.HandleError(hc, err, "get mentor profile")
			return
		}
		if profile == nil {
			hc.AnswerAlert(common.ErrorMessage(service.ErrMentorNotFound))
			return
		}

		active := !profile.IsActive
		if err := h.MentorService.SetAvailability(ctx, hc.User.ID, active); err != nil {
			common.HandleError(hc, err, "set mentor availability")
			return
		}
		profile.IsActive = active

		h.Logger.Info("Mentor availability changed",
			zap.Int64("mentor_id", profile.ID),
			zap.Bool("active", active))

		text, kb := common.BuildMentorSettingsScreen(profile)
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show mentor settings", zap.Error(err))
		}

		if active {
			hc.Answer("▶️ Вы снова в каталоге")
		} else {
			hc.Answer("⏸ Вы скрыты из каталога")
		}
	})
}
