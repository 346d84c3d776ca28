package student

import (
	"context"
	"strconv"
	"strings"

	"github.com/Freeeeeet/mentor_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/mentor_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/mentor_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleMentorsPage показывает страницу каталога менторов
func HandleMentorsPage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	page, err := strconv.Atoi(strings.TrimPrefix(callback.Data, common.CallbackMentorsPage))
	if err != nil {
		hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	mentors, err := h.MentorService.ListActive(ctx)
	if err != nil {
		common.HandleError(hc, err, "list mentors")
		return
	}

	text, kb := common.BuildMentorsListScreen(mentors, page)
	if err := hc.EditMessage(text, kb); err != nil {
		h.Logger.Error("Failed to show mentors page", zap.Int("page", page), zap.Error(err))
	}
	hc.Answer("")
}

// HandleMentorProfile показывает карточку ментора
func HandleMentorProfile(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	mentorID, err := common.ParseIDFromCallback(callback.Data)
	if err != nil {
		hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	mentor, err := h.MentorService.GetByID(ctx, mentorID)
	if err != nil {
		common.HandleError(hc, err, "get mentor")
		return
	}
	if mentor == nil {
		hc.AnswerAlert(common.ErrorMessage(service.ErrMentorNotFound))
		return
	}
	if !mentor.IsActive {
		hc.AnswerAlert(common.ErrorMessage(service.ErrMentorInactive))
		return
	}

	text, kb := common.BuildMentorProfileScreen(mentor)
	if err := hc.EditMessage(text, kb); err != nil {
		h.Logger.Error("Failed to show mentor profile", zap.Int64("mentor_id", mentorID), zap.Error(err))
	}
	hc.Answer("")
}
