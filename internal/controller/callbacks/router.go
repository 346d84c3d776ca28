package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/mentor_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/mentor_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/mentor_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/mentor_bot/internal/controller/callbacks/mentor"
	"github.com/Freeeeeet/mentor_bot/internal/controller/callbacks/student"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Route маршрутизирует callback к соответствующему handler
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	switch {
	// ===== Navigation =====
	case data == keyboard.CallbackNoop:
		common.HandleNoop(ctx, b, callback)
	case data == keyboard.CallbackBackToMain:
		common.HandleBackToMain(ctx, b, callback, h)

	// ===== Mentors Catalog =====
	case strings.HasPrefix(data, common.CallbackMentorsPage):
		student.HandleMentorsPage(ctx, b, callback, h)
	case strings.HasPrefix(data, common.CallbackMentorProfile):
		student.HandleMentorProfile(ctx, b, callback, h)
	case data == common.CallbackMySessions:
		student.HandleMySessions(ctx, b, callback, h)

	// ===== Booking Form =====
	case strings.HasPrefix(data, common.CallbackBookMentor):
		student.HandleBookMentor(ctx, b, callback, h)
	case data == common.CallbackFormShow:
		student.HandleFormShow(ctx, b, callback, h)
	case data == common.CallbackFormDate:
		student.HandleFormDate(ctx, b, callback, h)
	case strings.HasPrefix(data, common.CallbackFormSetDate):
		student.HandleFormSetDate(ctx, b, callback, h)
	case data == common.CallbackFormTime:
		student.HandleFormTime(ctx, b, callback, h)
	case strings.HasPrefix(data, common.CallbackFormSetTime):
		student.HandleFormSetTime(ctx, b, callback, h)
	case data == common.CallbackFormDuration:
		student.HandleFormDuration(ctx, b, callback, h)
	case strings.HasPrefix(data, common.CallbackFormSetDuration):
		student.HandleFormSetDuration(ctx, b, callback, h)
	case data == common.CallbackFormTopic:
		student.HandleFormTopic(ctx, b, callback, h)
	case data == common.CallbackFormGoals:
		student.HandleFormGoals(ctx, b, callback, h)
	case data == common.CallbackFormSubmit:
		student.HandleFormSubmit(ctx, b, callback, h)
	case data == common.CallbackFormCancel:
		student.HandleFormCancel(ctx, b, callback, h)

	// ===== Mentor Profile =====
	case data == common.CallbackMentorToggle:
		mentor.HandleToggleAvailability(ctx, b, callback, h)

	// ===== Unknown Callback =====
	default:
		h.Logger.Warn("Unknown callback",
			zap.String("data", data),
			zap.Int64("user_id", callback.From.ID))
		common.AnswerCallback(ctx, b, callback.ID, "❌ Неизвестная команда")
		return
	}

	h.Logger.Debug("Callback routed", zap.String("data", data))
}
