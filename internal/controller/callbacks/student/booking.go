package student

import (
	"context"
	"html"
	"strconv"
	"time"

	"github.com/Freeeeeet/mentor_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/mentor_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/mentor_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/mentor_bot/internal/model"
	"github.com/Freeeeeet/mentor_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Booking Form Handlers
// ========================

// HandleBookMentor открывает форму записи к ментору
func HandleBookMentor(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if h.BookingService.IsSubmitting(hc.TelegramID) {
			hc.AnswerAlert(common.ErrorMessage(common.ErrPaymentInProgress))
			return
		}

		mentorID, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		draft, err := h.BookingService.NewDraft(ctx, mentorID)
		if err != nil {
			common.HandleError(hc, err, "open booking form")
			return
		}

		hc.ClearState()
		hc.SaveDraft(draft)

		h.Logger.Info("Booking form opened",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Int64("mentor_id", mentorID))

		showForm(hc, draft)
		hc.Answer("📝 Заполните форму")
	})
}

// HandleFormShow возвращает к форме из выбора поля
func HandleFormShow(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithDraft(ctx, b, callback, h, func(hc *common.HandlerContext, draft *model.BookingDraft) {
		hc.SaveDraft(draft)
		showForm(hc, draft)
		hc.Answer("")
	})
}

// HandleFormDate показывает выбор даты
func HandleFormDate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithDraft(ctx, b, callback, h, func(hc *common.HandlerContext, draft *model.BookingDraft) {
		text, kb := common.BuildDatePickerScreen(draft, time.Now())
		editOrLog(hc, text, kb)
		hc.Answer("")
	})
}

// HandleFormSetDate сохраняет выбранную дату
func HandleFormSetDate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithDraft(ctx, b, callback, h, func(hc *common.HandlerContext, draft *model.BookingDraft) {
		value, err := common.ParseValueFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		now := time.Now()
		date, err := time.ParseInLocation(model.SessionDateLayout, value, now.Location())
		if err != nil || !isBookableDate(date, now) {
			hc.AnswerAlert("❌ Эта дата недоступна, выберите другую")
			return
		}

		draft.Date = date
		hc.SaveDraft(draft)
		showForm(hc, draft)
		hc.Answer("📅 Дата выбрана")
	})
}

// HandleFormTime показывает выбор времени
func HandleFormTime(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithDraft(ctx, b, callback, h, func(hc *common.HandlerContext, draft *model.BookingDraft) {
		text, kb := common.BuildTimePickerScreen(draft)
		editOrLog(hc, text, kb)
		hc.Answer("")
	})
}

// HandleFormSetTime сохраняет выбранное время
func HandleFormSetTime(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithDraft(ctx, b, callback, h, func(hc *common.HandlerContext, draft *model.BookingDraft) {
		value, err := common.ParseValueFromCallback(callback.Data)
		if err != nil || !common.IsTimeSlot(value) {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		draft.TimeSlot = value
		hc.SaveDraft(draft)
		showForm(hc, draft)
		hc.Answer("🕐 Время выбрано")
	})
}

// HandleFormDuration показывает выбор длительности
func HandleFormDuration(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithDraft(ctx, b, callback, h, func(hc *common.HandlerContext, draft *model.BookingDraft) {
		text, kb := common.BuildDurationPickerScreen(draft)
		editOrLog(hc, text, kb)
		hc.Answer("")
	})
}

// HandleFormSetDuration меняет длительность и пересчитывает сумму
func HandleFormSetDuration(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithDraft(ctx, b, callback, h, func(hc *common.HandlerContext, draft *model.BookingDraft) {
		value, err := common.ParseValueFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		minutes, err := strconv.Atoi(value)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		if err := h.BookingService.ApplyDuration(draft, minutes); err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		hc.SaveDraft(draft)
		showForm(hc, draft)
		hc.Answer("⏱ Длительность выбрана")
	})
}

// HandleFormTopic просит ввести тему сессии
func HandleFormTopic(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithDraft(ctx, b, callback, h, func(hc *common.HandlerContext, draft *model.BookingDraft) {
		hc.SetState(callbacktypes.StateBookingTopic)
		rememberFormMessage(hc)

		text := "📌 Напишите тему сессии одним сообщением.\n\n" +
			"Например: Подготовка к собеседованию на backend-разработчика"
		if draft.Topic != "" {
			text += "\n\nСейчас: " + html.EscapeString(draft.Topic)
		}

		editPrompt(hc, text)
		hc.Answer("")
	})
}

// HandleFormGoals просит ввести цели сессии
func HandleFormGoals(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithDraft(ctx, b, callback, h, func(hc *common.HandlerContext, draft *model.BookingDraft) {
		hc.SetState(callbacktypes.StateBookingGoals)
		rememberFormMessage(hc)

		text := "🎯 Опишите, чего хотите добиться за сессию.\n\n" +
			"Например: Разобрать резюме и составить план подготовки"
		if draft.Goals != "" {
			text += "\n\nСейчас: " + html.EscapeString(draft.Goals)
		}

		editPrompt(hc, text)
		hc.Answer("")
	})
}

// HandleFormSubmit проверяет форму и оплачивает сессию.
// Отправка занимается и черновик забирается из состояния до первого запроса к Telegram,
// поэтому повторное нажатие не найдёт ни свободной отправки, ни черновика.
func HandleFormSubmit(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	sub, err := h.BookingService.BeginSubmit(hc.TelegramID)
	if err != nil {
		hc.AnswerAlert(common.ErrorMessage(common.ErrPaymentInProgress))
		return
	}
	defer sub.Release()

	draft, err := hc.TakeDraft()
	if err != nil {
		h.Logger.Info("Booking draft is missing on submit",
			zap.Int64("telegram_id", hc.TelegramID))
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}

	if err := service.ValidateDraft(draft); err != nil {
		hc.SaveDraft(draft)
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}

	// Пока идёт оплата, кнопки формы заменены заглушкой
	text, kb := common.BuildPaymentInProgressScreen(draft)
	editOrLog(hc, text, kb)

	outcome, err := sub.Submit(ctx, draft)
	if err != nil {
		h.Logger.Warn("Booking submission failed",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Int64("mentor_id", draft.MentorID),
			zap.Error(err))

		// Черновик возвращается, пользователь может отправить форму ещё раз
		hc.SaveDraft(draft)
		message := common.ErrorMessage(err)
		text, kb := common.BuildBookingFormScreen(draft)
		editOrLog(hc, text+"\n\n"+message, kb)
		hc.AnswerAlert(message)
		return
	}

	hc.ClearState()

	text, kb = common.BuildBookingSuccessScreen(outcome)
	editOrLog(hc, text, kb)
	hc.Answer("✅ Сессия оплачена")
}

// HandleFormCancel закрывает форму без оплаты
func HandleFormCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	if h.BookingService.IsSubmitting(hc.TelegramID) {
		hc.AnswerAlert(common.ErrorMessage(common.ErrPaymentInProgress))
		return
	}

	hc.ClearState()

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📚 К менторам", common.CallbackMentorsPage+"0")).
		Row(keyboard.BackToMainButton()).
		Build()
	editOrLog(hc, "❌ Запись отменена", kb)
	hc.Answer("Запись отменена")
}

func showForm(hc *common.HandlerContext, draft *model.BookingDraft) {
	text, kb := common.BuildBookingFormScreen(draft)
	editOrLog(hc, text, kb)
}

func editPrompt(hc *common.HandlerContext, text string) {
	kb := keyboard.NewBuilder().
		Row(keyboard.BackButton(common.CallbackFormShow)).
		Build()
	editOrLog(hc, text, kb)
}

func editOrLog(hc *common.HandlerContext, text string, kb *models.InlineKeyboardMarkup) {
	if err := hc.EditMessage(text, kb); err != nil {
		hc.Handler.Logger.Error("Failed to edit message",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("data", hc.Callback.Data),
			zap.Error(err))
	}
}

// rememberFormMessage запоминает сообщение формы, чтобы обновить его после ввода текста
func rememberFormMessage(hc *common.HandlerContext) {
	if hc.Message != nil {
		hc.Handler.StateManager.SetData(hc.TelegramID, callbacktypes.FormMessageKey, hc.Message.ID)
	}
}

func isBookableDate(date, now time.Time) bool {
	for _, d := range common.BookingDates(now) {
		if d.Equal(date) {
			return true
		}
	}
	return false
}
