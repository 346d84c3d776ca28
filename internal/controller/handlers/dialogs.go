package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/mentor_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/mentor_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/mentor_bot/internal/controller/state"
	"github.com/Freeeeeet/mentor_bot/internal/model"
	"github.com/Freeeeeet/mentor_bot/internal/payment"
	"github.com/Freeeeeet/mentor_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	if currentState == state.StateNone {
		h.logger.Debug("No active state, ignoring message",
			zap.Int64("telegram_id", telegramID))
		return
	}

	switch currentState {
	case state.StateBookingTopic:
		h.handleFormTextStep(ctx, b, update, "тема", TopicMaxLength, func(draft *model.BookingDraft, text string) {
			draft.Topic = text
		})
	case state.StateBookingGoals:
		h.handleFormTextStep(ctx, b, update, "цели", GoalsMaxLength, func(draft *model.BookingDraft, text string) {
			draft.Goals = text
		})
	case state.StateBookingForm:
		h.sendMessage(ctx, b, update.Message.Chat.ID, "👆 Заполните форму кнопками под сообщением или отмените через /cancel")
	case state.StateBecomeMentorRate:
		h.handleMentorRateStep(ctx, b, update)
	case state.StateBecomeMentorBio:
		h.handleMentorBioStep(ctx, b, update)
	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
	}
}

// handleFormTextStep сохраняет текстовое поле формы и снова показывает форму
func (h *Handlers) handleFormTextStep(
	ctx context.Context,
	b *bot.Bot,
	update *models.Update,
	field string,
	maxLength int,
	apply func(draft *model.BookingDraft, text string),
) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	if h.bookingService.IsSubmitting(telegramID) {
		h.sendError(ctx, b, chatID, common.ErrorMessage(common.ErrPaymentInProgress))
		return
	}

	text, problem := normalizeFormText(update.Message.Text, field, maxLength)
	if problem != "" {
		h.sendError(ctx, b, chatID, problem)
		return
	}

	draft, err := common.LoadDraft(h.forms, telegramID)
	if err != nil {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	apply(draft, text)
	common.SaveDraft(h.forms, telegramID, draft)

	h.logger.Info("Booking form field updated",
		zap.Int64("telegram_id", telegramID),
		zap.String("field", field),
		zap.Int("length", len([]rune(text))))

	h.showForm(ctx, b, telegramID, chatID, draft)
}

// showForm обновляет сообщение с формой, а если это невозможно - отправляет форму заново
func (h *Handlers) showForm(ctx context.Context, b *bot.Bot, telegramID, chatID int64, draft *model.BookingDraft) {
	text, kb := common.BuildBookingFormScreen(draft)

	if value, ok := h.forms.GetData(telegramID, callbacktypes.FormMessageKey); ok {
		if messageID, ok := value.(int); ok {
			_, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
				ChatID:      chatID,
				MessageID:   messageID,
				Text:        text,
				ParseMode:   models.ParseModeHTML,
				ReplyMarkup: kb,
			})
			if err == nil || common.IsMessageNotModifiedError(err) {
				return
			}
			h.logger.Debug("Form message is not editable, sending a new one",
				zap.Int64("telegram_id", telegramID),
				zap.Error(err))
		}
	}

	msg, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: kb,
	})
	if err != nil {
		h.logger.Error("Failed to send booking form", zap.Int64("chat_id", chatID), zap.Error(err))
		return
	}
	h.forms.SetData(telegramID, callbacktypes.FormMessageKey, msg.ID)
}

// handleMentorRateStep обрабатывает ввод почасовой ставки
func (h *Handlers) handleMentorRateStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	rate, problem := parseHourlyRate(update.Message.Text)
	if problem != "" {
		h.sendError(ctx, b, chatID, problem)
		return
	}

	h.stateManager.SetData(telegramID, dataHourlyRate, rate)
	h.stateManager.SetState(telegramID, state.StateBecomeMentorBio)

	h.sendMessage(ctx, b, chatID, fmt.Sprintf(
		"✅ Ставка: %s ₽/час\n\n"+
			"Шаг 2 из 2: Расскажите о себе в паре предложений: опыт, с чем можете помочь.\n\n"+
			"Отправьте \"%s\", чтобы пропустить.\n\n"+
			"Для отмены используйте /cancel",
		rate.StringFixed(2), bioSkipValue))
}

// handleMentorBioStep завершает регистрацию ментора
func (h *Handlers) handleMentorBioStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	value, ok := h.stateManager.GetData(telegramID, dataHourlyRate)
	rate, isDecimal := value.(decimal.Decimal)
	if !ok || !isDecimal {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, "❌ Данные не найдены. Начните заново: /becomementor")
		return
	}

	bio := strings.TrimSpace(update.Message.Text)
	if bio == bioSkipValue {
		bio = ""
	}

	profile, err := h.mentorService.BecomeMentor(ctx, telegramID, rate, bio)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBioTooLong):
			h.sendError(ctx, b, chatID, fmt.Sprintf(
				"❌ Описание слишком длинное. Максимум %d символов.\n\nПопробуйте ещё раз:", service.MentorBioMaxLength))
		case errors.Is(err, service.ErrInvalidHourlyRate):
			h.stateManager.SetState(telegramID, state.StateBecomeMentorRate)
			h.sendError(ctx, b, chatID, "❌ Некорректная ставка. Укажите ставку ещё раз:")
		default:
			h.logger.Error("Failed to register mentor", zap.Int64("telegram_id", telegramID), zap.Error(err))
			h.stateManager.ClearState(telegramID)
			h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		}
		return
	}

	h.stateManager.ClearState(telegramID)

	text, kb := common.BuildMentorSettingsScreen(profile)
	h.sendScreen(ctx, b, chatID, "🎉 Готово! Теперь вас можно найти в /mentors\n\n"+text, kb)
}

// normalizeFormText обрезает пробелы и проверяет длину текстового поля формы.
// Возвращает текст и сообщение об ошибке для пользователя.
func normalizeFormText(raw, field string, maxLength int) (string, string) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", fmt.Sprintf("❌ Поле «%s» не может быть пустым.\n\nПопробуйте ещё раз:", field)
	}
	if len([]rune(text)) > maxLength {
		return "", fmt.Sprintf("❌ Слишком длинный текст. Максимум %d символов.\n\nПопробуйте ещё раз:", maxLength)
	}
	return text, ""
}

// parseHourlyRate разбирает ставку, введённую пользователем: "2500", "1 999,50", "3000 ₽"
func parseHourlyRate(raw string) (decimal.Decimal, string) {
	rate, err := payment.ParseBalance(raw)
	if err != nil {
		return decimal.Zero, "❌ Не понял сумму. Укажите ставку числом, например: 2500\n\nПопробуйте ещё раз:"
	}

	if rate.LessThan(service.MinHourlyRate) || rate.GreaterThan(service.MaxHourlyRate) {
		return decimal.Zero, fmt.Sprintf("❌ Ставка должна быть от %s до %s ₽.\n\nПопробуйте ещё раз:",
			service.MinHourlyRate.String(), service.MaxHourlyRate.String())
	}

	return rate.Round(2), ""
}
