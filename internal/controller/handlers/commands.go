package handlers

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/mentor_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/mentor_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/mentor_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	user := update.Message.From

	registeredUser, err := h.userService.RegisterUser(
		ctx,
		user.ID,
		user.Username,
		user.FirstName,
		user.LastName,
		user.LanguageCode,
	)

	if err != nil {
		h.logger.Error("Failed to register user", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Произошла ошибка при регистрации. Попробуйте позже.")
		return
	}

	welcomeText := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Здесь можно записаться на платную сессию с ментором: "+
			"выберите дату, время и длительность, опишите тему и цели, и оплатите с баланса кошелька.\n\n",
		registeredUser.DisplayName(),
	) + common.MainMenuText(registeredUser.IsMentor)

	h.sendMessage(ctx, b, update.Message.Chat.ID, welcomeText)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Справка по командам:\n\n" +
		"/start - Начать работу с ботом\n" +
		"/mentors - Каталог менторов (/book - то же самое)\n" +
		"/mysessions - Мои оплаченные сессии\n" +
		"/balance - Баланс кошелька\n" +
		"/becomementor - Стать ментором или изменить ставку\n" +
		"/cancel - Отменить текущее действие\n" +
		"/help - Показать эту справку\n\n" +
		"Стоимость сессии = ставка × длительность / 60, длительность 30, 60, 90 или 120 минут."

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText)
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID

	if h.bookingService.IsSubmitting(telegramID) {
		h.sendError(ctx, b, update.Message.Chat.ID, "⏳ Оплата уже выполняется, отменить её нельзя. Дождитесь результата.")
		return
	}

	currentState := h.stateManager.GetState(telegramID)
	if currentState == state.StateNone {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Нет активных операций для отмены.")
		return
	}

	h.stateManager.ClearState(telegramID)

	h.sendMessage(ctx, b, update.Message.Chat.ID, "✅ Операция отменена.\n\nИспользуйте /help для просмотра доступных команд.")
}

// HandleMentors обрабатывает команды /mentors и /book - каталог менторов
func (h *Handlers) HandleMentors(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireUser(ctx, b, update); !ok {
		return
	}

	mentors, err := h.mentorService.ListActive(ctx)
	if err != nil {
		h.logger.Error("Failed to list mentors", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Не удалось загрузить менторов. Попробуйте позже.")
		return
	}

	text, kb := common.BuildMentorsListScreen(mentors, 0)
	h.sendScreen(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleMySessions обрабатывает команду /mysessions
func (h *Handlers) HandleMySessions(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	records, err := h.bookingService.ListSessions(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to list sessions", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Не удалось загрузить сессии. Попробуйте позже.")
		return
	}

	text, kb := common.BuildSessionsListScreen(records)
	h.sendScreen(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleBalance обрабатывает команду /balance
func (h *Handlers) HandleBalance(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	balance, err := h.bookingService.Balance(ctx, telegramID)
	if err != nil {
		h.logger.Warn("Failed to get balance", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, "💰 Баланс кошелька: "+formatting.FormatAmount(balance))
}

// HandleBecomeMentor обрабатывает команду /becomementor
func (h *Handlers) HandleBecomeMentor(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	if user.IsMentor {
		profile, err := h.mentorService.GetByUserID(ctx, user.ID)
		if err != nil {
			h.logger.Error("Failed to get mentor profile", zap.Int64("user_id", user.ID), zap.Error(err))
			h.sendError(ctx, b, chatID, "❌ Произошла ошибка. Попробуйте позже.")
			return
		}
		if profile != nil {
			text, kb := common.BuildMentorSettingsScreen(profile)
			h.sendScreen(ctx, b, chatID, text, kb)
		}
	}

	h.stateManager.ClearState(telegramID)
	h.stateManager.SetState(telegramID, state.StateBecomeMentorRate)

	h.logger.Info("Mentor registration started",
		zap.Int64("telegram_id", telegramID),
		zap.Bool("already_mentor", user.IsMentor))

	h.sendMessage(ctx, b, chatID,
		"🎓 Регистрация ментора\n\n"+
			"Шаг 1 из 2: Укажите ставку за час в рублях.\n\n"+
			"Например: 2500 или 1999,50\n\n"+
			"Для отмены используйте /cancel")
}
