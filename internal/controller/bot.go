package controller

import (
	"context"

	"github.com/Freeeeeet/mentor_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/mentor_bot/internal/controller/handlers"
	"github.com/Freeeeeet/mentor_bot/internal/controller/state"
	"github.com/Freeeeeet/mentor_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	userService *service.UserService,
	bookingService *service.BookingService,
	mentorService *service.MentorService,
	stateManager *state.Manager,
	logger *zap.Logger,
) *BotController {
	cmdHandlers := handlers.NewHandlers(
		userService,
		bookingService,
		mentorService,
		stateManager,
		logger,
	)

	// Callback handlers работают с состоянием через адаптер
	callbackHandler := callbacks.NewHandler(
		userService,
		bookingService,
		mentorService,
		state.NewAdapter(stateManager),
		logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/mentors", bot.MatchTypeExact, c.handlers.HandleMentors)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/book", bot.MatchTypeExact, c.handlers.HandleMentors)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/mysessions", bot.MatchTypeExact, c.handlers.HandleMySessions)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/balance", bot.MatchTypeExact, c.handlers.HandleBalance)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/becomementor", bot.MatchTypeExact, c.handlers.HandleBecomeMentor)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "mentors", Description: "👨‍🏫 Выбрать ментора и записаться"},
		{Command: "mysessions", Description: "📋 Мои сессии"},
		{Command: "balance", Description: "💰 Баланс кошелька"},
		{Command: "becomementor", Description: "🎓 Стать ментором"},
		{Command: "cancel", Description: "❌ Отменить текущее действие"},
		{Command: "help", Description: "❓ Справка по командам"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота, блокируется до отмены контекста
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
