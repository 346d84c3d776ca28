package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/mentor_bot/internal/app"
	"github.com/Freeeeeet/mentor_bot/internal/config"
	"github.com/Freeeeeet/mentor_bot/internal/controller"
	"github.com/Freeeeeet/mentor_bot/internal/controller/state"
	"github.com/Freeeeeet/mentor_bot/internal/payment"
	"github.com/Freeeeeet/mentor_bot/internal/repository"
	"github.com/Freeeeeet/mentor_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting mentor bot",
		zap.String("environment", cfg.Environment),
		zap.String("session_store", cfg.SessionStore),
		zap.String("payment_provider", cfg.PaymentProvider))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}

	logger.Info("👋 Bot stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		return fmt.Errorf("create db pool: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping db: %w", err)
	}
	logger.Info("✅ Connected to database")

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		return err
	}
	if err := migrator.Run(ctx); err != nil {
		migrator.Close()
		return err
	}
	migrator.Close()

	store, closeStore, err := newSessionStore(ctx, cfg, pool, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	payments := newPaymentClient(cfg, logger)

	userRepo := repository.NewUserRepository(pool)
	mentorRepo := repository.NewMentorRepository(pool, logger)

	userService := service.NewUserService(userRepo, logger)
	mentorService := service.NewMentorService(userRepo, mentorRepo, logger)
	bookingService := service.NewBookingService(mentorRepo, payments, store, logger)

	stateManager := state.NewManager()

	scheduler := app.NewScheduler(stateManager, cfg.DraftTTL, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	botInstance, err := bot.New(cfg.TelegramToken, bot.WithErrorsHandler(func(err error) {
		logger.Error("Telegram bot error", zap.Error(err))
	}))
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}

	botController := controller.NewBotController(
		botInstance,
		userService,
		bookingService,
		mentorService,
		stateManager,
		logger,
	)

	if err := botController.RegisterHandlers(ctx); err != nil {
		// Меню команд не критично, бот работает и без него
		logger.Warn("Failed to register commands menu", zap.Error(err))
	}

	return botController.Start(ctx)
}

// newSessionStore выбирает хранилище записей о сессиях по конфигу
func newSessionStore(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, logger *zap.Logger) (service.SessionStore, func(), error) {
	switch cfg.SessionStore {
	case config.SessionStorePostgres:
		logger.Info("Session records are stored in Postgres")
		return repository.NewSessionRepository(pool), func() {}, nil
	default:
		client, err := repository.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("✅ Connected to Redis", zap.String("addr", cfg.RedisAddr))

		closeClient := func() {
			if err := client.Close(); err != nil {
				logger.Warn("Failed to close redis client", zap.Error(err))
			}
		}
		return repository.NewRedisSessionStore(client), closeClient, nil
	}
}

// newPaymentClient выбирает платёжный сервис по конфигу
func newPaymentClient(cfg *config.Config, logger *zap.Logger) payment.Client {
	if cfg.PaymentProvider == config.PaymentProviderHTTP {
		return payment.NewHTTPClient(cfg.PaymentBaseURL, cfg.PaymentAPIKey, cfg.PaymentTimeout, logger)
	}

	logger.Warn("Using sandbox payment provider, no real money is charged",
		zap.String("initial_balance", cfg.SandboxBalance.StringFixed(2)),
		zap.Stringer("mode", cfg.SandboxMode))

	sandbox := payment.NewSandbox(cfg.SandboxBalance)
	sandbox.SetMode(cfg.SandboxMode)
	return sandbox
}
