package handlers

import (
	"github.com/Freeeeeet/mentor_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/mentor_bot/internal/controller/state"
	"github.com/Freeeeeet/mentor_bot/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	userService    *service.UserService
	bookingService *service.BookingService
	mentorService  *service.MentorService
	stateManager   *state.Manager
	forms          callbacktypes.StateManager // тот же менеджер для черновиков формы
	logger         *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	userService *service.UserService,
	bookingService *service.BookingService,
	mentorService *service.MentorService,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		userService:    userService,
		bookingService: bookingService,
		mentorService:  mentorService,
		stateManager:   stateManager,
		forms:          state.NewAdapter(stateManager),
		logger:         logger,
	}
}
