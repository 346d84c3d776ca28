package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/mentor_bot/internal/model"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Ограничения профиля ментора
const (
	MentorBioMaxLength = 500
)

var (
	MinHourlyRate = decimal.NewFromInt(1)
	MaxHourlyRate = decimal.NewFromInt(1_000_000)
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidHourlyRate = errors.New("invalid hourly rate")
	ErrBioTooLong        = errors.New("bio is too long")
)

type mentorStore interface {
	GetByID(ctx context.Context, id int64) (*model.Mentor, error)
	GetByUserID(ctx context.Context, userID int64) (*model.Mentor, error)
	GetActive(ctx context.Context) ([]*model.Mentor, error)
	Upsert(ctx context.Context, mentor *model.Mentor) error
	SetActive(ctx context.Context, id int64, active bool) error
}

type userStore interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}

type MentorService struct {
	userRepo   userStore
	mentorRepo mentorStore
	logger     *zap.Logger
}

func NewMentorService(userRepo userStore, mentorRepo mentorStore, logger *zap.Logger) *MentorService {
	return &MentorService{
		userRepo:   userRepo,
		mentorRepo: mentorRepo,
		logger:     logger,
	}
}

// ListActive получает каталог активных менторов
func (s *MentorService) ListActive(ctx context.Context) ([]*model.Mentor, error) {
	return s.mentorRepo.GetActive(ctx)
}

// GetByID получает ментора по ID
func (s *MentorService) GetByID(ctx context.Context, id int64) (*model.Mentor, error) {
	return s.mentorRepo.GetByID(ctx, id)
}

// GetByUserID получает профиль ментора пользователя
func (s *MentorService) GetByUserID(ctx context.Context, userID int64) (*model.Mentor, error) {
	return s.mentorRepo.GetByUserID(ctx, userID)
}

// BecomeMentor делает пользователя ментором с указанной почасовой ставкой
func (s *MentorService) BecomeMentor(ctx context.Context, telegramID int64, hourlyRate decimal.Decimal, bio string) (*model.Mentor, error) {
	if hourlyRate.LessThan(MinHourlyRate) || hourlyRate.GreaterThan(MaxHourlyRate) {
		return nil, ErrInvalidHourlyRate
	}

	bio = strings.TrimSpace(bio)
	if len([]rune(bio)) > MentorBioMaxLength {
		return nil, ErrBioTooLong
	}

	user, err := s.userRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if user == nil {
		return nil, ErrUserNotFound
	}

	if !user.IsMentor {
		user.IsMentor = true
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
	}

	mentor := &model.Mentor{
		UserID:      user.ID,
		DisplayName: user.DisplayName(),
		Bio:         bio,
		HourlyRate:  hourlyRate.Round(2),
		IsActive:    true,
	}

	if err := s.mentorRepo.Upsert(ctx, mentor); err != nil {
		return nil, fmt.Errorf("save mentor: %w", err)
	}

	s.logger.Info("User became mentor",
		zap.Int64("user_id", user.ID),
		zap.Int64("mentor_id", mentor.ID),
		zap.String("hourly_rate", mentor.HourlyRate.StringFixed(2)),
	)

	return mentor, nil
}

// SetAvailability скрывает или возвращает ментора в каталог
func (s *MentorService) SetAvailability(ctx context.Context, userID int64, active bool) error {
	mentor, err := s.mentorRepo.GetByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get mentor: %w", err)
	}

	if mentor == nil {
		return ErrMentorNotFound
	}

	if err := s.mentorRepo.SetActive(ctx, mentor.ID, active); err != nil {
		return fmt.Errorf("set mentor active: %w", err)
	}

	s.logger.Info("Mentor availability changed",
		zap.Int64("mentor_id", mentor.ID),
		zap.Bool("active", active))

	return nil
}
