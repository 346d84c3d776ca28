package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Freeeeeet/mentor_bot/internal/model"
	"github.com/Freeeeeet/mentor_bot/internal/payment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrMentorNotFound       = errors.New("mentor not found")
	ErrMentorInactive       = errors.New("mentor is not active")
	ErrSubmissionInProgress = errors.New("submission already in progress")
)

// SessionStore хранилище подтверждённых записей, только добавление
type SessionStore interface {
	Append(ctx context.Context, record *model.SessionRecord) error
	ListByStudent(ctx context.Context, studentID int64) ([]*model.SessionRecord, error)
}

type mentorReader interface {
	GetByID(ctx context.Context, id int64) (*model.Mentor, error)
}

// Outcome результат успешной отправки формы
type Outcome struct {
	Record *model.SessionRecord
	// Reconciled платёжный сервис сообщил об ошибке, но сверка баланса показала списание
	Reconciled bool
	// Saved запись сохранена в хранилище; при false оплата прошла, но запись потеряна
	Saved   bool
	Message string
}

type BookingService struct {
	mentors  mentorReader
	payments payment.Client
	store    SessionStore
	logger   *zap.Logger
	now      func() time.Time

	mu         sync.Mutex
	submitting map[int64]struct{}
}

func NewBookingService(
	mentors mentorReader,
	payments payment.Client,
	store SessionStore,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		mentors:    mentors,
		payments:   payments,
		store:      store,
		logger:     logger,
		now:        time.Now,
		submitting: make(map[int64]struct{}),
	}
}

// NewDraft создаёт черновик записи к ментору: дата сегодня, длительность по умолчанию
func (s *BookingService) NewDraft(ctx context.Context, mentorID int64) (*model.BookingDraft, error) {
	mentor, err := s.mentors.GetByID(ctx, mentorID)
	if err != nil {
		return nil, fmt.Errorf("get mentor: %w", err)
	}

	if mentor == nil {
		return nil, ErrMentorNotFound
	}

	if !mentor.IsActive {
		return nil, ErrMentorInactive
	}

	now := s.now()
	draft := &model.BookingDraft{
		MentorID:        mentor.ID,
		MentorName:      mentor.DisplayName,
		HourlyRate:      mentor.HourlyRate,
		Date:            time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		DurationMinutes: DefaultDuration,
		Amount:          SessionAmount(mentor.HourlyRate, DefaultDuration),
	}

	return draft, nil
}

// ApplyDuration меняет длительность и пересчитывает сумму
func (s *BookingService) ApplyDuration(draft *model.BookingDraft, minutes int) error {
	if !IsSupportedDuration(minutes) {
		return ErrInvalidDuration
	}

	draft.DurationMinutes = minutes
	draft.Amount = SessionAmount(draft.HourlyRate, minutes)
	return nil
}

// Submit проверяет форму, оплачивает сессию и сохраняет запись.
// Одновременно для одного пользователя идёт не больше одной отправки.
func (s *BookingService) Submit(ctx context.Context, studentID int64, draft *model.BookingDraft) (*Outcome, error) {
	if err := ValidateDraft(draft); err != nil {
		return nil, err
	}

	sub, err := s.BeginSubmit(studentID)
	if err != nil {
		return nil, err
	}
	defer sub.Release()

	return sub.Submit(ctx, draft)
}

// Submission занятая отправка формы одного пользователя
type Submission struct {
	service   *BookingService
	studentID int64
	once      sync.Once
}

// BeginSubmit занимает отправку до вызова Release.
// Пока отправка занята, IsSubmitting возвращает true, а повторный BeginSubmit ErrSubmissionInProgress.
func (s *BookingService) BeginSubmit(studentID int64) (*Submission, error) {
	if !s.beginSubmit(studentID) {
		return nil, ErrSubmissionInProgress
	}
	return &Submission{service: s, studentID: studentID}, nil
}

// Release освобождает отправку, повторный вызов ничего не делает
func (sub *Submission) Release() {
	sub.once.Do(func() {
		sub.service.endSubmit(sub.studentID)
	})
}

// Submit оплачивает черновик и сохраняет запись о сессии
func (sub *Submission) Submit(ctx context.Context, draft *model.BookingDraft) (*Outcome, error) {
	if err := ValidateDraft(draft); err != nil {
		return nil, err
	}
	return sub.service.submit(ctx, sub.studentID, draft)
}

func (s *BookingService) submit(ctx context.Context, studentID int64, draft *model.BookingDraft) (*Outcome, error) {
	order := *draft
	order.TimeSlot = strings.TrimSpace(order.TimeSlot)
	order.Topic = strings.TrimSpace(order.Topic)
	order.Goals = strings.TrimSpace(order.Goals)
	order.Amount = SessionAmount(order.HourlyRate, order.DurationMinutes)

	walletID := strconv.FormatInt(studentID, 10)

	// Баланс до оплаты нужен для сверки, если сервис сообщит об ошибке
	previous, havePrevious := s.fetchBalance(ctx, walletID)

	result, err := s.payments.Pay(ctx, payment.PayRequest{
		WalletID:   walletID,
		Draft:      order,
		MentorName: order.MentorName,
	})
	if err != nil {
		s.logger.Error("Payment call failed",
			zap.Int64("student_id", studentID),
			zap.Int64("mentor_id", order.MentorID),
			zap.Error(err))
		return nil, fmt.Errorf("pay for session: %w", err)
	}

	outcome := &Outcome{Message: result.Message}

	if !result.Success {
		if !havePrevious || !s.reconcile(ctx, walletID, previous, order.Amount) {
			s.logger.Warn("Payment declined",
				zap.Int64("student_id", studentID),
				zap.Int64("mentor_id", order.MentorID),
				zap.String("amount", order.Amount.StringFixed(2)),
				zap.String("message", result.Message))
			return nil, &payment.DeclinedError{Message: result.Message}
		}

		s.logger.Warn("Payment reported failure but balance was debited",
			zap.Int64("student_id", studentID),
			zap.String("amount", order.Amount.StringFixed(2)),
			zap.String("message", result.Message))
		outcome.Reconciled = true
	}

	record := &model.SessionRecord{
		ID:              uuid.New(),
		StudentID:       studentID,
		MentorID:        order.MentorID,
		MentorName:      order.MentorName,
		Date:            order.Date.Format(model.SessionDateLayout),
		Time:            order.TimeSlot,
		DurationMinutes: order.DurationMinutes,
		Topic:           order.Topic,
		Goals:           order.Goals,
		Amount:          order.Amount,
		Status:          model.SessionStatusConfirmed,
		CreatedAt:       s.now().UTC(),
	}
	outcome.Record = record

	if err := s.store.Append(ctx, record); err != nil {
		s.logger.Error("Failed to save session record",
			zap.String("session_id", record.ID.String()),
			zap.Int64("student_id", studentID),
			zap.Error(err))
		return outcome, nil
	}
	outcome.Saved = true

	s.logger.Info("Session booked",
		zap.String("session_id", record.ID.String()),
		zap.Int64("student_id", studentID),
		zap.Int64("mentor_id", record.MentorID),
		zap.String("date", record.Date),
		zap.String("time", record.Time),
		zap.Int("duration", record.DurationMinutes),
		zap.String("amount", record.Amount.StringFixed(2)),
		zap.Bool("reconciled", outcome.Reconciled),
	)

	return outcome, nil
}

// IsSubmitting проверяет, идёт ли сейчас отправка формы пользователя
func (s *BookingService) IsSubmitting(studentID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.submitting[studentID]
	return ok
}

// ListSessions получает записи ученика в порядке создания
func (s *BookingService) ListSessions(ctx context.Context, studentID int64) ([]*model.SessionRecord, error) {
	records, err := s.store.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return records, nil
}

// Balance возвращает текущий баланс кошелька пользователя
func (s *BookingService) Balance(ctx context.Context, studentID int64) (decimal.Decimal, error) {
	raw, err := s.payments.GetBalance(ctx, strconv.FormatInt(studentID, 10))
	if err != nil {
		return decimal.Zero, fmt.Errorf("get balance: %w", err)
	}
	return payment.ParseBalance(raw)
}

func (s *BookingService) beginSubmit(studentID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.submitting[studentID]; busy {
		return false
	}
	s.submitting[studentID] = struct{}{}
	return true
}

func (s *BookingService) endSubmit(studentID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.submitting, studentID)
}

func (s *BookingService) fetchBalance(ctx context.Context, walletID string) (decimal.Decimal, bool) {
	raw, err := s.payments.GetBalance(ctx, walletID)
	if err != nil {
		s.logger.Warn("Failed to get balance", zap.String("wallet_id", walletID), zap.Error(err))
		return decimal.Zero, false
	}

	balance, err := payment.ParseBalance(raw)
	if err != nil {
		s.logger.Warn("Failed to parse balance", zap.String("wallet_id", walletID), zap.Error(err))
		return decimal.Zero, false
	}

	return balance, true
}

// reconcile перепроверяет баланс после ответа об ошибке оплаты
func (s *BookingService) reconcile(ctx context.Context, walletID string, previous, amount decimal.Decimal) bool {
	current, ok := s.fetchBalance(ctx, walletID)
	if !ok {
		return false
	}

	matched := payment.Reconcile(previous, current, amount)
	s.logger.Info("Balance reconciled",
		zap.String("wallet_id", walletID),
		zap.String("previous", previous.StringFixed(2)),
		zap.String("current", current.StringFixed(2)),
		zap.String("amount", amount.StringFixed(2)),
		zap.Bool("matched", matched))

	return matched
}
