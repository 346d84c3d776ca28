package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/mentor_bot/internal/model"
	"github.com/Freeeeeet/mentor_bot/internal/payment"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testStudentID int64 = 4242

type stubMentorReader struct {
	mentors map[int64]*model.Mentor
	err     error
}

func (r *stubMentorReader) GetByID(_ context.Context, id int64) (*model.Mentor, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.mentors[id], nil
}

type memorySessionStore struct {
	mu        sync.Mutex
	records   []*model.SessionRecord
	appendErr error
}

func (s *memorySessionStore) Append(_ context.Context, record *model.SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.appendErr != nil {
		return s.appendErr
	}
	s.records = append(s.records, record)
	return nil
}

func (s *memorySessionStore) ListByStudent(_ context.Context, studentID int64) ([]*model.SessionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.SessionRecord
	for _, r := range s.records {
		if r.StudentID == studentID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memorySessionStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// stubPayments отвечает заранее заданными значениями
type stubPayments struct {
	result     model.PaymentResult
	payErr     error
	balances   []string
	balanceErr error
	calls      int
}

func (p *stubPayments) Pay(_ context.Context, _ payment.PayRequest) (model.PaymentResult, error) {
	p.calls++
	return p.result, p.payErr
}

func (p *stubPayments) GetBalance(_ context.Context, _ string) (string, error) {
	if p.balanceErr != nil {
		return "", p.balanceErr
	}
	if len(p.balances) == 0 {
		return "", errors.New("no balance scripted")
	}
	b := p.balances[0]
	if len(p.balances) > 1 {
		p.balances = p.balances[1:]
	}
	return b, nil
}

// blockingPayments держит оплату, пока тест не отпустит её
type blockingPayments struct {
	entered chan struct{}
	release chan struct{}
}

func (p *blockingPayments) Pay(ctx context.Context, _ payment.PayRequest) (model.PaymentResult, error) {
	close(p.entered)
	<-p.release
	return model.PaymentResult{Success: true}, nil
}

func (p *blockingPayments) GetBalance(_ context.Context, _ string) (string, error) {
	return "1000.00", nil
}

func testMentor() *model.Mentor {
	return &model.Mentor{
		ID:          7,
		UserID:      70,
		DisplayName: "Анна Смирнова",
		HourlyRate:  decimal.RequireFromString("1500"),
		IsActive:    true,
	}
}

func newTestBookingService(payments payment.Client, store *memorySessionStore) *BookingService {
	mentors := &stubMentorReader{mentors: map[int64]*model.Mentor{7: testMentor()}}
	svc := NewBookingService(mentors, payments, store, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 10, 19, 14, 30, 0, 0, time.UTC) }
	return svc
}

func filledDraft(t *testing.T, svc *BookingService, minutes int) *model.BookingDraft {
	t.Helper()
	draft, err := svc.NewDraft(context.Background(), 7)
	require.NoError(t, err)
	require.NoError(t, svc.ApplyDuration(draft, minutes))
	draft.TimeSlot = "10:00"
	draft.Topic = "  Архитектура  "
	draft.Goals = "Разбить монолит"
	return draft
}

func TestNewDraftDefaults(t *testing.T) {
	svc := newTestBookingService(payment.NewSandbox(decimal.NewFromInt(1000)), &memorySessionStore{})

	draft, err := svc.NewDraft(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), draft.MentorID)
	assert.Equal(t, "Анна Смирнова", draft.MentorName)
	assert.Equal(t, DefaultDuration, draft.DurationMinutes)
	assert.Equal(t, "1500.00", draft.Amount.StringFixed(2))
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), draft.Date)
	assert.Empty(t, draft.TimeSlot)
}

func TestNewDraftMentorErrors(t *testing.T) {
	store := &memorySessionStore{}
	svc := newTestBookingService(payment.NewSandbox(decimal.Zero), store)

	_, err := svc.NewDraft(context.Background(), 99)
	assert.ErrorIs(t, err, ErrMentorNotFound)

	inactive := testMentor()
	inactive.IsActive = false
	svc.mentors = &stubMentorReader{mentors: map[int64]*model.Mentor{7: inactive}}
	_, err = svc.NewDraft(context.Background(), 7)
	assert.ErrorIs(t, err, ErrMentorInactive)

	svc.mentors = &stubMentorReader{err: errors.New("db down")}
	_, err = svc.NewDraft(context.Background(), 7)
	assert.Error(t, err)
}

func TestApplyDurationRecomputesAmount(t *testing.T) {
	svc := newTestBookingService(payment.NewSandbox(decimal.Zero), &memorySessionStore{})
	draft, err := svc.NewDraft(context.Background(), 7)
	require.NoError(t, err)

	want := map[int]string{30: "750.00", 60: "1500.00", 90: "2250.00", 120: "3000.00"}
	for minutes, amount := range want {
		require.NoError(t, svc.ApplyDuration(draft, minutes))
		assert.Equal(t, minutes, draft.DurationMinutes)
		assert.Equal(t, amount, draft.Amount.StringFixed(2))
	}

	assert.ErrorIs(t, svc.ApplyDuration(draft, 45), ErrInvalidDuration)
	assert.Equal(t, "3000.00", draft.Amount.StringFixed(2))
}

func TestSubmitSuccessAppendsConfirmedRecord(t *testing.T) {
	sandbox := payment.NewSandbox(decimal.NewFromInt(5000))
	store := &memorySessionStore{}
	svc := newTestBookingService(sandbox, store)

	outcome, err := svc.Submit(context.Background(), testStudentID, filledDraft(t, svc, 90))
	require.NoError(t, err)

	assert.True(t, outcome.Saved)
	assert.False(t, outcome.Reconciled)
	require.Equal(t, 1, store.count())

	record := store.records[0]
	assert.Equal(t, outcome.Record, record)
	assert.Equal(t, model.SessionStatusConfirmed, record.Status)
	assert.Equal(t, testStudentID, record.StudentID)
	assert.Equal(t, int64(7), record.MentorID)
	assert.Equal(t, "Анна Смирнова", record.MentorName)
	assert.Equal(t, "2026-10-19", record.Date)
	assert.Equal(t, "10:00", record.Time)
	assert.Equal(t, 90, record.DurationMinutes)
	assert.Equal(t, "Архитектура", record.Topic)
	assert.Equal(t, "2250.00", record.Amount.StringFixed(2))
	assert.NotEmpty(t, record.ID.String())

	balance, err := svc.Balance(context.Background(), testStudentID)
	require.NoError(t, err)
	assert.Equal(t, "2750.00", balance.StringFixed(2))
}

func TestSubmitOneRecordPerSuccessfulSubmission(t *testing.T) {
	store := &memorySessionStore{}
	svc := newTestBookingService(payment.NewSandbox(decimal.NewFromInt(10000)), store)

	for i := 0; i < 3; i++ {
		_, err := svc.Submit(context.Background(), testStudentID, filledDraft(t, svc, 30))
		require.NoError(t, err)
	}

	records, err := svc.ListSessions(context.Background(), testStudentID)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestSubmitBlockedByValidation(t *testing.T) {
	sandbox := payment.NewSandbox(decimal.NewFromInt(5000))
	store := &memorySessionStore{}
	svc := newTestBookingService(sandbox, store)

	cases := map[string]func(d *model.BookingDraft){
		"topic": func(d *model.BookingDraft) { d.Topic = " " },
		"goals": func(d *model.BookingDraft) { d.Goals = "" },
		"time":  func(d *model.BookingDraft) { d.TimeSlot = "" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			draft := filledDraft(t, svc, 60)
			mutate(draft)

			outcome, err := svc.Submit(context.Background(), testStudentID, draft)
			assert.Nil(t, outcome)
			assert.True(t, IsValidationError(err))
		})
	}

	assert.Equal(t, 0, sandbox.Payments())
	assert.Equal(t, 0, store.count())
}

func TestSubmitReportedFailureReconciledAsSuccess(t *testing.T) {
	sandbox := payment.NewSandbox(decimal.NewFromInt(5000))
	sandbox.SetMode(payment.SandboxFalseFailure)
	store := &memorySessionStore{}
	svc := newTestBookingService(sandbox, store)

	outcome, err := svc.Submit(context.Background(), testStudentID, filledDraft(t, svc, 60))
	require.NoError(t, err)

	assert.True(t, outcome.Reconciled)
	assert.True(t, outcome.Saved)
	assert.Equal(t, 1, store.count())
	assert.Equal(t, model.SessionStatusConfirmed, store.records[0].Status)
}

func TestSubmitReconciliationWithinTolerance(t *testing.T) {
	payments := &stubPayments{
		result:   model.PaymentResult{Success: false, Message: "timeout"},
		balances: []string{"5 000,00 ₽", "3500.005"},
	}
	store := &memorySessionStore{}
	svc := newTestBookingService(payments, store)

	outcome, err := svc.Submit(context.Background(), testStudentID, filledDraft(t, svc, 60))
	require.NoError(t, err)
	assert.True(t, outcome.Reconciled)
	assert.Equal(t, 1, store.count())
}

func TestSubmitGenuineFailureSurfacesMessage(t *testing.T) {
	sandbox := payment.NewSandbox(decimal.NewFromInt(5000))
	sandbox.SetMode(payment.SandboxDecline)
	store := &memorySessionStore{}
	svc := newTestBookingService(sandbox, store)

	outcome, err := svc.Submit(context.Background(), testStudentID, filledDraft(t, svc, 60))
	assert.Nil(t, outcome)

	var declined *payment.DeclinedError
	require.ErrorAs(t, err, &declined)
	assert.Equal(t, "Платёж отклонён банком", declined.Message)
	assert.Equal(t, 0, store.count())
}

func TestSubmitInsufficientFunds(t *testing.T) {
	store := &memorySessionStore{}
	svc := newTestBookingService(payment.NewSandbox(decimal.NewFromInt(100)), store)

	_, err := svc.Submit(context.Background(), testStudentID, filledDraft(t, svc, 60))

	var declined *payment.DeclinedError
	assert.ErrorAs(t, err, &declined)
	assert.Equal(t, 0, store.count())
}

func TestSubmitFailureWithoutPreviousBalanceIsGenuine(t *testing.T) {
	payments := &stubPayments{
		result:     model.PaymentResult{Success: false, Message: "declined"},
		balanceErr: payment.ErrUnavailable,
	}
	store := &memorySessionStore{}
	svc := newTestBookingService(payments, store)

	_, err := svc.Submit(context.Background(), testStudentID, filledDraft(t, svc, 60))

	var declined *payment.DeclinedError
	require.ErrorAs(t, err, &declined)
	assert.Equal(t, "declined", declined.Message)
	assert.Equal(t, 0, store.count())
}

func TestSubmitSuccessWithoutBalanceStillBooks(t *testing.T) {
	payments := &stubPayments{
		result:     model.PaymentResult{Success: true},
		balanceErr: payment.ErrUnavailable,
	}
	store := &memorySessionStore{}
	svc := newTestBookingService(payments, store)

	outcome, err := svc.Submit(context.Background(), testStudentID, filledDraft(t, svc, 60))
	require.NoError(t, err)
	assert.True(t, outcome.Saved)
	assert.Equal(t, 1, store.count())
}

func TestSubmitPaymentCallErrorAborts(t *testing.T) {
	payments := &stubPayments{
		payErr:   fmt.Errorf("pay from cart: %w: connection refused", payment.ErrUnavailable),
		balances: []string{"5000.00"},
	}
	store := &memorySessionStore{}
	svc := newTestBookingService(payments, store)

	outcome, err := svc.Submit(context.Background(), testStudentID, filledDraft(t, svc, 60))
	assert.Nil(t, outcome)
	assert.ErrorIs(t, err, payment.ErrUnavailable)
	assert.Equal(t, 1, payments.calls)
	assert.Equal(t, 0, store.count())
	assert.False(t, svc.IsSubmitting(testStudentID))

	// Повторная отправка разрешена, автоматических повторов нет
	payments.payErr = nil
	payments.result = model.PaymentResult{Success: true}
	_, err = svc.Submit(context.Background(), testStudentID, filledDraft(t, svc, 60))
	require.NoError(t, err)
	assert.Equal(t, 2, payments.calls)
	assert.Equal(t, 1, store.count())
}

func TestSubmitStoreFailureKeepsPayment(t *testing.T) {
	store := &memorySessionStore{appendErr: errors.New("redis down")}
	svc := newTestBookingService(payment.NewSandbox(decimal.NewFromInt(5000)), store)

	outcome, err := svc.Submit(context.Background(), testStudentID, filledDraft(t, svc, 60))
	require.NoError(t, err)
	assert.False(t, outcome.Saved)
	assert.NotNil(t, outcome.Record)
}

func TestSubmitRejectsConcurrentSubmission(t *testing.T) {
	payments := &blockingPayments{entered: make(chan struct{}), release: make(chan struct{})}
	store := &memorySessionStore{}
	svc := newTestBookingService(payments, store)

	first := filledDraft(t, svc, 60)
	second := filledDraft(t, svc, 60)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(context.Background(), testStudentID, first)
		done <- err
	}()

	<-payments.entered
	assert.True(t, svc.IsSubmitting(testStudentID))

	_, err := svc.Submit(context.Background(), testStudentID, second)
	assert.ErrorIs(t, err, ErrSubmissionInProgress)

	close(payments.release)
	require.NoError(t, <-done)

	assert.False(t, svc.IsSubmitting(testStudentID))
	assert.Equal(t, 1, store.count())
}

func TestBeginSubmitReservesUntilRelease(t *testing.T) {
	store := &memorySessionStore{}
	sandbox := payment.NewSandbox(decimal.NewFromInt(5000))
	svc := newTestBookingService(sandbox, store)

	sub, err := svc.BeginSubmit(testStudentID)
	require.NoError(t, err)
	assert.True(t, svc.IsSubmitting(testStudentID))

	_, err = svc.BeginSubmit(testStudentID)
	assert.ErrorIs(t, err, ErrSubmissionInProgress)

	_, err = svc.Submit(context.Background(), testStudentID, filledDraft(t, svc, 60))
	assert.ErrorIs(t, err, ErrSubmissionInProgress)
	assert.Zero(t, sandbox.Payments())

	_, err = sub.Submit(context.Background(), filledDraft(t, svc, 60))
	require.NoError(t, err)
	assert.True(t, svc.IsSubmitting(testStudentID), "submit keeps the reservation")

	sub.Release()
	sub.Release()
	assert.False(t, svc.IsSubmitting(testStudentID))
	assert.Equal(t, 1, sandbox.Payments())
	assert.Equal(t, 1, store.count())
}
