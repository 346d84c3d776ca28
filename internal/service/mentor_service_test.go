package service

import (
	"context"
	"strings"
	"testing"

	"github.com/Freeeeeet/mentor_bot/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubUserStore struct {
	user    *model.User
	updated *model.User
}

func (s *stubUserStore) GetByTelegramID(_ context.Context, _ int64) (*model.User, error) {
	return s.user, nil
}

func (s *stubUserStore) Update(_ context.Context, user *model.User) error {
	s.updated = user
	return nil
}

type stubMentorStore struct {
	byUser    map[int64]*model.Mentor
	upserted  *model.Mentor
	activeSet map[int64]bool
}

func newStubMentorStore() *stubMentorStore {
	return &stubMentorStore{byUser: map[int64]*model.Mentor{}, activeSet: map[int64]bool{}}
}

func (s *stubMentorStore) GetByID(_ context.Context, id int64) (*model.Mentor, error) {
	for _, m := range s.byUser {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (s *stubMentorStore) GetByUserID(_ context.Context, userID int64) (*model.Mentor, error) {
	return s.byUser[userID], nil
}

func (s *stubMentorStore) GetActive(_ context.Context) ([]*model.Mentor, error) {
	var out []*model.Mentor
	for _, m := range s.byUser {
		if m.IsActive {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *stubMentorStore) Upsert(_ context.Context, mentor *model.Mentor) error {
	mentor.ID = int64(len(s.byUser) + 1)
	s.upserted = mentor
	s.byUser[mentor.UserID] = mentor
	return nil
}

func (s *stubMentorStore) SetActive(_ context.Context, id int64, active bool) error {
	s.activeSet[id] = active
	return nil
}

func TestBecomeMentor(t *testing.T) {
	users := &stubUserStore{user: &model.User{ID: 5, TelegramID: 500, FirstName: "Анна", LastName: "Смирнова"}}
	mentors := newStubMentorStore()
	svc := NewMentorService(users, mentors, zap.NewNop())

	mentor, err := svc.BecomeMentor(context.Background(), 500, decimal.RequireFromString("1500.499"), "  Go и распределённые системы ")
	require.NoError(t, err)

	assert.Equal(t, int64(5), mentor.UserID)
	assert.Equal(t, "Анна Смирнова", mentor.DisplayName)
	assert.Equal(t, "Go и распределённые системы", mentor.Bio)
	assert.Equal(t, "1500.50", mentor.HourlyRate.StringFixed(2))
	assert.True(t, mentor.IsActive)
	require.NotNil(t, users.updated)
	assert.True(t, users.updated.IsMentor)

	active, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestBecomeMentorValidation(t *testing.T) {
	users := &stubUserStore{user: &model.User{ID: 5, TelegramID: 500}}
	svc := NewMentorService(users, newStubMentorStore(), zap.NewNop())
	ctx := context.Background()

	_, err := svc.BecomeMentor(ctx, 500, decimal.Zero, "")
	assert.ErrorIs(t, err, ErrInvalidHourlyRate)

	_, err = svc.BecomeMentor(ctx, 500, decimal.NewFromInt(2_000_000), "")
	assert.ErrorIs(t, err, ErrInvalidHourlyRate)

	_, err = svc.BecomeMentor(ctx, 500, decimal.NewFromInt(100), strings.Repeat("я", MentorBioMaxLength+1))
	assert.ErrorIs(t, err, ErrBioTooLong)

	svc = NewMentorService(&stubUserStore{}, newStubMentorStore(), zap.NewNop())
	_, err = svc.BecomeMentor(ctx, 500, decimal.NewFromInt(100), "")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSetAvailability(t *testing.T) {
	mentors := newStubMentorStore()
	mentors.byUser[5] = &model.Mentor{ID: 3, UserID: 5, IsActive: true}
	svc := NewMentorService(&stubUserStore{}, mentors, zap.NewNop())

	require.NoError(t, svc.SetAvailability(context.Background(), 5, false))
	assert.False(t, mentors.activeSet[3])

	assert.ErrorIs(t, svc.SetAvailability(context.Background(), 6, true), ErrMentorNotFound)
}
