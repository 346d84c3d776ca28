package common

import (
	"github.com/Freeeeeet/mentor_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/mentor_bot/internal/model"
)

// LoadDraft достаёт черновик формы из состояния пользователя.
// Возвращает копию, изменения сохраняются через SaveDraft.
func LoadDraft(sm callbacktypes.StateManager, telegramID int64) (*model.BookingDraft, error) {
	value, ok := sm.GetData(telegramID, callbacktypes.DraftKey)
	if !ok {
		return nil, ErrDraftNotFound
	}

	draft, ok := value.(*model.BookingDraft)
	if !ok || draft == nil {
		return nil, ErrDraftNotFound
	}

	copied := *draft
	return &copied, nil
}

// SaveDraft сохраняет черновик и возвращает пользователя в режим формы
func SaveDraft(sm callbacktypes.StateManager, telegramID int64, draft *model.BookingDraft) {
	sm.SetData(telegramID, callbacktypes.DraftKey, draft)
	sm.SetState(telegramID, callbacktypes.StateBookingForm)
}

// TakeDraft забирает черновик из состояния. Пока черновик не вернули через SaveDraft,
// повторный TakeDraft или LoadDraft его не найдёт.
func TakeDraft(sm callbacktypes.StateManager, telegramID int64) (*model.BookingDraft, error) {
	value, ok := sm.TakeData(telegramID, callbacktypes.DraftKey)
	if !ok {
		return nil, ErrDraftNotFound
	}

	draft, ok := value.(*model.BookingDraft)
	if !ok || draft == nil {
		return nil, ErrDraftNotFound
	}
	return draft, nil
}
