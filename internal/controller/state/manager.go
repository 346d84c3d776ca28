package state

import (
	"sync"
	"time"
)

// Manager управляет состояниями пользователей
type Manager struct {
	mu     sync.RWMutex
	states map[int64]*UserData // telegramID -> UserData
	now    func() time.Time
}

// NewManager создаёт новый менеджер состояний
func NewManager() *Manager {
	return &Manager{
		states: make(map[int64]*UserData),
		now:    time.Now,
	}
}

// GetState получает текущее состояние пользователя
func (sm *Manager) GetState(telegramID int64) UserState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		return userData.State
	}
	return StateNone
}

// SetState устанавливает состояние пользователя
func (sm *Manager) SetState(telegramID int64, state UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if state == StateNone {
		// Если состояние None, удаляем запись
		delete(sm.states, telegramID)
		return
	}

	sm.touchLocked(telegramID).State = state
}

// GetData получает временные данные пользователя
func (sm *Manager) GetData(telegramID int64, key string) (interface{}, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		value, ok := userData.Data[key]
		return value, ok
	}
	return nil, false
}

// SetData устанавливает временные данные пользователя
func (sm *Manager) SetData(telegramID int64, key string, value interface{}) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.touchLocked(telegramID).Data[key] = value
}

// ClearState очищает состояние и данные пользователя
func (sm *Manager) ClearState(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, telegramID)
}

// TakeData забирает значение по ключу, удаляя его из данных пользователя.
// Два одновременных вызова не получат одно значение дважды.
func (sm *Manager) TakeData(telegramID int64, key string) (interface{}, bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	userData, exists := sm.states[telegramID]
	if !exists {
		return nil, false
	}

	value, ok := userData.Data[key]
	if ok {
		delete(userData.Data, key)
		userData.UpdatedAt = sm.now()
	}
	return value, ok
}

// PurgeStale удаляет диалоги, которые не менялись дольше maxAge.
// Возвращает количество удалённых записей.
func (sm *Manager) PurgeStale(maxAge time.Duration) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	cutoff := sm.now().Add(-maxAge)
	purged := 0
	for telegramID, userData := range sm.states {
		if userData.UpdatedAt.Before(cutoff) {
			delete(sm.states, telegramID)
			purged++
		}
	}
	return purged
}

// touchLocked возвращает запись пользователя, создавая её при необходимости, и обновляет время изменения
func (sm *Manager) touchLocked(telegramID int64) *UserData {
	userData, exists := sm.states[telegramID]
	if !exists {
		userData = &UserData{
			State: StateNone,
			Data:  make(map[string]interface{}),
		}
		sm.states[telegramID] = userData
	}
	userData.UpdatedAt = sm.now()
	return userData
}
