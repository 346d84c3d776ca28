package common

import (
	"testing"

	"github.com/Freeeeeet/mentor_bot/internal/controller/callbacks/callbacktypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryState struct {
	states map[int64]callbacktypes.UserState
	data   map[int64]map[string]interface{}
}

func newMemoryState() *memoryState {
	return &memoryState{
		states: make(map[int64]callbacktypes.UserState),
		data:   make(map[int64]map[string]interface{}),
	}
}

func (m *memoryState) ClearState(id int64) {
	delete(m.states, id)
	delete(m.data, id)
}

func (m *memoryState) GetState(id int64) callbacktypes.UserState { return m.states[id] }

func (m *memoryState) SetState(id int64, state callbacktypes.UserState) { m.states[id] = state }

func (m *memoryState) SetData(id int64, key string, value interface{}) {
	if m.data[id] == nil {
		m.data[id] = make(map[string]interface{})
	}
	m.data[id][key] = value
}

func (m *memoryState) GetData(id int64, key string) (interface{}, bool) {
	value, ok := m.data[id][key]
	return value, ok
}

func (m *memoryState) TakeData(id int64, key string) (interface{}, bool) {
	value, ok := m.data[id][key]
	delete(m.data[id], key)
	return value, ok
}

func TestLoadDraftMissing(t *testing.T) {
	sm := newMemoryState()

	_, err := LoadDraft(sm, 1)
	assert.ErrorIs(t, err, ErrDraftNotFound)

	sm.SetData(1, callbacktypes.DraftKey, "garbage")
	_, err = LoadDraft(sm, 1)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestSaveAndLoadDraft(t *testing.T) {
	sm := newMemoryState()
	SaveDraft(sm, 1, testDraft())

	assert.Equal(t, callbacktypes.StateBookingForm, sm.GetState(1))

	draft, err := LoadDraft(sm, 1)
	require.NoError(t, err)
	draft.Topic = "changed"

	again, err := LoadDraft(sm, 1)
	require.NoError(t, err)
	assert.Empty(t, again.Topic, "loaded draft is a copy")
}

func TestTakeDraftOnlyOnce(t *testing.T) {
	sm := newMemoryState()
	SaveDraft(sm, 1, testDraft())

	draft, err := TakeDraft(sm, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(7), draft.MentorID)

	_, err = TakeDraft(sm, 1)
	assert.ErrorIs(t, err, ErrDraftNotFound)
	_, err = LoadDraft(sm, 1)
	assert.ErrorIs(t, err, ErrDraftNotFound)

	SaveDraft(sm, 1, draft)
	_, err = LoadDraft(sm, 1)
	assert.NoError(t, err)
}
