package formatting

import "github.com/Freeeeeet/mentor_bot/internal/model"

// SessionStatusDisplay представляет отображение статуса сессии
type SessionStatusDisplay struct {
	Emoji string
	Text  string
}

// GetSessionStatusDisplay возвращает emoji и текст для статуса сессии
func GetSessionStatusDisplay(status model.SessionStatus) SessionStatusDisplay {
	displays := map[model.SessionStatus]SessionStatusDisplay{
		model.SessionStatusConfirmed: {"✅", "Подтверждена"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return SessionStatusDisplay{"❓", "Неизвестно"}
}
