package model

import "time"

type User struct {
	ID           int64     `json:"id"`
	TelegramID   int64     `json:"telegram_id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	LanguageCode string    `json:"language_code"`
	IsMentor     bool      `json:"is_mentor"`
	CreatedAt    time.Time `json:"created_at"`
}

// DisplayName возвращает имя для показа в сообщениях
func (u *User) DisplayName() string {
	if u.FirstName != "" {
		if u.LastName != "" {
			return u.FirstName + " " + u.LastName
		}
		return u.FirstName
	}
	if u.Username != "" {
		return "@" + u.Username
	}
	return "Без имени"
}
