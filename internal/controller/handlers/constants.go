package handlers

// Ограничения текстовых полей формы записи
const (
	TopicMaxLength = 200
	GoalsMaxLength = 1000
)

// Ключи данных состояния при регистрации ментора
const (
	dataHourlyRate = "hourly_rate"
)

// bioSkipValue позволяет пропустить описание ментора
const bioSkipValue = "-"
