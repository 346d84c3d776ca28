package common

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/mentor_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/mentor_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/mentor_bot/internal/model"
	"github.com/Freeeeeet/mentor_bot/internal/service"
	"github.com/go-telegram/bot/models"
)

const (
	mentorsPageSize    = 5
	sessionsListLimit  = 20
	bioPreviewLength   = 80
	fieldPreviewLength = 200
)

// BuildMentorsListScreen формирует экран каталога менторов с пагинацией
func BuildMentorsListScreen(mentors []*model.Mentor, page int) (string, *models.InlineKeyboardMarkup) {
	if len(mentors) == 0 {
		text := "😔 Пока нет менторов, доступных для записи.\n\n" +
			"Станьте первым: /becomementor"
		return text, keyboard.NewBuilder().Row(keyboard.BackToMainButton()).Build()
	}

	totalPages := (len(mentors) + mentorsPageSize - 1) / mentorsPageSize
	if page < 0 || page >= totalPages {
		page = 0
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("👨‍🏫 <b>Менторы</b> (%d %s)\n\n",
		len(mentors), formatting.PluralizeMentors(len(mentors))))

	kb := keyboard.NewBuilder()

	start := page * mentorsPageSize
	end := start + mentorsPageSize
	if end > len(mentors) {
		end = len(mentors)
	}

	for i := start; i < end; i++ {
		mentor := mentors[i]
		sb.WriteString(fmt.Sprintf("%d. <b>%s</b> · %s\n",
			i+1, html.EscapeString(mentor.DisplayName), formatting.FormatHourlyRate(mentor.HourlyRate)))
		if mentor.Bio != "" {
			sb.WriteString("   " + html.EscapeString(truncate(mentor.Bio, bioPreviewLength)) + "\n")
		}
		sb.WriteString("\n")

		kb.Row(keyboard.Button(
			fmt.Sprintf("👤 %s", mentor.DisplayName),
			CallbackMentorProfile+strconv.FormatInt(mentor.ID, 10),
		))
	}

	kb.AddPagination(CallbackMentorsPage, page, totalPages)
	kb.Row(keyboard.BackToMainButton())

	return sb.String(), kb.Build()
}

// BuildMentorProfileScreen формирует карточку ментора с кнопкой записи
func BuildMentorProfileScreen(mentor *model.Mentor) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf(
		"👤 <b>%s</b>\n\n"+
			"💰 Ставка: %s\n",
		html.EscapeString(mentor.DisplayName),
		formatting.FormatHourlyRate(mentor.HourlyRate),
	)
	if mentor.Bio != "" {
		text += "\n📝 " + html.EscapeString(mentor.Bio) + "\n"
	}

	text += "\nДоступна длительность: 30, 60, 90 или 120 минут."

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📝 Записаться", CallbackBookMentor+strconv.FormatInt(mentor.ID, 10))).
		Row(keyboard.BackButton(CallbackMentorsPage + "0")).
		Build()

	return text, kb
}

// BuildBookingFormScreen формирует форму записи с текущими значениями черновика
func BuildBookingFormScreen(draft *model.BookingDraft) (string, *models.InlineKeyboardMarkup) {
	text := bookingFormText(draft)

	submitLabel := "💳 Оплатить " + formatting.FormatAmount(draft.Amount)
	if err := service.ValidateDraft(draft); err != nil {
		text += "\n\n⚠️ " + service.ValidationMessage(err)
	}

	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("📅 Дата", CallbackFormDate),
			keyboard.Button("🕐 Время", CallbackFormTime),
		).
		Row(keyboard.Button("⏱ Длительность", CallbackFormDuration)).
		Row(
			keyboard.Button("📌 Тема", CallbackFormTopic),
			keyboard.Button("🎯 Цели", CallbackFormGoals),
		).
		Row(keyboard.Button(submitLabel, CallbackFormSubmit)).
		Row(keyboard.CancelButton(CallbackFormCancel)).
		Build()

	return text, kb
}

// BuildPaymentInProgressScreen показывает форму без активных кнопок, пока идёт оплата
func BuildPaymentInProgressScreen(draft *model.BookingDraft) (string, *models.InlineKeyboardMarkup) {
	text := bookingFormText(draft) + "\n\n⏳ <b>Оплата выполняется...</b>"

	kb := keyboard.NewBuilder().
		Row(keyboard.NoopButton("⏳ Оплата...")).
		Build()

	return text, kb
}

// BuildDatePickerScreen формирует выбор даты на ближайшие дни
func BuildDatePickerScreen(draft *model.BookingDraft, today time.Time) (string, *models.InlineKeyboardMarkup) {
	dates := BookingDates(today)
	buttons := make([]models.InlineKeyboardButton, 0, len(dates))

	for _, date := range dates {
		label := formatting.FormatDateButton(date)
		if sameDay(date, draft.Date) {
			label = "✅ " + label
		}
		buttons = append(buttons, keyboard.Button(label, CallbackFormSetDate+date.Format(model.SessionDateLayout)))
	}

	kb := keyboard.NewBuilder().
		Grid(3, buttons...).
		Row(keyboard.BackButton(CallbackFormShow)).
		Build()

	return "📅 Выберите дату сессии:", kb
}

// BuildTimePickerScreen формирует выбор времени начала сессии
func BuildTimePickerScreen(draft *model.BookingDraft) (string, *models.InlineKeyboardMarkup) {
	slots := TimeSlots()
	buttons := make([]models.InlineKeyboardButton, 0, len(slots))

	for _, slot := range slots {
		label := slot
		if slot == draft.TimeSlot {
			label = "✅ " + slot
		}
		buttons = append(buttons, keyboard.Button(label, CallbackFormSetTime+slot))
	}

	kb := keyboard.NewBuilder().
		Grid(4, buttons...).
		Row(keyboard.BackButton(CallbackFormShow)).
		Build()

	text := fmt.Sprintf("🕐 Выберите время начала сессии на %s:", formatting.FormatDateWithWeekday(draft.Date))
	return text, kb
}

// BuildDurationPickerScreen формирует выбор длительности с ценой каждого варианта
func BuildDurationPickerScreen(draft *model.BookingDraft) (string, *models.InlineKeyboardMarkup) {
	buttons := make([]models.InlineKeyboardButton, 0, len(service.SupportedDurations))

	for _, minutes := range service.SupportedDurations {
		label := fmt.Sprintf("%s · %s",
			formatting.FormatDuration(minutes),
			formatting.FormatAmount(service.SessionAmount(draft.HourlyRate, minutes)))
		if minutes == draft.DurationMinutes {
			label = "✅ " + label
		}
		buttons = append(buttons, keyboard.Button(label, CallbackFormSetDuration+strconv.Itoa(minutes)))
	}

	kb := keyboard.NewBuilder().
		Grid(2, buttons...).
		Row(keyboard.BackButton(CallbackFormShow)).
		Build()

	text := fmt.Sprintf("⏱ Выберите длительность сессии\n\n💰 Ставка: %s",
		formatting.FormatHourlyRate(draft.HourlyRate))
	return text, kb
}

// BuildBookingSuccessScreen формирует экран подтверждённой записи
func BuildBookingSuccessScreen(outcome *service.Outcome) (string, *models.InlineKeyboardMarkup) {
	record := outcome.Record

	text := fmt.Sprintf(
		"✅ <b>Сессия оплачена и подтверждена!</b>\n\n"+
			"👤 Ментор: %s\n"+
			"📅 Дата: %s\n"+
			"🕐 Время: %s\n"+
			"⏱ Длительность: %s\n"+
			"📌 Тема: %s\n"+
			"💳 Оплачено: %s",
		html.EscapeString(record.MentorName),
		formatting.FormatSessionDate(record.Date),
		record.Time,
		formatting.FormatDuration(record.DurationMinutes),
		html.EscapeString(record.Topic),
		formatting.FormatAmount(record.Amount),
	)

	if outcome.Reconciled {
		text += "\n\nℹ️ Платёжный сервис ответил ошибкой, но списание по балансу подтверждено."
	}
	if !outcome.Saved {
		text += "\n\n⚠️ Оплата прошла, но запись не сохранилась в истории. " +
			"Сохраните это сообщение как подтверждение."
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📋 Мои сессии", CallbackMySessions)).
		Row(keyboard.BackToMainButton()).
		Build()

	return text, kb
}

// BuildSessionsListScreen формирует список оплаченных сессий в порядке записи
func BuildSessionsListScreen(records []*model.SessionRecord) (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📚 Записаться ещё", CallbackMentorsPage+"0")).
		Build()

	if len(records) == 0 {
		return "📋 У вас пока нет сессий.\n\nВыберите ментора: /mentors", kb
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 <b>Мои сессии</b> (%d %s)\n\n",
		len(records), formatting.PluralizeSessions(len(records))))

	shown := records
	if len(shown) > sessionsListLimit {
		shown = shown[len(shown)-sessionsListLimit:]
		sb.WriteString(fmt.Sprintf("Показаны последние %d:\n\n", sessionsListLimit))
	}

	for _, record := range shown {
		display := formatting.GetSessionStatusDisplay(record.Status)
		sb.WriteString(fmt.Sprintf(
			"%s %s %s · %s\n"+
				"   👤 %s · %s\n"+
				"   📌 %s\n\n",
			display.Emoji,
			formatting.FormatSessionDate(record.Date),
			record.Time,
			formatting.FormatDuration(record.DurationMinutes),
			html.EscapeString(record.MentorName),
			formatting.FormatAmount(record.Amount),
			html.EscapeString(truncate(record.Topic, bioPreviewLength)),
		))
	}

	return sb.String(), kb
}

// BuildMentorSettingsScreen формирует профиль ментора для него самого
func BuildMentorSettingsScreen(mentor *model.Mentor) (string, *models.InlineKeyboardMarkup) {
	status := "🟢 Принимает записи"
	toggleLabel := "⏸ Скрыть из каталога"
	if !mentor.IsActive {
		status = "⏸ Скрыт из каталога"
		toggleLabel = "▶️ Вернуть в каталог"
	}

	text := fmt.Sprintf(
		"🎓 <b>Ваш профиль ментора</b>\n\n"+
			"👤 %s\n"+
			"💰 Ставка: %s\n"+
			"📊 Статус: %s\n\n"+
			"Чтобы изменить ставку, снова отправьте /becomementor",
		html.EscapeString(mentor.DisplayName),
		formatting.FormatHourlyRate(mentor.HourlyRate),
		status,
	)

	kb := keyboard.NewBuilder().
		Row(keyboard.Button(toggleLabel, CallbackMentorToggle)).
		Row(keyboard.BackToMainButton()).
		Build()

	return text, kb
}

func bookingFormText(draft *model.BookingDraft) string {
	timeSlot := "не выбрано"
	if draft.TimeSlot != "" {
		timeSlot = draft.TimeSlot
	}

	topic := "не указана"
	if strings.TrimSpace(draft.Topic) != "" {
		topic = html.EscapeString(truncate(draft.Topic, fieldPreviewLength))
	}

	goals := "не указаны"
	if strings.TrimSpace(draft.Goals) != "" {
		goals = html.EscapeString(truncate(draft.Goals, fieldPreviewLength))
	}

	return fmt.Sprintf(
		"📝 <b>Запись на сессию</b>\n\n"+
			"👤 Ментор: %s\n"+
			"💰 Ставка: %s\n\n"+
			"📅 Дата: %s\n"+
			"🕐 Время: %s\n"+
			"⏱ Длительность: %s\n"+
			"📌 Тема: %s\n"+
			"🎯 Цели: %s\n\n"+
			"💳 К оплате: <b>%s</b>",
		html.EscapeString(draft.MentorName),
		formatting.FormatHourlyRate(draft.HourlyRate),
		formatting.FormatDateWithWeekday(draft.Date),
		timeSlot,
		formatting.FormatDuration(draft.DurationMinutes),
		topic,
		goals,
		formatting.FormatAmount(draft.Amount),
	)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}
