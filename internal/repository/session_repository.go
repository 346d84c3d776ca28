package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/mentor_bot/internal/model"
	"github.com/Freeeeeet/mentor_bot/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionRepository хранит записи о сессиях в Postgres. Записи только добавляются.
type SessionRepository struct {
	*base.Repository
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{Repository: base.NewRepository(pool)}
}

// Append добавляет запись о сессии
func (r *SessionRepository) Append(ctx context.Context, record *model.SessionRecord) error {
	query := `
		INSERT INTO mentoring_sessions (
			id, student_id, mentor_id, mentor_name, session_date, session_time,
			duration_minutes, topic, goals, amount_cents, status, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.ExecAffected(
		ctx, query,
		record.ID,
		record.StudentID,
		record.MentorID,
		record.MentorName,
		record.Date,
		record.Time,
		record.DurationMinutes,
		record.Topic,
		record.Goals,
		base.ToCents(record.Amount),
		record.Status,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append session record: %w", err)
	}

	return nil
}

// ListByStudent получает записи ученика в порядке добавления
func (r *SessionRepository) ListByStudent(ctx context.Context, studentID int64) ([]*model.SessionRecord, error) {
	query := `
		SELECT id, student_id, mentor_id, mentor_name, session_date, session_time,
		       duration_minutes, topic, goals, amount_cents, status, created_at
		FROM mentoring_sessions
		WHERE student_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("list session records: %w", err)
	}
	defer rows.Close()

	var records []*model.SessionRecord
	for rows.Next() {
		var (
			record      model.SessionRecord
			amountCents int64
		)
		err := rows.Scan(
			&record.ID,
			&record.StudentID,
			&record.MentorID,
			&record.MentorName,
			&record.Date,
			&record.Time,
			&record.DurationMinutes,
			&record.Topic,
			&record.Goals,
			&amountCents,
			&record.Status,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan session record: %w", err)
		}
		record.Amount = base.FromCents(amountCents)
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session records: %w", err)
	}

	return records, nil
}
