package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/mentor_bot/internal/model"
	"github.com/Freeeeeet/mentor_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type MentorRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewMentorRepository(pool *pgxpool.Pool, logger *zap.Logger) *MentorRepository {
	return &MentorRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

const mentorColumns = `id, user_id, display_name, bio, hourly_rate_cents, is_active, created_at`

func scanMentor(row pgx.Row) (*model.Mentor, error) {
	var (
		mentor    model.Mentor
		rateCents int64
	)
	err := row.Scan(
		&mentor.ID,
		&mentor.UserID,
		&mentor.DisplayName,
		&mentor.Bio,
		&rateCents,
		&mentor.IsActive,
		&mentor.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	mentor.HourlyRate = base.FromCents(rateCents)
	return &mentor, nil
}

// Upsert создаёт профиль ментора или обновляет существующий для того же пользователя
func (r *MentorRepository) Upsert(ctx context.Context, mentor *model.Mentor) error {
	query := `
		INSERT INTO mentors (user_id, display_name, bio, hourly_rate_cents, is_active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET display_name = EXCLUDED.display_name,
		    bio = EXCLUDED.bio,
		    hourly_rate_cents = EXCLUDED.hourly_rate_cents,
		    is_active = EXCLUDED.is_active
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		mentor.UserID,
		mentor.DisplayName,
		mentor.Bio,
		base.ToCents(mentor.HourlyRate),
		mentor.IsActive,
	).Scan(&mentor.ID, &mentor.CreatedAt)

	if err != nil {
		r.logger.Error("Failed to upsert mentor",
			zap.Int64("user_id", mentor.UserID),
			zap.Error(err))
		return fmt.Errorf("upsert mentor: %w", err)
	}

	return nil
}

// GetByID получает ментора по ID
func (r *MentorRepository) GetByID(ctx context.Context, id int64) (*model.Mentor, error) {
	query := `SELECT ` + mentorColumns + ` FROM mentors WHERE id = $1`

	mentor, err := scanMentor(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get mentor by id: %w", err)
	}

	return mentor, nil
}

// GetByUserID получает профиль ментора пользователя
func (r *MentorRepository) GetByUserID(ctx context.Context, userID int64) (*model.Mentor, error) {
	query := `SELECT ` + mentorColumns + ` FROM mentors WHERE user_id = $1`

	mentor, err := scanMentor(r.QueryRow(ctx, query, userID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get mentor by user id: %w", err)
	}

	return mentor, nil
}

// GetActive получает всех активных менторов
func (r *MentorRepository) GetActive(ctx context.Context) ([]*model.Mentor, error) {
	query := `SELECT ` + mentorColumns + ` FROM mentors WHERE is_active = true ORDER BY display_name`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get active mentors: %w", err)
	}
	defer rows.Close()

	var mentors []*model.Mentor
	for rows.Next() {
		mentor, err := scanMentor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan mentor: %w", err)
		}
		mentors = append(mentors, mentor)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mentors: %w", err)
	}

	return mentors, nil
}

// SetActive включает или скрывает ментора из каталога
func (r *MentorRepository) SetActive(ctx context.Context, id int64, active bool) error {
	affected, err := r.ExecAffected(ctx, `UPDATE mentors SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("set mentor active: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("mentor not found")
	}

	return nil
}
