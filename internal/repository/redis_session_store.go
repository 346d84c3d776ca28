package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Freeeeeet/mentor_bot/internal/model"
	"github.com/redis/go-redis/v9"
)

// SessionsKeyPrefix префикс ключа списка записей пользователя
const SessionsKeyPrefix = "mentoring_sessions"

// RedisSessionStore хранит записи о сессиях списком JSON под фиксированным ключом пользователя.
// Записи только добавляются (RPUSH) и никогда не изменяются.
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore создаёт хранилище поверх готового клиента
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

// NewRedisClient подключается к Redis и проверяет соединение
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis address cannot be empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

// SessionsKey возвращает ключ списка записей ученика
func SessionsKey(studentID int64) string {
	return fmt.Sprintf("%s:%d", SessionsKeyPrefix, studentID)
}

// Append добавляет запись в конец списка
func (s *RedisSessionStore) Append(ctx context.Context, record *model.SessionRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}

	if err := s.client.RPush(ctx, SessionsKey(record.StudentID), payload).Err(); err != nil {
		return fmt.Errorf("append session record: %w", err)
	}

	return nil
}

// ListByStudent читает весь список записей ученика
func (s *RedisSessionStore) ListByStudent(ctx context.Context, studentID int64) ([]*model.SessionRecord, error) {
	items, err := s.client.LRange(ctx, SessionsKey(studentID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list session records: %w", err)
	}

	records := make([]*model.SessionRecord, 0, len(items))
	for _, item := range items {
		var record model.SessionRecord
		if err := json.Unmarshal([]byte(item), &record); err != nil {
			return nil, fmt.Errorf("decode session record: %w", err)
		}
		records = append(records, &record)
	}

	return records, nil
}
