package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// AbsenceRetry - неудачные дни отсутствия, которые можно отправить повторно
type AbsenceRetry struct {
	UserID   uint     `json:"user_id"`
	Type     string   `json:"type"`
	Quantity string   `json:"quantity,omitempty"`
	Position string   `json:"position"`
	Days     []string `json:"days"`
}

// ChatState - состояние диалога с ботом в одном чате
type ChatState struct {
	EstablishmentID uint          `json:"establishment_id,omitempty"`
	WeekStart       string        `json:"week_start,omitempty"`
	PendingDelete   uint          `json:"pending_delete,omitempty"`
	Retry           *AbsenceRetry `json:"retry,omitempty"`
}

type Store interface {
	Get(ctx context.Context, chatID int64) (ChatState, error)
	Save(ctx context.Context, chatID int64, st ChatState) error
	Clear(ctx context.Context, chatID int64) error
}

// RedisStore хранит состояние чатов в Redis с ограниченным сроком жизни
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, prefix: "planning:chat:"}
}

func (s *RedisStore) key(chatID int64) string {
	return s.prefix + strconv.FormatInt(chatID, 10)
}

func (s *RedisStore) Get(ctx context.Context, chatID int64) (ChatState, error) {
	var st ChatState

	val, err := s.client.Get(ctx, s.key(chatID)).Result()
	if errors.Is(err, redis.Nil) {
		return st, nil
	}
	if err != nil {
		return st, fmt.Errorf("get chat state: %w", err)
	}

	if err := json.Unmarshal([]byte(val), &st); err != nil {
		return ChatState{}, fmt.Errorf("decode chat state: %w", err)
	}
	return st, nil
}

func (s *RedisStore) Save(ctx context.Context, chatID int64, st ChatState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(chatID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save chat state: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, chatID int64) error {
	return s.client.Del(ctx, s.key(chatID)).Err()
}

// MemoryStore - хранилище в памяти процесса, когда Redis не настроен
type MemoryStore struct {
	mu     sync.Mutex
	states map[int64]ChatState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[int64]ChatState)}
}

func (s *MemoryStore) Get(_ context.Context, chatID int64) (ChatState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[chatID], nil
}

func (s *MemoryStore) Save(_ context.Context, chatID int64, st ChatState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[chatID] = st
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, chatID)
	return nil
}
