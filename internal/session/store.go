package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mentorhub/mentor-qa-service/internal/cache"
)

var ErrSessionNotFound = errors.New("session not found")

type FlashLevel string

const (
	FlashSuccess FlashLevel = "success"
	FlashError   FlashLevel = "error"
	FlashInfo    FlashLevel = "info"
)

type Flash struct {
	Level   FlashLevel `json:"level"`
	Message string     `json:"message"`
}

// Data is what a session persists between requests. UserID is zero for
// anonymous sessions that only carry flash messages.
type Data struct {
	UserID  uint    `json:"user_id"`
	Flashes []Flash `json:"flashes,omitempty"`
}

// Store persists session data under opaque ids with a sliding expiry.
type Store interface {
	Create(ctx context.Context, data *Data) (string, error)
	Get(ctx context.Context, id string) (*Data, error)
	Save(ctx context.Context, id string, data *Data) error
	Destroy(ctx context.Context, id string) error
}

func newID() string {
	return uuid.NewString()
}

// RedisStore keeps sessions as JSON values under "session:<id>".
type RedisStore struct {
	helper *cache.CacheHelper
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		helper: cache.NewCacheHelper(client, "session:"),
		ttl:    ttl,
	}
}

func (s *RedisStore) Create(ctx context.Context, data *Data) (string, error) {
	id := newID()
	if err := s.Save(ctx, id, data); err != nil {
		return "", err
	}
	return id, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Data, error) {
	var data Data
	if err := s.helper.Get(ctx, id, &data); err != nil {
		if errors.Is(err, cache.ErrCacheNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return &data, nil
}

func (s *RedisStore) Save(ctx context.Context, id string, data *Data) error {
	if err := s.helper.Set(ctx, id, data, s.ttl); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Destroy(ctx context.Context, id string) error {
	if err := s.helper.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

// MemoryStore is the single-process store used when Redis is not configured.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memoryEntry
}

type memoryEntry struct {
	data      Data
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Create(ctx context.Context, data *Data) (string, error) {
	id := newID()
	return id, s.Save(ctx, id, data)
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.sessions, id)
		return nil, ErrSessionNotFound
	}

	data := entry.data
	data.Flashes = append([]Flash(nil), entry.data.Flashes...)
	return &data, nil
}

func (s *MemoryStore) Save(_ context.Context, id string, data *Data) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *data
	stored.Flashes = append([]Flash(nil), data.Flashes...)
	s.sessions[id] = memoryEntry{data: stored, expiresAt: s.now().Add(s.ttl)}

	// opportunistic sweep keeps abandoned sessions from piling up
	if len(s.sessions)%256 == 0 {
		now := s.now()
		for k, e := range s.sessions {
			if !now.Before(e.expiresAt) {
				delete(s.sessions, k)
			}
		}
	}
	return nil
}

func (s *MemoryStore) Destroy(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
