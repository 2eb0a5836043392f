package favorites

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	"glowbook/models"
)

// Store is the client-local persistent favorites store, keyed per account so
// its lifecycle (load on sign-in, purge on sign-out) is an explicit contract
// rather than ambient global state.
type Store interface {
	Load(ctx context.Context, accountID string) ([]models.Favorite, error)
	Save(ctx context.Context, accountID string, favs []models.Favorite) error
	Purge(ctx context.Context, accountID string) error
}

// RedisStore persists each account's favorites as one JSON value.
type RedisStore struct {
	Client *redis.Client
}

func favoritesKey(accountID string) string {
	return "favorites:" + accountID
}

func (s *RedisStore) Load(ctx context.Context, accountID string) ([]models.Favorite, error) {
	data, err := s.Client.Get(ctx, favoritesKey(accountID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites for account %s: %w", accountID, err)
	}
	var favs []models.Favorite
	if err := json.Unmarshal([]byte(data), &favs); err != nil {
		return nil, fmt.Errorf("failed to parse stored favorites for account %s: %w", accountID, err)
	}
	return favs, nil
}

func (s *RedisStore) Save(ctx context.Context, accountID string, favs []models.Favorite) error {
	if favs == nil {
		favs = []models.Favorite{}
	}
	data, err := json.Marshal(favs)
	if err != nil {
		return fmt.Errorf("failed to marshal favorites for account %s: %w", accountID, err)
	}
	if err := s.Client.Set(ctx, favoritesKey(accountID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store favorites for account %s: %w", accountID, err)
	}
	return nil
}

func (s *RedisStore) Purge(ctx context.Context, accountID string) error {
	if err := s.Client.Del(ctx, favoritesKey(accountID)).Err(); err != nil {
		return fmt.Errorf("failed to purge favorites for account %s: %w", accountID, err)
	}
	return nil
}

// MemoryStore is an in-process Store used in tests.
type MemoryStore struct {
	data map[string][]models.Favorite
	// FailSave forces Save to error, for exercising revert failure paths.
	FailSave bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]models.Favorite)}
}

func (s *MemoryStore) Load(ctx context.Context, accountID string) ([]models.Favorite, error) {
	favs := s.data[accountID]
	out := make([]models.Favorite, len(favs))
	copy(out, favs)
	return out, nil
}

func (s *MemoryStore) Save(ctx context.Context, accountID string, favs []models.Favorite) error {
	if s.FailSave {
		return fmt.Errorf("save disabled")
	}
	stored := make([]models.Favorite, len(favs))
	copy(stored, favs)
	s.data[accountID] = stored
	return nil
}

func (s *MemoryStore) Purge(ctx context.Context, accountID string) error {
	delete(s.data, accountID)
	return nil
}
