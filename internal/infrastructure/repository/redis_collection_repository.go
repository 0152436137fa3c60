package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	domainRepo "github.com/sangkips/gestor-mesas/internal/domain/repository"
)

type redisCollectionRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisCollectionRepository creates a collection store keeping each collection in one Redis string.
// A non-empty prefix is joined to every key with a colon.
func NewRedisCollectionRepository(client *redis.Client, prefix string) domainRepo.CollectionRepository {
	return &redisCollectionRepository{client: client, prefix: prefix}
}

func (r *redisCollectionRepository) key(name string) string {
	if r.prefix == "" {
		return name
	}
	return fmt.Sprintf("%s:%s", r.prefix, name)
}

func (r *redisCollectionRepository) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, nil
}

func (r *redisCollectionRepository) Put(ctx context.Context, key string, payload []byte) error {
	if err := r.client.Set(ctx, r.key(key), payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
