package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"uniLeaderboard/internal/domain/model"
	"uniLeaderboard/internal/domain/repository"
)

// RedisRepository implements the LeaderboardCache interface using Redis as
// the backend. Documents are stored as JSON under leaderboard:{network}_{token}
// with a configurable TTL.
type RedisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRepository(addr, password string, db int, ttl time.Duration) *RedisRepository {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisRepository{client: client, ttl: ttl}
}

// Ensure RedisRepository implements the LeaderboardCache interface
var _ repository.LeaderboardCache = (*RedisRepository)(nil)

// Ping verifies the connection to Redis.
func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRepository) SaveLeaderboard(ctx context.Context, network, token string, lb *model.Leaderboard) error {
	data, err := json.Marshal(lb)
	if err != nil {
		return fmt.Errorf("failed to marshal leaderboard: %w", err)
	}

	return r.client.Set(ctx, cacheKey(network, token), data, r.ttl).Err()
}

func (r *RedisRepository) GetLeaderboard(ctx context.Context, network, token string) (*model.Leaderboard, error) {
	data, err := r.client.Get(ctx, cacheKey(network, token)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var lb model.Leaderboard
	if err := json.Unmarshal([]byte(data), &lb); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached leaderboard: %w", err)
	}

	return &lb, nil
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}

func cacheKey(network, token string) string {
	return fmt.Sprintf("leaderboard:%s_%s", network, token)
}
