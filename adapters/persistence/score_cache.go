package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khoahotran/credably/internal/application/service"
	"github.com/khoahotran/credably/internal/config"
	"github.com/khoahotran/credably/internal/domain/credibility"
	"github.com/khoahotran/credably/pkg/logger"
)

const scoreKeyPrefix = "credably:score:"

// NewRedisClient connects and pings within a few seconds so the server can
// fall back to running without a cache.
func NewRedisClient(cfg config.Config, log logger.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("can not connect Redis at %s: %w", cfg.Redis.Addr, err)
	}

	log.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	return rdb, nil
}

type redisScoreCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewRedisScoreCache(rdb *redis.Client, ttl time.Duration, logger logger.Logger) service.ScoreCache {
	return &redisScoreCache{rdb: rdb, ttl: ttl, logger: logger}
}

func scoreKey(userID uuid.UUID) string {
	return scoreKeyPrefix + userID.String()
}

func (c *redisScoreCache) Get(ctx context.Context, userID uuid.UUID) (*credibility.Score, error) {
	raw, err := c.rdb.Get(ctx, scoreKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var s credibility.Score
	if err := json.Unmarshal(raw, &s); err != nil {
		// A corrupt entry behaves like a miss and is overwritten by the next Set.
		c.logger.Warn("Dropping unreadable cached score", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, nil
	}
	return &s, nil
}

func (c *redisScoreCache) Set(ctx context.Context, s *credibility.Score) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, scoreKey(s.UserID), raw, c.ttl).Err()
}

func (c *redisScoreCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	return c.rdb.Del(ctx, scoreKey(userID)).Err()
}
