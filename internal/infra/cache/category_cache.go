package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"inventory/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

const categoriesKey = "inventory:categories"

// カテゴリ一覧をRedisに置く
type RedisCategoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCategoryCache(client *redis.Client, ttl time.Duration) *RedisCategoryCache {
	return &RedisCategoryCache{client: client, ttl: ttl}
}

// 無ければ (nil, false, nil)
func (c *RedisCategoryCache) Get(ctx context.Context) ([]model.Category, bool, error) {
	raw, err := c.client.Get(ctx, categoriesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var items []model.Category
	if err := json.Unmarshal(raw, &items); err != nil {
		// 壊れた値は捨てる
		_ = c.client.Del(ctx, categoriesKey).Err()
		return nil, false, nil
	}
	return items, true, nil
}

func (c *RedisCategoryCache) Set(ctx context.Context, categories []model.Category) error {
	raw, err := json.Marshal(categories)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, categoriesKey, raw, c.ttl).Err()
}

func (c *RedisCategoryCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, categoriesKey).Err()
}

// REDIS_ADDR未設定のとき用。常にミス
type NoopCategoryCache struct{}

func (NoopCategoryCache) Get(ctx context.Context) ([]model.Category, bool, error) {
	return nil, false, nil
}

func (NoopCategoryCache) Set(ctx context.Context, categories []model.Category) error { return nil }

func (NoopCategoryCache) Invalidate(ctx context.Context) error { return nil }
