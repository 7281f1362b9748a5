package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ari1008/vegnbio-reservation/internal/domain/menu"
)

var (
	ErrCacheMiss = errors.New("キャッシュが見つかりません")
)

// MenuCache はレストランごとのメニューのキャッシュを管理する
type MenuCache struct {
	client *redis.Client
}

// NewMenuCache は新しいMenuCacheインスタンスを作成する
func NewMenuCache(client *redis.Client) *MenuCache {
	return &MenuCache{client: client}
}

// Get はレストランのメニューをキャッシュから取得する
func (c *MenuCache) Get(ctx context.Context, restaurantID string) ([]*menu.Dish, error) {
	key := c.menuKey(restaurantID)
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("キャッシュ取得に失敗: %w", err)
	}
	var dishes []*menu.Dish
	if err := json.Unmarshal(val, &dishes); err != nil {
		return nil, fmt.Errorf("キャッシュのデコードに失敗: %w", err)
	}
	return dishes, nil
}

// Set はレストランのメニューをキャッシュに保存する
func (c *MenuCache) Set(ctx context.Context, restaurantID string, dishes []*menu.Dish, ttl time.Duration) error {
	data, err := json.Marshal(dishes)
	if err != nil {
		return fmt.Errorf("キャッシュのエンコードに失敗: %w", err)
	}
	if err := c.client.Set(ctx, c.menuKey(restaurantID), data, ttl).Err(); err != nil {
		return fmt.Errorf("キャッシュ保存に失敗: %w", err)
	}
	return nil
}

// Invalidate はレストランのメニューキャッシュを無効化する
func (c *MenuCache) Invalidate(ctx context.Context, restaurantID string) error {
	if err := c.client.Del(ctx, c.menuKey(restaurantID)).Err(); err != nil {
		return fmt.Errorf("キャッシュ無効化に失敗: %w", err)
	}
	return nil
}

func (c *MenuCache) menuKey(restaurantID string) string {
	return fmt.Sprintf("menu:%s", restaurantID)
}
