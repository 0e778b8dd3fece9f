// Package storage persists table snapshots and the rubber leaderboard in Redis.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/rubber-bridge/internal/network/server/types"
)

const (
	// Redis key 前缀
	tableKeyPrefix = "table:"

	// 默认快照过期时间
	defaultTableExpiration = 2 * time.Hour
)

// RedisStore Redis 存储
type RedisStore struct {
	client     *redis.Client
	expiration time.Duration
}

// NewRedisStore 创建 Redis 存储，expiration <= 0 时使用默认值
func NewRedisStore(client *redis.Client, expiration time.Duration) *RedisStore {
	if expiration <= 0 {
		expiration = defaultTableExpiration
	}
	return &RedisStore{client: client, expiration: expiration}
}

// --- 牌桌存储 ---

// SaveTable 保存牌桌快照
func (rs *RedisStore) SaveTable(ctx context.Context, snap *types.TableSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("序列化牌桌数据失败: %w", err)
	}
	return rs.client.Set(ctx, tableKeyPrefix+snap.Code, data, rs.expiration).Err()
}

// LoadTable 加载牌桌快照，不存在时返回 nil, nil
func (rs *RedisStore) LoadTable(ctx context.Context, code string) (*types.TableSnapshot, error) {
	data, err := rs.client.Get(ctx, tableKeyPrefix+code).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var snap types.TableSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("反序列化牌桌数据失败: %w", err)
	}
	return &snap, nil
}

// DeleteTable 删除牌桌快照
func (rs *RedisStore) DeleteTable(ctx context.Context, code string) error {
	return rs.client.Del(ctx, tableKeyPrefix+code).Err()
}

// GetAllTableCodes 获取所有牌桌号
func (rs *RedisStore) GetAllTableCodes(ctx context.Context) ([]string, error) {
	keys, err := rs.client.Keys(ctx, tableKeyPrefix+"*").Result()
	if err != nil {
		return nil, err
	}

	codes := make([]string, len(keys))
	for i, key := range keys {
		codes[i] = key[len(tableKeyPrefix):]
	}
	return codes, nil
}

// ClearTables 删除所有牌桌快照，返回删除数量
func (rs *RedisStore) ClearTables(ctx context.Context) (int, error) {
	codes, err := rs.GetAllTableCodes(ctx)
	if err != nil {
		return 0, err
	}
	for _, code := range codes {
		if err := rs.DeleteTable(ctx, code); err != nil {
			return 0, fmt.Errorf("delete table %s: %w", code, err)
		}
	}
	return len(codes), nil
}

// Ping 检查 Redis 连接
func (rs *RedisStore) Ping(ctx context.Context) error {
	return rs.client.Ping(ctx).Err()
}
