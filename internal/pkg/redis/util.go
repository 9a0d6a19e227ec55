package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const unlockScript = "if redis.call('get', KEYS[1]) == ARGV[1] then return redis.call('del', KEYS[1]) else return 0 end"

// Store 包装可能为 nil 的 client, 未启用 Redis 时所有方法均为空操作
type Store struct {
	rdb        *redis.Client
	retryDelay time.Duration
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb, retryDelay: 200 * time.Millisecond}
}

func (s *Store) Enabled() bool {
	return s != nil && s.rdb != nil
}

// SetWithExpiration 设置键值对并设置过期时间
func (s *Store) SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if !s.Enabled() {
		return nil
	}
	return s.rdb.Set(ctx, key, value, expiration).Err()
}

// GetValue 获取字符串类型的值, 不存在时返回空串
func (s *Store) GetValue(ctx context.Context, key string) (string, error) {
	if !s.Enabled() {
		return "", nil
	}
	value, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// TryLock SETNX 加锁, retryTimes 为 -1 时一直重试直到 ctx 结束
func (s *Store) TryLock(ctx context.Context, key string, value interface{}, expiration time.Duration, retryTimes int) (bool, error) {
	if !s.Enabled() {
		return true, nil
	}
	for i := 0; i < retryTimes || retryTimes == -1; i++ {
		success, err := s.rdb.SetNX(ctx, key, value, expiration).Result()
		if err != nil {
			return false, err
		}
		if success {
			return true, nil
		}
		if i+1 == retryTimes {
			break
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(s.retryDelay):
		}
	}
	return false, nil
}

// UnLock 仅当锁仍由 value 持有时释放
func (s *Store) UnLock(ctx context.Context, key string, value interface{}) {
	if !s.Enabled() {
		return
	}
	s.rdb.Eval(ctx, unlockScript, []string{key}, value)
}
