package logger

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLoggerHook 记录失败与慢命令, 只记录 key 不记录缓存值
type RedisLoggerHook struct {
	SlowThreshold time.Duration
}

func NewRedisLogger() *RedisLoggerHook {
	return &RedisLoggerHook{SlowThreshold: 100 * time.Millisecond}
}

func (s *RedisLoggerHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := next(ctx, network, addr)
		if err != nil {
			log.ErrorContext(ctx, "redis dial failed", "addr", addr, "err", err)
		}
		return conn, err
	}
}

func (s *RedisLoggerHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		elapsed := time.Since(start)

		switch {
		case err != nil && !quietRedisError(cmd, err):
			log.ErrorContext(ctx, "redis command failed",
				"command", cmd.Name(), "key", commandKey(cmd), "latency", elapsed, "err", err)
		case err == nil && elapsed > s.SlowThreshold:
			log.WarnContext(ctx, "redis command slow",
				"command", cmd.Name(), "key", commandKey(cmd), "latency", elapsed)
		}
		return err
	}
}

func (s *RedisLoggerHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		elapsed := time.Since(start)

		if err != nil && !errors.Is(err, redis.Nil) {
			log.ErrorContext(ctx, "redis pipeline failed", "cmd_count", len(cmds), "latency", elapsed, "err", err)
		} else if elapsed > s.SlowThreshold {
			log.WarnContext(ctx, "redis pipeline slow", "cmd_count", len(cmds), "latency", elapsed)
		}
		return err
	}
}

// quietRedisError 缓存未命中与旧版本 redis 不支持 CLIENT SETINFO 不算错误
func quietRedisError(cmd redis.Cmder, err error) bool {
	if errors.Is(err, redis.Nil) {
		return true
	}
	return cmd.Name() == "client" && strings.Contains(strings.ToLower(err.Error()), "setinfo")
}

// commandKey 取命令操作的 key; 连接类命令不输出参数
func commandKey(cmd redis.Cmder) string {
	args := cmd.Args()
	switch cmd.Name() {
	case "auth", "hello", "client", "ping":
		return ""
	case "eval", "evalsha", "eval_ro", "evalsha_ro":
		// eval script numkeys key ...
		if len(args) > 3 {
			return fmt.Sprint(args[3])
		}
		return ""
	}
	if len(args) > 1 {
		return fmt.Sprint(args[1])
	}
	return ""
}
