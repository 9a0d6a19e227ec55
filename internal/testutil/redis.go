package testutil

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"
)

// FakeRedis answers the commands used by redis.Store from memory, without a server
type FakeRedis struct {
	mu   sync.Mutex
	data map[string]string
	err  error
}

// Redis returns a client whose commands never leave the process
func Redis(tb testing.TB) (*FakeRedis, *goredis.Client) {
	tb.Helper()

	fake := &FakeRedis{data: make(map[string]string)}
	rdb := goredis.NewClient(&goredis.Options{
		Addr: "fake.redis:6379",
		MaintNotificationsConfig: &maintnotifications.Config{
			Mode: maintnotifications.ModeDisabled,
		},
	})
	rdb.AddHook(fake)
	tb.Cleanup(func() { _ = rdb.Close() })
	return fake, rdb
}

func (f *FakeRedis) Set(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
}

func (f *FakeRedis) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok
}

func (f *FakeRedis) Del(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
}

func (f *FakeRedis) Keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.data))
	for k := range f.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SetError makes every following command fail with err; nil restores normal replies
func (f *FakeRedis) SetError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *FakeRedis) DialHook(next goredis.DialHook) goredis.DialHook {
	return next
}

func (f *FakeRedis) ProcessPipelineHook(next goredis.ProcessPipelineHook) goredis.ProcessPipelineHook {
	return next
}

func (f *FakeRedis) ProcessHook(_ goredis.ProcessHook) goredis.ProcessHook {
	return func(_ context.Context, cmd goredis.Cmder) error {
		f.mu.Lock()
		defer f.mu.Unlock()

		if f.err != nil {
			cmd.SetErr(f.err)
			return f.err
		}

		args := cmd.Args()
		switch cmd.Name() {
		case "set":
			key, value := argString(args[1]), argString(args[2])
			nx := false
			for _, a := range args[3:] {
				if s, ok := a.(string); ok && strings.EqualFold(s, "nx") {
					nx = true
				}
			}
			_, exists := f.data[key]
			if nx {
				if !exists {
					f.data[key] = value
				}
				if c, ok := cmd.(*goredis.BoolCmd); ok {
					c.SetVal(!exists)
				}
				return nil
			}
			f.data[key] = value
			if c, ok := cmd.(*goredis.StatusCmd); ok {
				c.SetVal("OK")
			}
		case "get":
			v, ok := f.data[argString(args[1])]
			if !ok {
				cmd.SetErr(goredis.Nil)
				return goredis.Nil
			}
			cmd.(*goredis.StringCmd).SetVal(v)
		case "del":
			var n int64
			for _, a := range args[1:] {
				if _, ok := f.data[argString(a)]; ok {
					delete(f.data, argString(a))
					n++
				}
			}
			cmd.(*goredis.IntCmd).SetVal(n)
		case "eval":
			// 只支持解锁脚本: eval script 1 key token
			var n int64
			if len(args) > 4 {
				key := argString(args[3])
				if v, ok := f.data[key]; ok && v == argString(args[4]) {
					delete(f.data, key)
					n = 1
				}
			}
			cmd.(*goredis.Cmd).SetVal(n)
		default:
			err := fmt.Errorf("fake redis: unsupported command %q", cmd.Name())
			cmd.SetErr(err)
			return err
		}
		return nil
	}
}

func argString(a interface{}) string {
	switch v := a.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}
