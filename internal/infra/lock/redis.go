package lock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
)

const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`

const extendScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`

// RedisLocker is a Locker shared by every instance pointed at the same Redis.
// The TTL bounds how long a crashed holder can block others. A live holder
// extends it every ttl/3 until release.
type RedisLocker struct {
	client *redis.Client
	script *redis.Script
	ttl    time.Duration
	retry  time.Duration
	prefix string

	extend func(ctx context.Context, key, token string) error
}

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	l := &RedisLocker{
		client: client,
		script: redis.NewScript(releaseScript),
		ttl:    ttl,
		retry:  50 * time.Millisecond,
		prefix: "lock:",
	}
	extender := redis.NewScript(extendScript)
	l.extend = func(ctx context.Context, key, token string) error {
		return extender.Run(ctx, l.client, []string{l.prefix + key}, token, l.ttl.Milliseconds()).Err()
	}
	return l
}

// keepAlive extends the lock until stop is closed.
func (l *RedisLocker) keepAlive(key, token string, stop <-chan struct{}) {
	interval := l.ttl / 3
	if interval <= 0 {
		interval = time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			_ = l.extend(ctx, key, token)
			cancel()
		}
	}
}

func (l *RedisLocker) TryLock(ctx context.Context, key string) (string, bool, error) {
	if l == nil || l.client == nil {
		return "", false, errors.New("lock client not configured")
	}
	if key == "" {
		return "", false, errors.New("lock key is empty")
	}

	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.prefix+key, token, l.ttl).Result()
	if err != nil {
		return "", false, err
	}
	return token, ok, nil
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()

	for {
		token, ok, err := l.TryLock(ctx, key)
		if err != nil {
			return nil, err
		}
		if ok {
			stop := make(chan struct{})
			go l.keepAlive(key, token, stop)

			var once sync.Once
			return func() {
				once.Do(func() {
					close(stop)
					// release with a fresh context so a cancelled request still frees the key
					ctx, cancel := context.WithTimeout(context.Background(), time.Second)
					defer cancel()
					_ = l.script.Run(ctx, l.client, []string{l.prefix + key}, token).Err()
				})
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
