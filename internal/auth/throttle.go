package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Throttle counts failed logins per account and locks accounts that fail too often.
type Throttle interface {
	Locked(ctx context.Context, key string) (bool, error)
	Fail(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

type nopThrottle struct{}

func (nopThrottle) Locked(context.Context, string) (bool, error) { return false, nil }
func (nopThrottle) Fail(context.Context, string) error           { return nil }
func (nopThrottle) Reset(context.Context, string) error          { return nil }

type ThrottlePolicy struct {
	MaxFailures int           // lock after this many failures
	Window      time.Duration // failures older than this are forgotten
	Lockout     time.Duration
}

func (p ThrottlePolicy) withDefaults() ThrottlePolicy {
	if p.MaxFailures <= 0 {
		p.MaxFailures = 5
	}
	if p.Window <= 0 {
		p.Window = 15 * time.Minute
	}
	if p.Lockout <= 0 {
		p.Lockout = 15 * time.Minute
	}
	return p
}

type failures struct {
	count       int
	first       time.Time
	lockedUntil time.Time
}

// MemoryThrottle keeps counters in process memory.
type MemoryThrottle struct {
	mu     sync.Mutex
	policy ThrottlePolicy
	seen   map[string]*failures
	now    func() time.Time
}

func NewMemoryThrottle(p ThrottlePolicy) *MemoryThrottle {
	return &MemoryThrottle{policy: p.withDefaults(), seen: map[string]*failures{}, now: time.Now}
}

func (m *MemoryThrottle) Locked(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.seen[key]
	return ok && m.now().Before(f.lockedUntil), nil
}

func (m *MemoryThrottle) Fail(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	f, ok := m.seen[key]
	if !ok || now.Sub(f.first) > m.policy.Window {
		f = &failures{first: now, lockedUntil: timeOrZero(f)}
		m.seen[key] = f
	}
	f.count++
	if f.count >= m.policy.MaxFailures {
		f.lockedUntil = now.Add(m.policy.Lockout)
		f.count = 0
		f.first = now
	}
	// drop expired entries while we hold the lock
	for k, v := range m.seen {
		if k != key && now.After(v.lockedUntil) && now.Sub(v.first) > m.policy.Window {
			delete(m.seen, k)
		}
	}
	return nil
}

func (m *MemoryThrottle) Reset(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.seen, key)
	m.mu.Unlock()
	return nil
}

func timeOrZero(f *failures) time.Time {
	if f == nil {
		return time.Time{}
	}
	return f.lockedUntil
}

// RedisThrottle shares counters between edge instances.
type RedisThrottle struct {
	client *redis.Client
	policy ThrottlePolicy
	prefix string
}

func NewRedisThrottle(client *redis.Client, p ThrottlePolicy) *RedisThrottle {
	return &RedisThrottle{client: client, policy: p.withDefaults(), prefix: "ypa:login:"}
}

// OpenRedisThrottle parses a redis:// URL and checks the connection.
func OpenRedisThrottle(ctx context.Context, url string, p ThrottlePolicy) (*RedisThrottle, error) {
	if url == "" {
		return nil, errors.New("redis URL is required")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return NewRedisThrottle(client, p), nil
}

func (t *RedisThrottle) Close() error { return t.client.Close() }

func (t *RedisThrottle) failKey(k string) string { return t.prefix + "fail:" + k }
func (t *RedisThrottle) lockKey(k string) string { return t.prefix + "lock:" + k }

func (t *RedisThrottle) Locked(ctx context.Context, key string) (bool, error) {
	n, err := t.client.Exists(ctx, t.lockKey(key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (t *RedisThrottle) Fail(ctx context.Context, key string) error {
	pipe := t.client.TxPipeline()
	incr := pipe.Incr(ctx, t.failKey(key))
	pipe.ExpireNX(ctx, t.failKey(key), t.policy.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	if incr.Val() < int64(t.policy.MaxFailures) {
		return nil
	}
	if err := t.client.Set(ctx, t.lockKey(key), "1", t.policy.Lockout).Err(); err != nil {
		return err
	}
	return t.client.Del(ctx, t.failKey(key)).Err()
}

func (t *RedisThrottle) Reset(ctx context.Context, key string) error {
	return t.client.Del(ctx, t.failKey(key), t.lockKey(key)).Err()
}
