package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryThrottle(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	th := NewMemoryThrottle(ThrottlePolicy{MaxFailures: 3, Window: time.Minute, Lockout: 5 * time.Minute})
	th.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		require.NoError(t, th.Fail(ctx, "a"))
	}
	locked, _ := th.Locked(ctx, "a")
	assert.False(t, locked)

	require.NoError(t, th.Fail(ctx, "a"))
	locked, _ = th.Locked(ctx, "a")
	assert.True(t, locked)

	other, _ := th.Locked(ctx, "b")
	assert.False(t, other)

	now = now.Add(6 * time.Minute)
	locked, _ = th.Locked(ctx, "a")
	assert.False(t, locked, "lock expires")

	t.Run("window resets count", func(t *testing.T) {
		require.NoError(t, th.Fail(ctx, "c"))
		require.NoError(t, th.Fail(ctx, "c"))
		now = now.Add(2 * time.Minute)
		require.NoError(t, th.Fail(ctx, "c"))
		locked, _ := th.Locked(ctx, "c")
		assert.False(t, locked)
	})

	t.Run("reset clears lock", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			require.NoError(t, th.Fail(ctx, "d"))
		}
		require.NoError(t, th.Reset(ctx, "d"))
		locked, _ := th.Locked(ctx, "d")
		assert.False(t, locked)
	})
}

func TestOpenRedisThrottleBadURL(t *testing.T) {
	_, err := OpenRedisThrottle(context.Background(), "", ThrottlePolicy{})
	assert.Error(t, err)

	_, err = OpenRedisThrottle(context.Background(), "not-a-redis-url", ThrottlePolicy{})
	assert.Error(t, err)
}
