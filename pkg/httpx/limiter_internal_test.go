package httpx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLimiterSet_RetryAfterAndSweep(t *testing.T) {
	set := newLimiterSet(RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute, Burst: 2})
	now := time.Unix(1_700_000_000, 0)
	set.lastSweep = now

	for range 2 {
		ok, _ := set.take("a", now)
		require.True(t, ok)
	}

	ok, wait := set.take("a", now)
	require.False(t, ok)
	require.InDelta(t, 30*time.Second, wait, float64(time.Second))

	// A refused request must not eat into the next token.
	ok, _ = set.take("a", now.Add(30*time.Second))
	require.True(t, ok)

	_, _ = set.take("b", now)
	require.Len(t, set.buckets, 2)

	later := now.Add(10 * time.Minute)
	_, _ = set.take("c", later)
	require.Len(t, set.buckets, 1, "idle buckets are swept")
	require.Contains(t, set.buckets, "c")
}
