package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func TestNopNeverHits(t *testing.T) {
	var c BusySlots = Nop{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 1, "w", []window{{}}))
	var got []window
	hit, err := c.Get(ctx, 1, "w", &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.Invalidate(ctx, 1, 2))
}

func TestKey(t *testing.T) {
	assert.Equal(t, "equiptrack:busy:42", key(42))
}

// Runs only against a live server: REDIS_TEST_ADDR=localhost:6379.
func TestRedisRoundTripAndInvalidate(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	ctx := context.Background()
	client, err := Connect(ctx, addr, "", 15)
	require.NoError(t, err)
	defer client.Close()

	c := NewRedis(client, time.Minute)
	require.NoError(t, c.Invalidate(ctx, 7, 8))

	start := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	want := []window{{Start: start, End: start.Add(2 * time.Hour)}}
	require.NoError(t, c.Set(ctx, 7, "a", want))
	require.NoError(t, c.Set(ctx, 7, "b", want))
	require.NoError(t, c.Set(ctx, 8, "a", want))

	var got []window
	hit, err := c.Get(ctx, 7, "a", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.True(t, want[0].Start.Equal(got[0].Start))

	require.NoError(t, c.Invalidate(ctx, 7))
	hit, err = c.Get(ctx, 7, "b", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	hit, err = c.Get(ctx, 8, "a", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	require.NoError(t, c.Invalidate(ctx, 8))
}
