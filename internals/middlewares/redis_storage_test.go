package middlewares

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStorage(t *testing.T) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s := NewRedisStorage(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestRedisStorageRoundTrip(t *testing.T) {
	s, mr := newTestRedisStorage(t)

	got, err := s.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Set("10.0.0.1", []byte("3"), time.Minute))
	assert.True(t, mr.Exists(redisKeyPrefix+"10.0.0.1"))

	got, err = s.Get("10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), got)

	mr.FastForward(2 * time.Minute)
	got, err = s.Get("10.0.0.1")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Set("", []byte("x"), 0))
	require.NoError(t, s.Set("k", nil, 0))
	assert.False(t, mr.Exists(redisKeyPrefix+"k"))
}

func TestRedisStorageResetKeepsForeignKeys(t *testing.T) {
	s, mr := newTestRedisStorage(t)

	require.NoError(t, mr.Set("session:abc", "keep"))
	require.NoError(t, s.Set("a", []byte("1"), 0))
	require.NoError(t, s.Set("b", []byte("2"), 0))
	require.NoError(t, s.Delete("a"))
	assert.False(t, mr.Exists(redisKeyPrefix+"a"))

	require.NoError(t, s.Reset())
	assert.False(t, mr.Exists(redisKeyPrefix+"b"))
	assert.True(t, mr.Exists("session:abc"))
}

func TestNewRedisStorageFromURL(t *testing.T) {
	mr := miniredis.RunT(t)
	s, err := NewRedisStorageFromURL("redis://" + mr.Addr() + "/0")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = NewRedisStorageFromURL("not a url")
	assert.Error(t, err)
}

func TestLimiterSharesRedisCounters(t *testing.T) {
	s, _ := newTestRedisStorage(t)
	UseLimiterStorage(s)
	t.Cleanup(func() { UseLimiterStorage(nil) })

	app := fiber.New()
	app.Post("/contact", newLimiter(2, time.Minute, "slow down"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/contact", nil))
		require.NoError(t, err)
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, []int{200, 200, fiber.StatusTooManyRequests}, codes)
}
