package cache

import (
	"context"
	"testing"
	"time"

	"career-advisor/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type payload struct {
	Score float64  `json:"score"`
	Tags  []string `json:"tags"`
}

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisWithClient(client, time.Minute, zap.NewNop()), mr
}

func TestRedis_SetGetJSON(t *testing.T) {
	r, mr := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, r.SetJSON(ctx, "resume:1", payload{Score: 6.2, Tags: []string{"a"}}, 0))

	var got payload
	ok, err := r.GetJSON(ctx, "resume:1", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, payload{Score: 6.2, Tags: []string{"a"}}, got)
	assert.Equal(t, time.Minute, mr.TTL("resume:1"))
}

func TestRedis_GetJSON_Miss(t *testing.T) {
	r, _ := newTestRedis(t)

	var got payload
	ok, err := r.GetJSON(context.Background(), "missing", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedis_Expiry(t *testing.T) {
	r, mr := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, r.SetJSON(ctx, "k", payload{}, time.Second))
	mr.FastForward(2 * time.Second)

	ok, err := r.GetJSON(ctx, "k", &payload{})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedis_DeleteByPattern(t *testing.T) {
	r, mr := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, r.SetJSON(ctx, "resume:a", 1, 0))
	require.NoError(t, r.SetJSON(ctx, "resume:b", 2, 0))
	require.NoError(t, r.SetJSON(ctx, "other", 3, 0))

	require.NoError(t, r.DeleteByPattern(ctx, "resume:*"))
	assert.False(t, mr.Exists("resume:a"))
	assert.False(t, mr.Exists("resume:b"))
	assert.True(t, mr.Exists("other"))

	require.NoError(t, r.Delete(ctx, "other"))
	assert.False(t, mr.Exists("other"))
}

func TestRedis_ServerGoneReturnsError(t *testing.T) {
	r, mr := newTestRedis(t)
	mr.Close()

	_, err := r.GetJSON(context.Background(), "k", &payload{})
	assert.Error(t, err)
}

func TestNewRedis_UnavailableBypasses(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	host, port := splitAddr(t, addr)
	r := NewRedis(config.RedisConfig{Host: host, Port: port, TTL: time.Minute}, zap.NewNop())

	assert.False(t, r.Available())
	ok, err := r.GetJSON(context.Background(), "k", &payload{})
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, r.SetJSON(context.Background(), "k", payload{}, 0))
	assert.Error(t, r.Ping(context.Background()))
}

func TestNilRedisIsNoop(t *testing.T) {
	var r *Redis
	ok, err := r.GetJSON(context.Background(), "k", &payload{})
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, r.Delete(context.Background(), "k"))
	assert.NoError(t, r.Close())
}

func TestKey(t *testing.T) {
	a := Key("resume", "Data Analyst", "My resume")
	b := Key("resume", " data analyst ", "my RESUME\n")
	c := Key("resume", "Data Analyst", "My  resume")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, len("resume:")+64)
	assert.NotEqual(t, Key("p", "ab", "c"), Key("p", "a", "bc"))
}

func splitAddr(t *testing.T, addr string) (string, string) {
	t.Helper()
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[:i], addr[i+1:]
		}
	}
	t.Fatalf("bad addr %q", addr)
	return "", ""
}
