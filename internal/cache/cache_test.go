package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(Close)
	return mr
}

func TestLikeCountKey(t *testing.T) {
	assert.Equal(t, "post:42:like_count:v3", LikeCountKey(42, 3))
	assert.Equal(t, "post:42:like_count_version", LikeCountVersionKey(42))
}

func TestAside_MissThenHit(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()
	calls := 0

	var count int64
	err := Aside(ctx, LikeCountKey(1, 0), &count, LikeCountTTL, func() error {
		calls++
		count = 3
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.True(t, mr.Exists(LikeCountKey(1, 0)))
	assert.Equal(t, LikeCountTTL, mr.TTL(LikeCountKey(1, 0)))

	var cached int64
	err = Aside(ctx, LikeCountKey(1, 0), &cached, LikeCountTTL, func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), cached)
	assert.Equal(t, 1, calls, "second read must be served from cache")
}

func TestAside_FetchErrorIsNotCached(t *testing.T) {
	mr := setupMiniredis(t)
	boom := errors.New("boom")

	var count int64
	err := Aside(context.Background(), LikeCountKey(2, 0), &count, LikeCountTTL, func() error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists(LikeCountKey(2, 0)))
}

func TestAside_CorruptEntryIsRefetched(t *testing.T) {
	mr := setupMiniredis(t)
	require.NoError(t, mr.Set(LikeCountKey(3, 0), "not-json"))

	var count int64
	err := Aside(context.Background(), LikeCountKey(3, 0), &count, LikeCountTTL, func() error {
		count = 7
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)

	got, err := mr.Get(LikeCountKey(3, 0))
	require.NoError(t, err)
	assert.Equal(t, "7", got)
}

func TestAside_WithoutClient(t *testing.T) {
	SetClient(nil)

	var count int64
	err := Aside(context.Background(), LikeCountKey(4, 0), &count, LikeCountTTL, func() error {
		count = 1
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.NotPanics(t, func() { InvalidateLikeCount(context.Background(), 4) })
}

func TestAside_RedisDownFallsBackToFetch(t *testing.T) {
	mr := setupMiniredis(t)
	mr.Close()

	var count int64
	err := Aside(context.Background(), LikeCountKey(5, 0), &count, LikeCountTTL, func() error {
		count = 9
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), count)
}

func TestInvalidateLikeCount(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	InvalidateLikeCount(ctx, 6)
	InvalidateLikeCount(ctx, 6)

	version, err := mr.Get(LikeCountVersionKey(6))
	require.NoError(t, err)
	assert.Equal(t, "2", version)
	assert.Equal(t, LikeCountVersionTTL, mr.TTL(LikeCountVersionKey(6)))
}

func TestAsideLikeCount_FollowsVersion(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()
	fetched := int64(4)
	fetch := func(dest *int64) func() error {
		return func() error {
			*dest = fetched
			return nil
		}
	}

	var count int64
	require.NoError(t, AsideLikeCount(ctx, 7, &count, fetch(&count)))
	assert.Equal(t, int64(4), count)
	assert.True(t, mr.Exists(LikeCountKey(7, 0)))

	fetched = 5
	require.NoError(t, AsideLikeCount(ctx, 7, &count, fetch(&count)))
	assert.Equal(t, int64(4), count, "same version is served from cache")

	InvalidateLikeCount(ctx, 7)
	require.NoError(t, AsideLikeCount(ctx, 7, &count, fetch(&count)))
	assert.Equal(t, int64(5), count)
	assert.True(t, mr.Exists(LikeCountKey(7, 1)))
}

func TestAsideLikeCount_InvalidatedDuringFetch(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()
	likes := int64(0)

	var count int64
	err := AsideLikeCount(ctx, 8, &count, func() error {
		count = likes
		likes = 1
		InvalidateLikeCount(ctx, 8)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	err = AsideLikeCount(ctx, 8, &count, func() error {
		count = likes
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "a count read before invalidation must not be served afterwards")
}

func TestAsideLikeCount_WithoutClient(t *testing.T) {
	Close()
	var count int64
	require.NoError(t, AsideLikeCount(context.Background(), 9, &count, func() error {
		count = 2
		return nil
	}))
	assert.Equal(t, int64(2), count)
	InvalidateLikeCount(context.Background(), 9)
}

func TestInitRedis_Unreachable(t *testing.T) {
	t.Cleanup(Close)
	InitRedis("127.0.0.1:1")
	assert.Nil(t, GetClient())

	InitRedis("")
	assert.Nil(t, GetClient())
}

func TestInitRedis_URL(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Cleanup(Close)

	InitRedis("redis://" + mr.Addr() + "/0")
	require.NotNil(t, GetClient())
	assert.NoError(t, GetClient().Ping(context.Background()).Err())
}
