package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"snsproject/internal/observability"

	"github.com/redis/go-redis/v9"
)

const (
	LikeCountKeyPrefix        = "post:%d:like_count:v%d"
	LikeCountVersionKeyPrefix = "post:%d:like_count_version"
)

const LikeCountTTL = 5 * time.Minute

// LikeCountVersionTTL must outlive LikeCountTTL so a version that expires
// and restarts from zero never meets a live entry from its previous run.
const LikeCountVersionTTL = 24 * time.Hour

func LikeCountKey(postID uint, version int64) string {
	return fmt.Sprintf(LikeCountKeyPrefix, postID, version)
}

func LikeCountVersionKey(postID uint) string {
	return fmt.Sprintf(LikeCountVersionKeyPrefix, postID)
}

// Aside implements cache-aside for JSON values: a hit decodes into dest,
// a miss runs fetch (which must fill dest) and stores the result for ttl.
// Cache failures degrade to calling fetch; only fetch errors are returned.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	if client == nil {
		return fetch()
	}

	raw, err := client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal(raw, dest); jsonErr == nil {
			return nil
		}
		observability.Logger.WarnContext(ctx, "dropping undecodable cache entry", "key", key)
		client.Del(ctx, key)
	case !errors.Is(err, redis.Nil):
		observability.Logger.WarnContext(ctx, "cache read failed", "key", key, "error", err)
	}

	if err := fetch(); err != nil {
		return err
	}

	payload, err := json.Marshal(dest)
	if err != nil {
		return nil
	}
	if err := client.Set(ctx, key, payload, ttl).Err(); err != nil {
		observability.Logger.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}
	return nil
}

// AsideLikeCount caches a post's like count under the post's current
// version. The version is read before fetch runs, so a count computed
// before a concurrent InvalidateLikeCount lands under a retired key.
// A failed version read bypasses the cache.
func AsideLikeCount(ctx context.Context, postID uint, dest *int64, fetch func() error) error {
	if client == nil {
		return fetch()
	}

	version, err := client.Get(ctx, LikeCountVersionKey(postID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		observability.Logger.WarnContext(ctx, "like count version read failed", "post_id", postID, "error", err)
		return fetch()
	}
	return Aside(ctx, LikeCountKey(postID, version), dest, LikeCountTTL, fetch)
}

// InvalidateLikeCount retires every cached count of the post by bumping its version.
func InvalidateLikeCount(ctx context.Context, postID uint) {
	if client == nil {
		return
	}

	key := LikeCountVersionKey(postID)
	_, err := client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, LikeCountVersionTTL)
		return nil
	})
	if err != nil {
		observability.Logger.WarnContext(ctx, "like count invalidation failed", "post_id", postID, "error", err)
	}
}
