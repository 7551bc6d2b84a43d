package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	likeSetPrefix   = "post:likes:"
	likeCountPrefix = "post:likecount:"

	likeCountTTL = 5 * time.Minute
)

// LikeCacheRepository fronts the likes table: membership lives in a set per
// post, the count in a short-lived string. All operations are best-effort;
// a nil Client means every lookup is a miss and every write a no-op.
type LikeCacheRepository struct{}

func (r *LikeCacheRepository) AddLike(ctx context.Context, postID, userID uint64) error {
	if Client == nil {
		return nil
	}
	pipe := Client.TxPipeline()
	pipe.SAdd(ctx, likeSetKey(postID), userID)
	pipe.Del(ctx, likeCountKey(postID))
	_, err := pipe.Exec(ctx)
	return err
}

func (r *LikeCacheRepository) RemoveLike(ctx context.Context, postID, userID uint64) error {
	if Client == nil {
		return nil
	}
	pipe := Client.TxPipeline()
	pipe.SRem(ctx, likeSetKey(postID), userID)
	pipe.Del(ctx, likeCountKey(postID))
	_, err := pipe.Exec(ctx)
	return err
}

// IsLikedCached reports (liked, hit). A missing set is a miss, not "not
// liked": the set only exists once something has been cached for the post.
func (r *LikeCacheRepository) IsLikedCached(ctx context.Context, postID, userID uint64) (bool, bool, error) {
	if Client == nil {
		return false, false, nil
	}
	exists, err := Client.Exists(ctx, likeSetKey(postID)).Result()
	if err != nil || exists == 0 {
		return false, false, err
	}
	liked, err := Client.SIsMember(ctx, likeSetKey(postID), userID).Result()
	return liked, err == nil, err
}

func (r *LikeCacheRepository) GetCountCached(ctx context.Context, postID uint64) (int64, bool, error) {
	if Client == nil {
		return 0, false, nil
	}
	n, err := Client.Get(ctx, likeCountKey(postID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

func (r *LikeCacheRepository) SetCount(ctx context.Context, postID uint64, count int64) error {
	if Client == nil {
		return nil
	}
	return Client.Set(ctx, likeCountKey(postID), count, likeCountTTL).Err()
}

func (r *LikeCacheRepository) InvalidateCount(ctx context.Context, postID uint64) error {
	if Client == nil {
		return nil
	}
	return Client.Del(ctx, likeCountKey(postID)).Err()
}

func likeSetKey(postID uint64) string {
	return fmt.Sprintf("%s%d", likeSetPrefix, postID)
}

func likeCountKey(postID uint64) string {
	return fmt.Sprintf("%s%d", likeCountPrefix, postID)
}
