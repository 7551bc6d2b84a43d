package service

import (
	"context"
	"log"

	"campushub/internal/pkg"
	"campushub/internal/repository/mysql"
	"campushub/internal/repository/redis"
)

// LikeService keeps the database authoritative and treats redis as a
// cache-aside layer; cache failures are logged and ignored.
type LikeService struct {
	LikeRepo *mysql.LikeRepository
	PostRepo *mysql.PostRepository
	Cache    *redis.LikeCacheRepository
}

func NewLikeService() *LikeService {
	return &LikeService{
		LikeRepo: &mysql.LikeRepository{DB: mysql.DB},
		PostRepo: &mysql.PostRepository{DB: mysql.DB},
		Cache:    &redis.LikeCacheRepository{},
	}
}

// Like records the like and reports whether it was new.
func (s *LikeService) Like(ctx context.Context, userID, postID uint64) (bool, error) {
	if _, err := s.PostRepo.FindByID(postID); err != nil {
		if mysql.IsNotFound(err) {
			return false, pkg.NotFound("post not found")
		}
		return false, err
	}
	changed, err := s.LikeRepo.Like(userID, postID)
	if err != nil {
		return false, err
	}
	if changed {
		if cerr := s.Cache.AddLike(ctx, postID, userID); cerr != nil {
			log.Printf("cache like post %d: %v", postID, cerr)
		}
	}
	return changed, nil
}

func (s *LikeService) Unlike(ctx context.Context, userID, postID uint64) (bool, error) {
	if _, err := s.PostRepo.FindByID(postID); err != nil {
		if mysql.IsNotFound(err) {
			return false, pkg.NotFound("post not found")
		}
		return false, err
	}
	changed, err := s.LikeRepo.Unlike(userID, postID)
	if err != nil {
		return false, err
	}
	if changed {
		if cerr := s.Cache.RemoveLike(ctx, postID, userID); cerr != nil {
			log.Printf("uncache like post %d: %v", postID, cerr)
		}
	}
	return changed, nil
}

func (s *LikeService) IsLiked(ctx context.Context, userID, postID uint64) (bool, error) {
	liked, hit, err := s.Cache.IsLikedCached(ctx, postID, userID)
	if err != nil {
		log.Printf("like cache lookup post %d: %v", postID, err)
	} else if hit {
		return liked, nil
	}
	return s.LikeRepo.IsLiked(userID, postID)
}

func (s *LikeService) Count(ctx context.Context, postID uint64) (int64, error) {
	if _, err := s.PostRepo.FindByID(postID); err != nil {
		if mysql.IsNotFound(err) {
			return 0, pkg.NotFound("post not found")
		}
		return 0, err
	}
	count, hit, err := s.Cache.GetCountCached(ctx, postID)
	if err != nil {
		log.Printf("like count cache post %d: %v", postID, err)
	} else if hit {
		return count, nil
	}
	count, err = s.LikeRepo.Count(postID)
	if err != nil {
		return 0, err
	}
	if cerr := s.Cache.SetCount(ctx, postID, count); cerr != nil {
		log.Printf("cache like count post %d: %v", postID, cerr)
	}
	return count, nil
}
