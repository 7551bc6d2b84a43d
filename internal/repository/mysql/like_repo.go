package mysql

import (
	"errors"

	"gorm.io/gorm"

	"campushub/internal/model"
)

type LikeRepository struct {
	DB *gorm.DB
}

// Like records the like and reports whether it is new. Liking an already
// liked post is a no-op rather than an error.
func (r *LikeRepository) Like(userID, postID uint64) (bool, error) {
	err := r.DB.Create(&model.Like{UserID: userID, PostID: postID}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *LikeRepository) Unlike(userID, postID uint64) (bool, error) {
	res := r.DB.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&model.Like{})
	return res.RowsAffected > 0, res.Error
}

func (r *LikeRepository) IsLiked(userID, postID uint64) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).Count(&count).Error
	return count > 0, err
}

func (r *LikeRepository) Count(postID uint64) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Like{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}
