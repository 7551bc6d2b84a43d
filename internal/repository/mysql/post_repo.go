package mysql

import (
	"gorm.io/gorm"

	"campushub/internal/model"
)

type PostRepository struct {
	DB *gorm.DB
}

func (r *PostRepository) Create(post *model.Post) error {
	return r.DB.Create(post).Error
}

func (r *PostRepository) FindByID(id uint64) (*model.Post, error) {
	var post model.Post
	if err := r.DB.Preload("Owner").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// List returns posts newest first.
func (r *PostRepository) List(skip, limit int) ([]model.Post, error) {
	posts := make([]model.Post, 0)
	err := r.DB.Preload("Owner").Order("id DESC").Offset(skip).Limit(limit).Find(&posts).Error
	return posts, err
}

func (r *PostRepository) ListByCommunity(communityID uint64, skip, limit int) ([]model.Post, error) {
	posts := make([]model.Post, 0)
	err := r.DB.Preload("Owner").Where("community_id = ?", communityID).
		Order("id DESC").Offset(skip).Limit(limit).Find(&posts).Error
	return posts, err
}

func (r *PostRepository) FindByIDInCommunity(id, communityID uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.Preload("Owner").Where("id = ? AND community_id = ?", id, communityID).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostRepository) Delete(id uint64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
