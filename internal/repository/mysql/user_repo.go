package mysql

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"campushub/internal/model"
)

type UserRepository struct {
	DB *gorm.DB
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint64) (*model.User, error) {
	var user model.User
	if err := r.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.DB.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByLogin accepts either a username or an email address.
func (r *UserRepository) FindByLogin(login string) (*model.User, error) {
	var user model.User
	if err := r.DB.Where("username = ? OR email = ?", login, login).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) SearchByUsername(name string, skip, limit int) ([]model.User, error) {
	users := make([]model.User, 0)
	pattern := "%" + strings.ToLower(name) + "%"
	err := r.DB.Where("LOWER(username) LIKE ?", pattern).
		Order("id").Offset(skip).Limit(limit).Find(&users).Error
	return users, err
}

func (r *UserRepository) UpdatePassword(id uint64, hashed string) error {
	return r.DB.Model(&model.User{}).Where("id = ?", id).Update("password", hashed).Error
}

func (r *UserRepository) UpdateProfileImage(id uint64, url *string) error {
	return r.DB.Model(&model.User{}).Where("id = ?", id).Update("profile_image", url).Error
}

// Delete removes the user and everything hanging off them. The deletes run
// in one transaction in dependency order: rows attached to the user's posts
// first, then the user's own rows, then the posts, then the user.
func (r *UserRepository) Delete(id uint64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var postIDs []uint64
		if err := tx.Model(&model.Post{}).Where("owner_id = ?", id).Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&model.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&model.Like{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Membership{}).Error; err != nil {
			return err
		}
		// Owned communities go with the owner. Their surviving posts are
		// detached rather than deleted; they belong to other users.
		var communityIDs []uint64
		if err := tx.Model(&model.Community{}).Where("owner_id = ?", id).Pluck("id", &communityIDs).Error; err != nil {
			return err
		}
		if len(communityIDs) > 0 {
			if err := tx.Model(&model.Post{}).Where("community_id IN ?", communityIDs).
				Update("community_id", nil).Error; err != nil {
				return err
			}
			if err := tx.Where("community_id IN ?", communityIDs).Delete(&model.Membership{}).Error; err != nil {
				return err
			}
			if err := tx.Where("owner_id = ?", id).Delete(&model.Community{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("owner_id = ?", id).Delete(&model.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Where("owner_id = ?", id).Delete(&model.Announcement{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
