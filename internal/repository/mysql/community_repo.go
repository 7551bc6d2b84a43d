package mysql

import (
	"strings"

	"gorm.io/gorm"

	"campushub/internal/model"
)

type CommunityRepository struct {
	DB *gorm.DB
}

func (r *CommunityRepository) Create(community *model.Community) error {
	return r.DB.Create(community).Error
}

func (r *CommunityRepository) FindByID(id uint64) (*model.Community, error) {
	var community model.Community
	if err := r.DB.First(&community, id).Error; err != nil {
		return nil, err
	}
	return &community, nil
}

func (r *CommunityRepository) FindByName(name string) (*model.Community, error) {
	var community model.Community
	if err := r.DB.Where("name = ?", name).First(&community).Error; err != nil {
		return nil, err
	}
	return &community, nil
}

func (r *CommunityRepository) List(skip, limit int) ([]model.Community, error) {
	communities := make([]model.Community, 0)
	err := r.DB.Order("id").Offset(skip).Limit(limit).Find(&communities).Error
	return communities, err
}

func (r *CommunityRepository) SearchByName(name string, skip, limit int) ([]model.Community, error) {
	communities := make([]model.Community, 0)
	pattern := "%" + strings.ToLower(name) + "%"
	err := r.DB.Where("LOWER(name) LIKE ?", pattern).
		Order("id").Offset(skip).Limit(limit).Find(&communities).Error
	return communities, err
}

// ListByMember returns the communities a user has joined.
func (r *CommunityRepository) ListByMember(userID uint64, skip, limit int) ([]model.Community, error) {
	communities := make([]model.Community, 0)
	err := r.DB.Joins("JOIN memberships ON memberships.community_id = communities.id").
		Where("memberships.user_id = ?", userID).
		Order("communities.id").Offset(skip).Limit(limit).Find(&communities).Error
	return communities, err
}

func (r *CommunityRepository) Update(community *model.Community) error {
	return r.DB.Save(community).Error
}
