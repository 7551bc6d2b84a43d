package mysql

import (
	"gorm.io/gorm"

	"campushub/internal/model"
)

type MembershipRepository struct {
	DB *gorm.DB
}

// Join inserts the membership row as-is. A second join for the same pair
// hits the composite primary key and comes back as gorm.ErrDuplicatedKey.
func (r *MembershipRepository) Join(userID, communityID uint64) error {
	return r.DB.Create(&model.Membership{UserID: userID, CommunityID: communityID}).Error
}

func (r *MembershipRepository) Leave(userID, communityID uint64) (bool, error) {
	res := r.DB.Where("user_id = ? AND community_id = ?", userID, communityID).
		Delete(&model.Membership{})
	return res.RowsAffected > 0, res.Error
}

func (r *MembershipRepository) IsMember(userID, communityID uint64) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Membership{}).
		Where("user_id = ? AND community_id = ?", userID, communityID).
		Count(&count).Error
	return count > 0, err
}
