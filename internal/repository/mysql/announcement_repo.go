package mysql

import (
	"gorm.io/gorm"

	"campushub/internal/model"
)

type AnnouncementRepository struct {
	DB *gorm.DB
}

func (r *AnnouncementRepository) Create(announcement *model.Announcement) error {
	return r.DB.Create(announcement).Error
}

func (r *AnnouncementRepository) FindByID(id uint64) (*model.Announcement, error) {
	var announcement model.Announcement
	if err := r.DB.Preload("Owner").First(&announcement, id).Error; err != nil {
		return nil, err
	}
	return &announcement, nil
}

func (r *AnnouncementRepository) List(skip, limit int) ([]model.Announcement, error) {
	announcements := make([]model.Announcement, 0)
	err := r.DB.Preload("Owner").Order("id DESC").Offset(skip).Limit(limit).Find(&announcements).Error
	return announcements, err
}

func (r *AnnouncementRepository) Update(announcement *model.Announcement) error {
	return r.DB.Save(announcement).Error
}
