package mysql

import (
	"gorm.io/gorm"

	"campushub/internal/model"
)

type EventRepository struct {
	DB *gorm.DB
}

func (r *EventRepository) Create(event *model.Event) error {
	return r.DB.Create(event).Error
}

func (r *EventRepository) FindByID(id uint64) (*model.Event, error) {
	var event model.Event
	if err := r.DB.First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) List(skip, limit int) ([]model.Event, error) {
	events := make([]model.Event, 0)
	err := r.DB.Order("id DESC").Offset(skip).Limit(limit).Find(&events).Error
	return events, err
}

func (r *EventRepository) Delete(id uint64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Event{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
