package model

import "time"

type Announcement struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	OwnerID   uint64    `gorm:"not null;index" json:"owner_id"`
	Owner     *User     `gorm:"constraint:OnDelete:CASCADE" json:"owner,omitempty"`
}
