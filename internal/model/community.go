package model

import "time"

type Community struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:64;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	OwnerID     uint64    `gorm:"not null;index" json:"owner_id"`
	Owner       *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// Membership existence is the single source of truth for "is member".
type Membership struct {
	UserID      uint64    `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	CommunityID uint64    `gorm:"primaryKey;autoIncrement:false" json:"community_id"`
	CreatedAt   time.Time `json:"created_at"`
}
