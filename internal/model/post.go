package model

import "time"

type Post struct {
	ID          uint64     `gorm:"primaryKey" json:"id"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	PostImage   *string    `gorm:"size:512" json:"post_image"`
	CreatedAt   time.Time  `json:"created_at"`
	OwnerID     uint64     `gorm:"not null;index" json:"owner_id"`
	Owner       *User      `gorm:"constraint:OnDelete:CASCADE" json:"owner,omitempty"`
	CommunityID *uint64    `gorm:"index" json:"community_id"`
	Community   *Community `gorm:"constraint:OnDelete:SET NULL" json:"community,omitempty"`
}
