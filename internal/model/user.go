package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           uint64    `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:128;not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;size:128;not null" json:"email"`
	Username     string    `gorm:"uniqueIndex;size:32;not null" json:"username"`
	Password     string    `gorm:"size:255;not null" json:"-"`
	Bio          string    `gorm:"type:text" json:"bio"`
	ProfileImage *string   `gorm:"size:512" json:"profile_image"`
	Role         string    `gorm:"size:16;not null;default:user" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
