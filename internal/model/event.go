package model

import "time"

type Event struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	EventDate   time.Time `gorm:"not null" json:"event_date"`
	Location    string    `gorm:"size:255" json:"location"`
	Image       *string   `gorm:"size:512" json:"image"`
	CreatedAt   time.Time `json:"created_at"`
}
