package model

import "time"

// Comment hangs off exactly one of Post or Event; the dual nullable parent
// columns are not mutually exclusive at the schema level, so writes must
// check. ReplyToCommentID points at another comment on the same parent.
type Comment struct {
	ID               uint64    `gorm:"primaryKey" json:"id"`
	Content          string    `gorm:"type:text;not null" json:"content"`
	CreatedAt        time.Time `json:"created_at"`
	UserID           uint64    `gorm:"not null;index" json:"user_id"`
	User             *User     `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	PostID           *uint64   `gorm:"index" json:"post_id"`
	Post             *Post     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	EventID          *uint64   `gorm:"index" json:"event_id"`
	Event            *Event    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ReplyToCommentID *uint64   `gorm:"index" json:"reply_to_comment_id"`
}
