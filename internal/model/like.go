package model

// Like presence is the like; there is no count column anywhere.
type Like struct {
	UserID uint64 `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	PostID uint64 `gorm:"primaryKey;autoIncrement:false" json:"post_id"`
	User   *User  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Post   *Post  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
