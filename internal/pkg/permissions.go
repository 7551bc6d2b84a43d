package pkg

import "campushub/internal/model"

// Ownership is the default authorization basis for modifying content.
// ADMIN does not bypass ownership checks; endpoints that want a bypass
// compose IsAdmin explicitly.

func IsAdmin(u *model.User) bool {
	return u != nil && u.Role == model.RoleAdmin
}

func CanModifyAnnouncement(u *model.User, a *model.Announcement) bool {
	return u != nil && a != nil && u.ID == a.OwnerID
}

func CanModifyCommunity(u *model.User, c *model.Community) bool {
	return u != nil && c != nil && u.ID == c.OwnerID
}
