package mysql

import (
	"gorm.io/gorm"

	"campushub/internal/model"
)

type CommentRepository struct {
	DB *gorm.DB
}

func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.DB.Create(comment).Error
}

func (r *CommentRepository) FindByID(id uint64) (*model.Comment, error) {
	var comment model.Comment
	if err := r.DB.Preload("User").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListTopLevelByPost returns only comments with no reply target; replies
// are fetched per comment through ListReplies.
func (r *CommentRepository) ListTopLevelByPost(postID uint64, skip, limit int) ([]model.Comment, error) {
	comments := make([]model.Comment, 0)
	err := r.DB.Preload("User").
		Where("post_id = ? AND reply_to_comment_id IS NULL", postID).
		Order("id").Offset(skip).Limit(limit).Find(&comments).Error
	return comments, err
}

func (r *CommentRepository) ListTopLevelByEvent(eventID uint64, skip, limit int) ([]model.Comment, error) {
	comments := make([]model.Comment, 0)
	err := r.DB.Preload("User").
		Where("event_id = ? AND reply_to_comment_id IS NULL", eventID).
		Order("id").Offset(skip).Limit(limit).Find(&comments).Error
	return comments, err
}

func (r *CommentRepository) ListReplies(commentID uint64, skip, limit int) ([]model.Comment, error) {
	comments := make([]model.Comment, 0)
	err := r.DB.Preload("User").
		Where("reply_to_comment_id = ?", commentID).
		Order("id").Offset(skip).Limit(limit).Find(&comments).Error
	return comments, err
}
