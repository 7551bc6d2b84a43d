package service

import (
	"campushub/internal/model"
	"campushub/internal/pkg"
	"campushub/internal/repository/mysql"
)

type CommentService struct {
	CommentRepo *mysql.CommentRepository
	PostRepo    *mysql.PostRepository
	EventRepo   *mysql.EventRepository
}

func NewCommentService() *CommentService {
	return &CommentService{
		CommentRepo: &mysql.CommentRepository{DB: mysql.DB},
		PostRepo:    &mysql.PostRepository{DB: mysql.DB},
		EventRepo:   &mysql.EventRepository{DB: mysql.DB},
	}
}

// Create attaches a comment to exactly one parent. A reply must target a
// comment that sits on the same parent.
func (s *CommentService) Create(userID uint64, content string, postID, eventID, replyTo *uint64) (*model.Comment, error) {
	if content == "" {
		return nil, pkg.Validation("missing content")
	}
	if (postID == nil) == (eventID == nil) {
		return nil, pkg.Validation("comment must reference exactly one of post or event")
	}
	if postID != nil {
		if _, err := s.PostRepo.FindByID(*postID); err != nil {
			if mysql.IsNotFound(err) {
				return nil, pkg.NotFound("post not found")
			}
			return nil, err
		}
	}
	if eventID != nil {
		if _, err := s.EventRepo.FindByID(*eventID); err != nil {
			if mysql.IsNotFound(err) {
				return nil, pkg.NotFound("event not found")
			}
			return nil, err
		}
	}
	if replyTo != nil {
		target, err := s.CommentRepo.FindByID(*replyTo)
		if err != nil {
			if mysql.IsNotFound(err) {
				return nil, pkg.NotFound("comment not found")
			}
			return nil, err
		}
		if !sameParent(target, postID, eventID) {
			return nil, pkg.Validation("reply must target a comment on the same post or event")
		}
	}
	comment := &model.Comment{
		Content:          content,
		UserID:           userID,
		PostID:           postID,
		EventID:          eventID,
		ReplyToCommentID: replyTo,
	}
	if err := s.CommentRepo.Create(comment); err != nil {
		return nil, err
	}
	return s.CommentRepo.FindByID(comment.ID)
}

func sameParent(target *model.Comment, postID, eventID *uint64) bool {
	if postID != nil {
		return target.PostID != nil && *target.PostID == *postID
	}
	return target.EventID != nil && *target.EventID == *eventID
}

func (s *CommentService) ListByPost(postID uint64, skip, limit int) ([]model.Comment, error) {
	if _, err := s.PostRepo.FindByID(postID); err != nil {
		if mysql.IsNotFound(err) {
			return nil, pkg.NotFound("post not found")
		}
		return nil, err
	}
	skip, limit = clampPage(skip, limit)
	return s.CommentRepo.ListTopLevelByPost(postID, skip, limit)
}

func (s *CommentService) ListByEvent(eventID uint64, skip, limit int) ([]model.Comment, error) {
	if _, err := s.EventRepo.FindByID(eventID); err != nil {
		if mysql.IsNotFound(err) {
			return nil, pkg.NotFound("event not found")
		}
		return nil, err
	}
	skip, limit = clampPage(skip, limit)
	return s.CommentRepo.ListTopLevelByEvent(eventID, skip, limit)
}

// ListReplies fetches direct replies only; deeper levels are fetched by
// calling it again with a reply's id.
func (s *CommentService) ListReplies(commentID uint64, skip, limit int) ([]model.Comment, error) {
	if _, err := s.CommentRepo.FindByID(commentID); err != nil {
		if mysql.IsNotFound(err) {
			return nil, pkg.NotFound("comment not found")
		}
		return nil, err
	}
	skip, limit = clampPage(skip, limit)
	return s.CommentRepo.ListReplies(commentID, skip, limit)
}
