package service

import (
	"campushub/internal/model"
	"campushub/internal/pkg"
	"campushub/internal/repository/mysql"
)

type PostService struct {
	PostRepo *mysql.PostRepository
}

func NewPostService() *PostService {
	return &PostService{PostRepo: &mysql.PostRepository{DB: mysql.DB}}
}

func (s *PostService) Create(ownerID uint64, content string, image *string) (*model.Post, error) {
	if content == "" {
		return nil, pkg.Validation("missing content")
	}
	post := &model.Post{Content: content, PostImage: image, OwnerID: ownerID}
	if err := s.PostRepo.Create(post); err != nil {
		return nil, err
	}
	return s.PostRepo.FindByID(post.ID)
}

func (s *PostService) Get(id uint64) (*model.Post, error) {
	post, err := s.PostRepo.FindByID(id)
	if err != nil {
		if mysql.IsNotFound(err) {
			return nil, pkg.NotFound("post not found")
		}
		return nil, err
	}
	return post, nil
}

func (s *PostService) List(skip, limit int) ([]model.Post, error) {
	skip, limit = clampPage(skip, limit)
	return s.PostRepo.List(skip, limit)
}

// Delete removes a post; only the owner may do it.
func (s *PostService) Delete(id uint64, actor *model.User) error {
	post, err := s.PostRepo.FindByID(id)
	if err != nil {
		if mysql.IsNotFound(err) {
			return pkg.NotFound("post not found")
		}
		return err
	}
	if actor == nil || post.OwnerID != actor.ID {
		return pkg.Forbidden("not the post owner")
	}
	return s.PostRepo.Delete(id)
}
