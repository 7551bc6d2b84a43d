package service

import (
	"campushub/internal/model"
	"campushub/internal/pkg"
	"campushub/internal/repository/mysql"
)

type CommunityService struct {
	CommunityRepo  *mysql.CommunityRepository
	MembershipRepo *mysql.MembershipRepository
	PostRepo       *mysql.PostRepository
	CommentRepo    *mysql.CommentRepository
}

func NewCommunityService() *CommunityService {
	return &CommunityService{
		CommunityRepo:  &mysql.CommunityRepository{DB: mysql.DB},
		MembershipRepo: &mysql.MembershipRepository{DB: mysql.DB},
		PostRepo:       &mysql.PostRepository{DB: mysql.DB},
		CommentRepo:    &mysql.CommentRepository{DB: mysql.DB},
	}
}

// Create makes the community and enrolls the creator as its first member.
func (s *CommunityService) Create(ownerID uint64, name, description string) (*model.Community, error) {
	if name == "" {
		return nil, pkg.Validation("missing name")
	}
	if _, err := s.CommunityRepo.FindByName(name); err == nil {
		return nil, pkg.Conflict("community already exists")
	} else if !mysql.IsNotFound(err) {
		return nil, err
	}
	community := &model.Community{Name: name, Description: description, OwnerID: ownerID}
	if err := s.CommunityRepo.Create(community); err != nil {
		if mysql.IsDuplicate(err) {
			return nil, pkg.Conflict("community already exists")
		}
		return nil, err
	}
	if err := s.MembershipRepo.Join(ownerID, community.ID); err != nil && !mysql.IsDuplicate(err) {
		return nil, err
	}
	return community, nil
}

func (s *CommunityService) Get(id uint64) (*model.Community, error) {
	community, err := s.CommunityRepo.FindByID(id)
	if err != nil {
		if mysql.IsNotFound(err) {
			return nil, pkg.NotFound("community not found")
		}
		return nil, err
	}
	return community, nil
}

func (s *CommunityService) List(skip, limit int) ([]model.Community, error) {
	skip, limit = clampPage(skip, limit)
	return s.CommunityRepo.List(skip, limit)
}

// Search returns not-found rather than an empty list when nothing matches.
func (s *CommunityService) Search(name string, skip, limit int) ([]model.Community, error) {
	skip, limit = clampPage(skip, limit)
	communities, err := s.CommunityRepo.SearchByName(name, skip, limit)
	if err != nil {
		return nil, err
	}
	if len(communities) == 0 {
		return nil, pkg.NotFound("no communities found")
	}
	return communities, nil
}

func (s *CommunityService) Update(id uint64, actor *model.User, name, description string) (*model.Community, error) {
	community, err := s.CommunityRepo.FindByID(id)
	if err != nil {
		if mysql.IsNotFound(err) {
			return nil, pkg.NotFound("community not found")
		}
		return nil, err
	}
	if !pkg.CanModifyCommunity(actor, community) {
		return nil, pkg.Forbidden("not the community owner")
	}
	if name != "" && name != community.Name {
		if _, err := s.CommunityRepo.FindByName(name); err == nil {
			return nil, pkg.Conflict("community already exists")
		} else if !mysql.IsNotFound(err) {
			return nil, err
		}
		community.Name = name
	}
	if description != "" {
		community.Description = description
	}
	if err := s.CommunityRepo.Update(community); err != nil {
		if mysql.IsDuplicate(err) {
			return nil, pkg.Conflict("community already exists")
		}
		return nil, err
	}
	return community, nil
}

// Join enrolls the user. Joining twice is a conflict; the composite primary
// key backstops the membership check.
func (s *CommunityService) Join(userID, communityID uint64) error {
	if _, err := s.CommunityRepo.FindByID(communityID); err != nil {
		if mysql.IsNotFound(err) {
			return pkg.NotFound("community not found")
		}
		return err
	}
	member, err := s.MembershipRepo.IsMember(userID, communityID)
	if err != nil {
		return err
	}
	if member {
		return pkg.Conflict("already a member")
	}
	if err := s.MembershipRepo.Join(userID, communityID); err != nil {
		if mysql.IsDuplicate(err) {
			return pkg.Conflict("already a member")
		}
		return err
	}
	return nil
}

// Leave is idempotent: leaving a community you are not in succeeds.
func (s *CommunityService) Leave(userID, communityID uint64) error {
	if _, err := s.CommunityRepo.FindByID(communityID); err != nil {
		if mysql.IsNotFound(err) {
			return pkg.NotFound("community not found")
		}
		return err
	}
	_, err := s.MembershipRepo.Leave(userID, communityID)
	return err
}

func (s *CommunityService) MyCommunities(userID uint64, skip, limit int) ([]model.Community, error) {
	skip, limit = clampPage(skip, limit)
	return s.CommunityRepo.ListByMember(userID, skip, limit)
}

// CreatePost publishes inside the community; only members may post.
func (s *CommunityService) CreatePost(userID, communityID uint64, content string, image *string) (*model.Post, error) {
	if content == "" {
		return nil, pkg.Validation("missing content")
	}
	if _, err := s.CommunityRepo.FindByID(communityID); err != nil {
		if mysql.IsNotFound(err) {
			return nil, pkg.NotFound("community not found")
		}
		return nil, err
	}
	member, err := s.MembershipRepo.IsMember(userID, communityID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, pkg.Forbidden("user is not a member of this community")
	}
	post := &model.Post{Content: content, PostImage: image, OwnerID: userID, CommunityID: &communityID}
	if err := s.PostRepo.Create(post); err != nil {
		return nil, err
	}
	return s.PostRepo.FindByID(post.ID)
}

func (s *CommunityService) ListPosts(communityID uint64, skip, limit int) ([]model.Post, error) {
	if _, err := s.CommunityRepo.FindByID(communityID); err != nil {
		if mysql.IsNotFound(err) {
			return nil, pkg.NotFound("community not found")
		}
		return nil, err
	}
	skip, limit = clampPage(skip, limit)
	return s.PostRepo.ListByCommunity(communityID, skip, limit)
}

func (s *CommunityService) GetPost(communityID, postID uint64) (*model.Post, error) {
	post, err := s.PostRepo.FindByIDInCommunity(postID, communityID)
	if err != nil {
		if mysql.IsNotFound(err) {
			return nil, pkg.NotFound("post not found")
		}
		return nil, err
	}
	return post, nil
}
