package service

import (
	"context"
	"encoding/json"
	"log"

	"campushub/internal/model"
	"campushub/internal/pkg"
	"campushub/internal/repository/mysql"
)

type AnnouncementService struct {
	AnnouncementRepo *mysql.AnnouncementRepository

	// Producer is optional; nil disables publishing.
	Producer *pkg.KafkaProducer
}

func NewAnnouncementService(producer *pkg.KafkaProducer) *AnnouncementService {
	return &AnnouncementService{
		AnnouncementRepo: &mysql.AnnouncementRepository{DB: mysql.DB},
		Producer:         producer,
	}
}

type announcementEvent struct {
	ID      uint64 `json:"id"`
	OwnerID uint64 `json:"owner_id"`
	Content string `json:"content"`
	Action  string `json:"action"`
}

func (s *AnnouncementService) Create(ctx context.Context, ownerID uint64, content string) (*model.Announcement, error) {
	if content == "" {
		return nil, pkg.Validation("missing content")
	}
	announcement := &model.Announcement{Content: content, OwnerID: ownerID}
	if err := s.AnnouncementRepo.Create(announcement); err != nil {
		return nil, err
	}
	s.publish(ctx, announcement, "created")
	return s.AnnouncementRepo.FindByID(announcement.ID)
}

func (s *AnnouncementService) Get(id uint64) (*model.Announcement, error) {
	announcement, err := s.AnnouncementRepo.FindByID(id)
	if err != nil {
		if mysql.IsNotFound(err) {
			return nil, pkg.NotFound("announcement not found")
		}
		return nil, err
	}
	return announcement, nil
}

func (s *AnnouncementService) List(skip, limit int) ([]model.Announcement, error) {
	skip, limit = clampPage(skip, limit)
	return s.AnnouncementRepo.List(skip, limit)
}

// Update lets the owner edit the content; there is no admin override.
func (s *AnnouncementService) Update(ctx context.Context, id uint64, actor *model.User, content string) (*model.Announcement, error) {
	if content == "" {
		return nil, pkg.Validation("missing content")
	}
	announcement, err := s.AnnouncementRepo.FindByID(id)
	if err != nil {
		if mysql.IsNotFound(err) {
			return nil, pkg.NotFound("announcement not found")
		}
		return nil, err
	}
	if !pkg.CanModifyAnnouncement(actor, announcement) {
		return nil, pkg.Forbidden("not the announcement owner")
	}
	announcement.Content = content
	if err := s.AnnouncementRepo.Update(announcement); err != nil {
		return nil, err
	}
	s.publish(ctx, announcement, "updated")
	return announcement, nil
}

// publish is best-effort: a broker outage must not fail the request.
func (s *AnnouncementService) publish(ctx context.Context, a *model.Announcement, action string) {
	if s.Producer == nil {
		return
	}
	payload, err := json.Marshal(announcementEvent{
		ID:      a.ID,
		OwnerID: a.OwnerID,
		Content: a.Content,
		Action:  action,
	})
	if err != nil {
		log.Printf("marshal announcement event: %v", err)
		return
	}
	if err := s.Producer.Send(ctx, pkg.MakeKeyFromID(a.ID), payload); err != nil {
		log.Printf("publish announcement %d: %v", a.ID, err)
	}
}
