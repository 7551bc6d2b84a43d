package service

import (
	"time"

	"campushub/internal/model"
	"campushub/internal/pkg"
	"campushub/internal/repository/mysql"
)

type EventService struct {
	EventRepo *mysql.EventRepository
}

func NewEventService() *EventService {
	return &EventService{EventRepo: &mysql.EventRepository{DB: mysql.DB}}
}

func (s *EventService) Create(title, description string, eventDate time.Time, location string, image *string) (*model.Event, error) {
	if title == "" {
		return nil, pkg.Validation("missing title")
	}
	if eventDate.IsZero() {
		return nil, pkg.Validation("missing event date")
	}
	event := &model.Event{
		Title:       title,
		Description: description,
		EventDate:   eventDate,
		Location:    location,
		Image:       image,
	}
	if err := s.EventRepo.Create(event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) Get(id uint64) (*model.Event, error) {
	event, err := s.EventRepo.FindByID(id)
	if err != nil {
		if mysql.IsNotFound(err) {
			return nil, pkg.NotFound("event not found")
		}
		return nil, err
	}
	return event, nil
}

func (s *EventService) List(skip, limit int) ([]model.Event, error) {
	skip, limit = clampPage(skip, limit)
	return s.EventRepo.List(skip, limit)
}
