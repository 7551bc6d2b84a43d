package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"campushub/internal/service"
)

type EventHandler struct {
	EventService   *service.EventService
	CommentService *service.CommentService
	Uploader       Uploader
}

func NewEventHandler(events *service.EventService, comments *service.CommentService, uploader Uploader) *EventHandler {
	return &EventHandler{EventService: events, CommentService: comments, Uploader: uploader}
}

// Create accepts multipart form data. event_date takes RFC 3339 or a bare
// date.
func (h *EventHandler) Create(c *gin.Context) {
	title := c.PostForm("title")
	description := c.PostForm("description")
	location := c.PostForm("location")
	eventDate, err := parseEventDate(c.PostForm("event_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid event_date"})
		return
	}
	image := uploadImage(c, h.Uploader, "image")
	event, svcErr := h.EventService.Create(title, description, eventDate, location, image)
	if svcErr != nil {
		fail(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, event)
}

func parseEventDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func (h *EventHandler) List(c *gin.Context) {
	skip, limit := pagination(c)
	events, err := h.EventService.List(skip, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	event, err := h.EventService.Get(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) CreateComment(c *gin.Context) {
	eventID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid request body"})
		return
	}
	comment, err := h.CommentService.Create(currentUserID(c), req.Content, nil, &eventID, req.ReplyToCommentID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *EventHandler) ListComments(c *gin.Context) {
	eventID, ok := pathID(c, "id")
	if !ok {
		return
	}
	skip, limit := pagination(c)
	comments, err := h.CommentService.ListByEvent(eventID, skip, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}
