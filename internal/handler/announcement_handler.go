package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campushub/internal/service"
)

type AnnouncementHandler struct {
	AnnouncementService *service.AnnouncementService
}

func NewAnnouncementHandler(announcements *service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{AnnouncementService: announcements}
}

type announcementRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req announcementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid request body"})
		return
	}
	announcement, err := h.AnnouncementService.Create(c.Request.Context(), currentUserID(c), req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, announcement)
}

func (h *AnnouncementHandler) List(c *gin.Context) {
	skip, limit := pagination(c)
	announcements, err := h.AnnouncementService.List(skip, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, announcements)
}

func (h *AnnouncementHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	announcement, err := h.AnnouncementService.Get(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, announcement)
}

func (h *AnnouncementHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req announcementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid request body"})
		return
	}
	announcement, err := h.AnnouncementService.Update(c.Request.Context(), id, currentUser(c), req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, announcement)
}
