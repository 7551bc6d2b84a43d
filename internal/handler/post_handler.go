package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campushub/internal/service"
)

type PostHandler struct {
	PostService    *service.PostService
	CommentService *service.CommentService
	LikeService    *service.LikeService
	Uploader       Uploader
}

func NewPostHandler(posts *service.PostService, comments *service.CommentService, likes *service.LikeService, uploader Uploader) *PostHandler {
	return &PostHandler{
		PostService:    posts,
		CommentService: comments,
		LikeService:    likes,
		Uploader:       uploader,
	}
}

// Create accepts multipart form data: content plus an optional image file.
func (h *PostHandler) Create(c *gin.Context) {
	content := c.PostForm("content")
	image := uploadImage(c, h.Uploader, "image")
	post, err := h.PostService.Create(currentUserID(c), content, image)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) List(c *gin.Context) {
	skip, limit := pagination(c)
	posts, err := h.PostService.List(skip, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	post, err := h.PostService.Get(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.PostService.Delete(id, currentUser(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "post deleted"})
}

type createCommentRequest struct {
	Content          string  `json:"content" binding:"required"`
	ReplyToCommentID *uint64 `json:"reply_to_comment_id"`
}

func (h *PostHandler) CreateComment(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid request body"})
		return
	}
	comment, err := h.CommentService.Create(currentUserID(c), req.Content, &postID, nil, req.ReplyToCommentID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *PostHandler) ListComments(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	skip, limit := pagination(c)
	comments, err := h.CommentService.ListByPost(postID, skip, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *PostHandler) ListReplies(c *gin.Context) {
	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	skip, limit := pagination(c)
	replies, err := h.CommentService.ListReplies(commentID, skip, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, replies)
}

func (h *PostHandler) Like(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	changed, err := h.LikeService.Like(c.Request.Context(), currentUserID(c), postID)
	if err != nil {
		fail(c, err)
		return
	}
	msg := "already liked"
	if changed {
		msg = "post liked"
	}
	c.JSON(http.StatusOK, gin.H{"msg": msg})
}

func (h *PostHandler) Unlike(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	changed, err := h.LikeService.Unlike(c.Request.Context(), currentUserID(c), postID)
	if err != nil {
		fail(c, err)
		return
	}
	msg := "not liked"
	if changed {
		msg = "post unliked"
	}
	c.JSON(http.StatusOK, gin.H{"msg": msg})
}

func (h *PostHandler) LikeCount(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	count, err := h.LikeService.Count(c.Request.Context(), postID)
	if err != nil {
		fail(c, err)
		return
	}
	// Anonymous callers get the count with liked pinned to false.
	liked := false
	if userID := currentUserID(c); userID != 0 {
		liked, err = h.LikeService.IsLiked(c.Request.Context(), userID, postID)
		if err != nil {
			fail(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"post_id": postID,
		"count":   count,
		"liked":   liked,
	})
}
