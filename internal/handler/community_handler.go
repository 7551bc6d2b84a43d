package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campushub/internal/service"
)

type CommunityHandler struct {
	CommunityService *service.CommunityService
	CommentService   *service.CommentService
	Uploader         Uploader
}

func NewCommunityHandler(communities *service.CommunityService, comments *service.CommentService, uploader Uploader) *CommunityHandler {
	return &CommunityHandler{
		CommunityService: communities,
		CommentService:   comments,
		Uploader:         uploader,
	}
}

type communityRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *CommunityHandler) Create(c *gin.Context) {
	var req communityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid request body"})
		return
	}
	community, err := h.CommunityService.Create(currentUserID(c), req.Name, req.Description)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, community)
}

func (h *CommunityHandler) List(c *gin.Context) {
	skip, limit := pagination(c)
	communities, err := h.CommunityService.List(skip, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, communities)
}

func (h *CommunityHandler) Search(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "missing name"})
		return
	}
	skip, limit := pagination(c)
	communities, err := h.CommunityService.Search(name, skip, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, communities)
}

func (h *CommunityHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	community, err := h.CommunityService.Get(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, community)
}

func (h *CommunityHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req communityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid request body"})
		return
	}
	community, err := h.CommunityService.Update(id, currentUser(c), req.Name, req.Description)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, community)
}

// Join answers 202: enrollment is acknowledged, effects show up on the
// next read.
func (h *CommunityHandler) Join(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.CommunityService.Join(currentUserID(c), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"msg": "joined community"})
}

func (h *CommunityHandler) Leave(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.CommunityService.Leave(currentUserID(c), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "left community"})
}

func (h *CommunityHandler) Mine(c *gin.Context) {
	skip, limit := pagination(c)
	communities, err := h.CommunityService.MyCommunities(currentUserID(c), skip, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, communities)
}

func (h *CommunityHandler) CreatePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	content := c.PostForm("content")
	image := uploadImage(c, h.Uploader, "image")
	post, err := h.CommunityService.CreatePost(currentUserID(c), id, content, image)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *CommunityHandler) ListPosts(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	skip, limit := pagination(c)
	posts, err := h.CommunityService.ListPosts(id, skip, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *CommunityHandler) GetPost(c *gin.Context) {
	communityID, ok := pathID(c, "id")
	if !ok {
		return
	}
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}
	post, err := h.CommunityService.GetPost(communityID, postID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// CreatePostComment comments on a post through its community scope; the
// post must belong to the community in the path.
func (h *CommunityHandler) CreatePostComment(c *gin.Context) {
	communityID, ok := pathID(c, "id")
	if !ok {
		return
	}
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}
	post, err := h.CommunityService.GetPost(communityID, postID)
	if err != nil {
		fail(c, err)
		return
	}
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid request body"})
		return
	}
	comment, err := h.CommentService.Create(currentUserID(c), req.Content, &post.ID, nil, req.ReplyToCommentID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *CommunityHandler) ListPostComments(c *gin.Context) {
	communityID, ok := pathID(c, "id")
	if !ok {
		return
	}
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}
	post, err := h.CommunityService.GetPost(communityID, postID)
	if err != nil {
		fail(c, err)
		return
	}
	skip, limit := pagination(c)
	comments, err := h.CommentService.ListByPost(post.ID, skip, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}
