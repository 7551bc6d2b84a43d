package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"campushub/internal/middleware"
	"campushub/internal/model"
	"campushub/internal/repository/mysql"
	"campushub/internal/repository/redis"
	"campushub/internal/service"
)

type stubUploader struct {
	url string
	err error
}

func (s *stubUploader) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error) {
	return s.url, s.err
}

func setupPostRoutes(t *testing.T, uploader Uploader) (*gin.Engine, *model.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Post{}, &model.Comment{}, &model.Like{}))

	user := &model.User{Name: "alice", Email: "alice@example.com", Username: "alice", Password: "x", Role: model.RoleUser}
	require.NoError(t, db.Create(user).Error)

	posts := &service.PostService{PostRepo: &mysql.PostRepository{DB: db}}
	comments := &service.CommentService{
		CommentRepo: &mysql.CommentRepository{DB: db},
		PostRepo:    &mysql.PostRepository{DB: db},
		EventRepo:   &mysql.EventRepository{DB: db},
	}
	likes := &service.LikeService{
		LikeRepo: &mysql.LikeRepository{DB: db},
		PostRepo: &mysql.PostRepository{DB: db},
		Cache:    &redis.LikeCacheRepository{},
	}
	h := NewPostHandler(posts, comments, likes, uploader)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserIDKey, user.ID)
		c.Set(middleware.ContextUserKey, user)
	})
	r.POST("/posts", h.Create)
	return r, user
}

func postWithImage(t *testing.T, r *gin.Engine) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("content", "look at this"))
	fw, err := mw.CreateFormFile("image", "cat.png")
	require.NoError(t, err)
	fw.Write([]byte("not really a png"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/posts", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreatePostWithUpload(t *testing.T) {
	r, _ := setupPostRoutes(t, &stubUploader{url: "https://bucket.s3.eu-west-1.amazonaws.com/uploads/abc_cat.png"})

	w := postWithImage(t, r)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var post struct {
		PostImage *string `json:"post_image"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	require.NotNil(t, post.PostImage)
	assert.Contains(t, *post.PostImage, "cat.png")
}

// A storage outage degrades to a post without an image, not an error.
func TestCreatePostUploadFailure(t *testing.T) {
	r, _ := setupPostRoutes(t, &stubUploader{err: errors.New("s3 down")})

	w := postWithImage(t, r)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var post struct {
		Content   string  `json:"content"`
		PostImage *string `json:"post_image"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	assert.Equal(t, "look at this", post.Content)
	assert.Nil(t, post.PostImage)
}

func TestCreatePostMissingContent(t *testing.T) {
	r, _ := setupPostRoutes(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/posts", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
