package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"campushub/internal/config"
	"campushub/internal/model"
	"campushub/internal/pkg"
	"campushub/internal/repository/mysql"
)

func setupServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Community{},
		&model.Membership{},
		&model.Post{},
		&model.Event{},
		&model.Comment{},
		&model.Announcement{},
		&model.Like{},
	))
	mysql.DB = db
	t.Cleanup(func() { mysql.DB = nil })

	require.NoError(t, pkg.InitJWT("test-secret", "HS256", 30))
	return InitRouter(&config.Config{Port: "0"})
}

func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doForm(r *gin.Engine, method, path, token string, fields map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	mw.Close()
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signupAndLogin(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/users", "", gin.H{
		"name":     username,
		"email":    username + "@example.com",
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(r, http.MethodPost, "/login", "", gin.H{
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "bearer", resp.TokenType)
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func TestSignupAndLogin(t *testing.T) {
	r := setupServer(t)

	token := signupAndLogin(t, r, "alice")

	// Duplicate signup fails with a single conflict response.
	w := doJSON(r, http.MethodPost, "/users", "", gin.H{
		"name":     "Alice Again",
		"email":    "alice@example.com",
		"username": "alice2",
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "user already exists")

	w = doJSON(r, http.MethodPost, "/login", "", gin.H{
		"username": "alice",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "invalid credentials")

	w = doJSON(r, http.MethodGet, "/users/profile/me", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestBannerIsPublic(t *testing.T) {
	r := setupServer(t)
	w := doJSON(r, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRequiredOnWrites(t *testing.T) {
	r := setupServer(t)

	w := doForm(r, http.MethodPost, "/posts", "", map[string]string{"content": "hi"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doForm(r, http.MethodPost, "/posts", "not-a-token", map[string]string{"content": "hi"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")

	w = doJSON(r, http.MethodGet, "/users/profile/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// Read endpoints answer without a token.
func TestAnonymousReads(t *testing.T) {
	r := setupServer(t)
	token := signupAndLogin(t, r, "alice")

	w := doForm(r, http.MethodPost, "/posts", token, map[string]string{"content": "public"})
	require.Equal(t, http.StatusCreated, w.Code)
	var post struct {
		ID uint64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))

	w = doJSON(r, http.MethodGet, "/posts", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "public")

	w = doJSON(r, http.MethodGet, fmt.Sprintf("/posts/%d", post.ID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, fmt.Sprintf("/posts/%d/comments", post.ID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/users/1", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/users/all/search?username=ali", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/events", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/announcements", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/communities", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

// The likes read works both ways: anonymous callers see the count with
// liked false, token holders see their own flag.
func TestLikesReadDegradesForAnonymous(t *testing.T) {
	r := setupServer(t)
	token := signupAndLogin(t, r, "alice")

	w := doForm(r, http.MethodPost, "/posts", token, map[string]string{"content": "like me"})
	require.Equal(t, http.StatusCreated, w.Code)
	var post struct {
		ID uint64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))

	w = doJSON(r, http.MethodPost, fmt.Sprintf("/posts/%d/like", post.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var likes struct {
		Count int64 `json:"count"`
		Liked bool  `json:"liked"`
	}
	w = doJSON(r, http.MethodGet, fmt.Sprintf("/posts/%d/likes", post.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &likes))
	assert.EqualValues(t, 1, likes.Count)
	assert.False(t, likes.Liked)

	w = doJSON(r, http.MethodGet, fmt.Sprintf("/posts/%d/likes", post.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &likes))
	assert.EqualValues(t, 1, likes.Count)
	assert.True(t, likes.Liked)
}

func TestPostLifecycle(t *testing.T) {
	r := setupServer(t)
	token := signupAndLogin(t, r, "bob")

	w := doForm(r, http.MethodPost, "/posts", token, map[string]string{"content": "hello world"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var post struct {
		ID        uint64  `json:"id"`
		PostImage *string `json:"post_image"`
		Owner     struct {
			Username string `json:"username"`
		} `json:"owner"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	assert.Equal(t, "bob", post.Owner.Username)
	// No uploader configured: the post is created with a null image.
	assert.Nil(t, post.PostImage)

	w = doJSON(r, http.MethodGet, fmt.Sprintf("/posts/%d/comments", post.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	w = doJSON(r, http.MethodPost, fmt.Sprintf("/posts/%d/comments", post.ID), token, gin.H{"content": "first"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var comment struct {
		ID uint64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comment))

	w = doJSON(r, http.MethodPost, fmt.Sprintf("/posts/%d/comments", post.ID), token, gin.H{
		"content":             "a reply",
		"reply_to_comment_id": comment.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Replies do not show up in the top-level listing.
	w = doJSON(r, http.MethodGet, fmt.Sprintf("/posts/%d/comments", post.ID), token, nil)
	var topLevel []json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &topLevel))
	assert.Len(t, topLevel, 1)

	w = doJSON(r, http.MethodGet, fmt.Sprintf("/comments/%d/replies", comment.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var replies []json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &replies))
	assert.Len(t, replies, 1)

	w = doJSON(r, http.MethodGet, "/posts/9999", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLikesEndpoints(t *testing.T) {
	r := setupServer(t)
	token := signupAndLogin(t, r, "carol")

	w := doForm(r, http.MethodPost, "/posts", token, map[string]string{"content": "like me"})
	require.Equal(t, http.StatusCreated, w.Code)
	var post struct {
		ID uint64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))

	w = doJSON(r, http.MethodPost, fmt.Sprintf("/posts/%d/like", post.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "post liked")

	w = doJSON(r, http.MethodPost, fmt.Sprintf("/posts/%d/like", post.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "already liked")

	w = doJSON(r, http.MethodGet, fmt.Sprintf("/posts/%d/likes", post.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var likes struct {
		Count int64 `json:"count"`
		Liked bool  `json:"liked"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &likes))
	assert.EqualValues(t, 1, likes.Count)
	assert.True(t, likes.Liked)

	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/posts/%d/like", post.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "post unliked")
}

func TestEventEndpoints(t *testing.T) {
	r := setupServer(t)
	token := signupAndLogin(t, r, "dave")

	w := doForm(r, http.MethodPost, "/events", token, map[string]string{
		"title":       "hack night",
		"description": "bring laptops",
		"location":    "lab 3",
		"event_date":  "2026-10-01",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var event struct {
		ID uint64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &event))

	w = doForm(r, http.MethodPost, "/events", token, map[string]string{
		"title":      "bad date",
		"event_date": "next tuesday",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, fmt.Sprintf("/events/%d/comments", event.ID), token, gin.H{"content": "count me in"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodGet, fmt.Sprintf("/events/%d/comments", event.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var comments []json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comments))
	assert.Len(t, comments, 1)
}

func TestAnnouncementEndpoints(t *testing.T) {
	r := setupServer(t)
	owner := signupAndLogin(t, r, "erin")
	other := signupAndLogin(t, r, "frank")

	w := doJSON(r, http.MethodPost, "/announcements", owner, gin.H{"content": "midterms moved"})
	require.Equal(t, http.StatusCreated, w.Code)
	var announcement struct {
		ID uint64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &announcement))

	w = doJSON(r, http.MethodPut, fmt.Sprintf("/announcements/%d", announcement.ID), other, gin.H{"content": "hijack"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodPut, fmt.Sprintf("/announcements/%d", announcement.ID), owner, gin.H{"content": "midterms restored"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "midterms restored")
}

func TestCommunityEndpoints(t *testing.T) {
	r := setupServer(t)
	owner := signupAndLogin(t, r, "gus")
	member := signupAndLogin(t, r, "hana")

	w := doJSON(r, http.MethodPost, "/communities", owner, gin.H{"name": "gophers", "description": "go talk"})
	require.Equal(t, http.StatusCreated, w.Code)
	var community struct {
		ID uint64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &community))

	// Posting before joining is rejected.
	w = doForm(r, http.MethodPost, fmt.Sprintf("/communities/%d/posts", community.ID), member, map[string]string{"content": "hi"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodPost, fmt.Sprintf("/communities/join/%d", community.ID), member, nil)
	assert.Equal(t, http.StatusAccepted, w.Code)

	w = doJSON(r, http.MethodPost, fmt.Sprintf("/communities/join/%d", community.ID), member, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already a member")

	w = doForm(r, http.MethodPost, fmt.Sprintf("/communities/%d/posts", community.ID), member, map[string]string{"content": "hi"})
	require.Equal(t, http.StatusCreated, w.Code)
	var post struct {
		ID uint64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))

	w = doJSON(r, http.MethodGet, fmt.Sprintf("/communities/%d/posts/%d", community.ID, post.ID), owner, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, fmt.Sprintf("/communities/%d/posts/%d/comments", community.ID, post.ID), owner, gin.H{"content": "welcome"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodGet, fmt.Sprintf("/communities/%d/posts/%d/comments", community.ID, post.ID), owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var postComments []json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &postComments))
	assert.Len(t, postComments, 1)

	// The community scope 404s for posts that live elsewhere.
	w = doJSON(r, http.MethodGet, fmt.Sprintf("/communities/%d/posts/%d", community.ID, post.ID+100), owner, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodGet, "/communities/all/search?name=goph", owner, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/communities/all/search?name=zzz", owner, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodGet, "/communities/my_communities", member, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine []json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mine))
	assert.Len(t, mine, 1)

	w = doJSON(r, http.MethodPost, fmt.Sprintf("/communities/leave/%d", community.ID), member, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserSearchEndpoint(t *testing.T) {
	r := setupServer(t)
	token := signupAndLogin(t, r, "ivan")

	w := doJSON(r, http.MethodGet, "/users/all/search?username=iva", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/users/all/search?username=nobody", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "no users found")

	w = doJSON(r, http.MethodGet, "/users/all/search", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
