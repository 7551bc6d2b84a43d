package service

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"campushub/internal/model"
	"campushub/internal/pkg"
	"campushub/internal/repository/mysql"
	"campushub/internal/repository/redis"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
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
	return db
}

func startRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	redis.Client = goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		redis.Client.Close()
		redis.Client = nil
	})
	return mr
}

func newTestUserService(db *gorm.DB) *UserService {
	return &UserService{
		UserRepo:  &mysql.UserRepository{DB: db},
		ResetRepo: &redis.ResetCodeRepository{},
	}
}

func newTestPostService(db *gorm.DB) *PostService {
	return &PostService{PostRepo: &mysql.PostRepository{DB: db}}
}

func newTestCommentService(db *gorm.DB) *CommentService {
	return &CommentService{
		CommentRepo: &mysql.CommentRepository{DB: db},
		PostRepo:    &mysql.PostRepository{DB: db},
		EventRepo:   &mysql.EventRepository{DB: db},
	}
}

func newTestCommunityService(db *gorm.DB) *CommunityService {
	return &CommunityService{
		CommunityRepo:  &mysql.CommunityRepository{DB: db},
		MembershipRepo: &mysql.MembershipRepository{DB: db},
		PostRepo:       &mysql.PostRepository{DB: db},
		CommentRepo:    &mysql.CommentRepository{DB: db},
	}
}

func newTestLikeService(db *gorm.DB) *LikeService {
	return &LikeService{
		LikeRepo: &mysql.LikeRepository{DB: db},
		PostRepo: &mysql.PostRepository{DB: db},
		Cache:    &redis.LikeCacheRepository{},
	}
}

func newTestAnnouncementService(db *gorm.DB) *AnnouncementService {
	return &AnnouncementService{
		AnnouncementRepo: &mysql.AnnouncementRepository{DB: db},
	}
}

func registerUser(t *testing.T, s *UserService, username string) *model.User {
	t.Helper()
	user, err := s.Register(username, username+"@example.com", username, "password123")
	require.NoError(t, err)
	return user
}

func appErr(t *testing.T, err error) *pkg.AppError {
	t.Helper()
	require.Error(t, err)
	appError, ok := err.(*pkg.AppError)
	require.True(t, ok, "expected *pkg.AppError, got %T: %v", err, err)
	return appError
}
