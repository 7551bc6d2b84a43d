package router

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"campushub/internal/config"
	"campushub/internal/handler"
	"campushub/internal/middleware"
	"campushub/internal/pkg"
	"campushub/internal/service"
)

// InitRouter wires services and routes. S3 and Kafka are optional: when
// they cannot be set up the server runs without them and logs why.
func InitRouter(cfg *config.Config) *gin.Engine {
	var uploader handler.Uploader
	if cfg.S3Bucket != "" {
		s3, err := pkg.NewS3Uploader(context.Background(), pkg.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		})
		if err != nil {
			log.Printf("s3 uploader disabled: %v", err)
		} else {
			uploader = s3
		}
	}

	var producer *pkg.KafkaProducer
	if len(cfg.KafkaBrokers) > 0 {
		producer = pkg.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	}

	smtp := pkg.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}

	userService := service.NewUserService(smtp)
	postService := service.NewPostService()
	commentService := service.NewCommentService()
	eventService := service.NewEventService()
	announcementService := service.NewAnnouncementService(producer)
	communityService := service.NewCommunityService()
	likeService := service.NewLikeService()

	userHandler := handler.NewUserHandler(userService, uploader)
	postHandler := handler.NewPostHandler(postService, commentService, likeService, uploader)
	eventHandler := handler.NewEventHandler(eventService, commentService, uploader)
	announcementHandler := handler.NewAnnouncementHandler(announcementService)
	communityHandler := handler.NewCommunityHandler(communityService, commentService, uploader)

	r := gin.Default()
	auth := middleware.Auth()
	optionalAuth := middleware.OptionalAuth()

	// Reads are public; auth guards writes and per-user views.
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"msg": "campushub api"})
	})
	r.POST("/login", userHandler.Login)

	users := r.Group("/users")
	{
		users.POST("", userHandler.Signup)
		users.POST("/password/forgot", userHandler.ForgotPassword)
		users.POST("/password/verify", userHandler.VerifyResetCode)
		users.POST("/password/reset", userHandler.ResetPassword)
		users.POST("/password/change", auth, userHandler.ChangePassword)
		users.GET("/all/search", userHandler.Search)
		users.GET("/profile/me", auth, userHandler.Me)
		users.POST("/profile/image", auth, userHandler.UploadProfileImage)
		users.DELETE("/profile/me", auth, userHandler.DeleteMe)
		users.GET("/:id", userHandler.Get)
	}

	posts := r.Group("/posts")
	{
		posts.POST("", auth, postHandler.Create)
		posts.GET("", postHandler.List)
		posts.GET("/:id", postHandler.Get)
		posts.DELETE("/:id", auth, postHandler.Delete)
		posts.POST("/:id/comments", auth, postHandler.CreateComment)
		posts.GET("/:id/comments", postHandler.ListComments)
		posts.POST("/:id/like", auth, postHandler.Like)
		posts.DELETE("/:id/like", auth, postHandler.Unlike)
		posts.GET("/:id/likes", optionalAuth, postHandler.LikeCount)
	}

	r.GET("/comments/:id/replies", postHandler.ListReplies)

	events := r.Group("/events")
	{
		events.POST("", auth, eventHandler.Create)
		events.GET("", eventHandler.List)
		events.GET("/:id", eventHandler.Get)
		events.POST("/:id/comments", auth, eventHandler.CreateComment)
		events.GET("/:id/comments", eventHandler.ListComments)
	}

	announcements := r.Group("/announcements")
	{
		announcements.POST("", auth, announcementHandler.Create)
		announcements.GET("", announcementHandler.List)
		announcements.GET("/:id", announcementHandler.Get)
		announcements.PUT("/:id", auth, announcementHandler.Update)
	}

	communities := r.Group("/communities")
	{
		communities.POST("", auth, communityHandler.Create)
		communities.GET("", communityHandler.List)
		communities.GET("/all/search", communityHandler.Search)
		communities.GET("/my_communities", auth, communityHandler.Mine)
		communities.POST("/join/:id", auth, communityHandler.Join)
		communities.POST("/leave/:id", auth, communityHandler.Leave)
		communities.GET("/:id", communityHandler.Get)
		communities.PUT("/:id", auth, communityHandler.Update)
		communities.POST("/:id/posts", auth, communityHandler.CreatePost)
		communities.GET("/:id/posts", communityHandler.ListPosts)
		communities.GET("/:id/posts/:post_id", communityHandler.GetPost)
		communities.POST("/:id/posts/:post_id/comments", auth, communityHandler.CreatePostComment)
		communities.GET("/:id/posts/:post_id/comments", communityHandler.ListPostComments)
	}

	return r
}
