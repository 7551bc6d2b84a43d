package handler

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"campushub/internal/middleware"
	"campushub/internal/model"
	"campushub/internal/pkg"
)

// Uploader is what handlers need from object storage; satisfied by
// pkg.S3Uploader and by test stubs.
type Uploader interface {
	Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error)
}

func fail(c *gin.Context, err error) {
	var appErr *pkg.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status(), gin.H{"msg": appErr.Msg})
		return
	}
	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
}

func currentUser(c *gin.Context) *model.User {
	v, ok := c.Get(middleware.ContextUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}

func currentUserID(c *gin.Context) uint64 {
	v, ok := c.Get(middleware.ContextUserIDKey)
	if !ok {
		return 0
	}
	id, _ := v.(uint64)
	return id
}

// pagination reads skip/limit query params; the service clamps them.
func pagination(c *gin.Context) (int, int) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	return skip, limit
}

func pathID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid id"})
		return 0, false
	}
	return id, true
}

// uploadImage pushes the optional form file to object storage. Every
// failure path degrades to nil; an upload problem never fails the request.
func uploadImage(c *gin.Context, uploader Uploader, field string) *string {
	header, err := c.FormFile(field)
	if err != nil {
		return nil
	}
	if uploader == nil {
		log.Printf("image upload skipped: no uploader configured")
		return nil
	}
	file, err := header.Open()
	if err != nil {
		log.Printf("open uploaded file: %v", err)
		return nil
	}
	defer file.Close()
	url, err := uploader.Upload(c.Request.Context(), file, header)
	if err != nil {
		log.Printf("upload image: %v", err)
		return nil
	}
	return &url
}
