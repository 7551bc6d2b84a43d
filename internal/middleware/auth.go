package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"campushub/internal/pkg"
	"campushub/internal/repository/mysql"
)

const (
	ContextUserIDKey = "userID"
	ContextUserKey   = "user"
)

// Auth validates the bearer token and loads the account it names. Tokens
// for deleted accounts are rejected even when the signature still checks.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "missing authorization header"})
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "invalid authorization header"})
			return
		}

		claims, err := pkg.ParseToken(parts[1])
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, pkg.ErrTokenExpired) {
				msg = "token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": msg})
			return
		}

		userRepo := &mysql.UserRepository{DB: mysql.DB}
		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "user not found"})
			return
		}

		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// OptionalAuth loads the account when a valid bearer token is present and
// stays anonymous otherwise; handlers degrade per-user fields for callers
// without one.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return
		}
		claims, err := pkg.ParseToken(parts[1])
		if err != nil {
			return
		}
		userRepo := &mysql.UserRepository{DB: mysql.DB}
		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return
		}
		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextUserKey, user)
	}
}
