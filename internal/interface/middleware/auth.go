package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imagegenhub/imagegenhub/pkg/helpers"
	"github.com/imagegenhub/imagegenhub/pkg/response"
)

const (
	CtxUserIDKey   = "userID"
	CtxUsernameKey = "userName"
	CtxEmailKey    = "userEmail"
)

// Auth validates the access token cookie and injects the identity claims
// into the Gin context. Domain-level auth gating still happens in the
// services; this is the transport check.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			resp := response.Error[any](c, http.StatusUnauthorized, "must be logged in", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			resp := response.Error[any](c, http.StatusUnauthorized, "invalid access token", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUsernameKey, claims.Username)
		c.Set(CtxEmailKey, claims.Email)
		c.Next()
	}
}
