package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/imagegenhub/imagegenhub/internal/container"
	handlers "github.com/imagegenhub/imagegenhub/internal/interface/http"
	"github.com/imagegenhub/imagegenhub/internal/interface/middleware"
	"github.com/imagegenhub/imagegenhub/pkg/helpers"
)

// AuthModule wires the mock auth endpoints.
// Public: POST /api/login, POST /api/register, POST /api/refresh, GET /api/session
// Protected: POST /api/logout
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/refresh", refreshLimiter, m.Handler.Refresh)
	rg.GET("/session", m.Handler.Session)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.POST("/logout", m.Handler.Logout)
	}
}
