package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/imagegenhub/imagegenhub/internal/container"
	handlers "github.com/imagegenhub/imagegenhub/internal/interface/http"
	"github.com/imagegenhub/imagegenhub/internal/interface/middleware"
	"github.com/imagegenhub/imagegenhub/pkg/helpers"
)

// MemeModule wires the meme browsing and mutation endpoints.
// Public: GET /api/memes, GET /api/memes/:id, GET /api/featured-memes,
// GET /api/meme-of-the-day, GET /api/users/:id/memes
// Protected: POST /api/memes, POST /api/memes/:id/vote,
// POST /api/memes/:id/comments, POST /api/memes/:id/flag
type MemeModule struct {
	Handler *handlers.MemeHandler
	JWT     *helpers.JWTManager
}

func NewMemeModule(h *handlers.MemeHandler, jwt *helpers.JWTManager) *MemeModule {
	return &MemeModule{Handler: h, JWT: jwt}
}

func (m *MemeModule) Register(rg *gin.RouterGroup) {
	listLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/memes", listLimiter, m.Handler.List)
	rg.GET("/memes/:id", listLimiter, m.Handler.Get)
	rg.GET("/featured-memes", listLimiter, m.Handler.Featured)
	rg.GET("/meme-of-the-day", listLimiter, m.Handler.MemeOfTheDay)
	rg.GET("/users/:id/memes", listLimiter, m.Handler.ListByUser)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/memes", m.Handler.Create)
		auth.POST("/memes/:id/vote", m.Handler.Vote)
		auth.POST("/memes/:id/comments", m.Handler.Comment)
		auth.POST("/memes/:id/flag", m.Handler.Flag)
	}
}
