package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/imagegenhub/imagegenhub/internal/application"
	"github.com/imagegenhub/imagegenhub/internal/domain/entity"
	"github.com/imagegenhub/imagegenhub/pkg/response"
	"github.com/imagegenhub/imagegenhub/pkg/validation"
)

type MemeHandler struct {
	Svc    *application.MemeService
	Logger *logrus.Logger
}

func NewMemeHandler(svc *application.MemeService, logger *logrus.Logger) *MemeHandler {
	return &MemeHandler{Svc: svc, Logger: logger}
}

type createMemeRequest struct {
	ImageURL   string   `json:"image_url" binding:"required,url"`
	TopText    string   `json:"top_text" binding:"max=100"`
	BottomText string   `json:"bottom_text" binding:"max=100"`
	Tags       []string `json:"tags" binding:"dive,min=1,max=30"`
}

type voteRequest struct {
	Direction string `json:"direction" binding:"required,votedir"`
}

type commentRequest struct {
	// Length rules live in the service so empty and over-length produce
	// their distinct advisory messages.
	Text string `json:"text"`
}

type flagRequest struct {
	Reason string `json:"reason"`
}

// fail maps domain sentinel errors onto the advisory envelope. Nothing the
// domain can signal is a server error.
func (h *MemeHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrUnauthenticated):
		response.Fail(c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, application.ErrNotFound):
		response.Fail(c, http.StatusNotFound, "meme not found", nil)
	default:
		response.Fail(c, http.StatusBadRequest, err.Error(), nil)
	}
}

// List GET /api/memes?mode=new|top-day|top-week|top-all
func (h *MemeHandler) List(c *gin.Context) {
	mode := entity.RankingMode(c.DefaultQuery("mode", string(entity.RankNew)))
	if !mode.Valid() {
		response.Fail(c, http.StatusBadRequest, "unknown ranking mode", gin.H{"mode": mode})
		return
	}
	memes := h.Svc.ListRanked(mode)
	response.Success(c, http.StatusOK, memes, "memes", gin.H{"mode": mode, "count": len(memes)})
}

// Get GET /api/memes/:id
func (h *MemeHandler) Get(c *gin.Context) {
	m, err := h.Svc.GetByID(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, m, "meme", nil)
}

// Featured GET /api/featured-memes — top three by net score.
func (h *MemeHandler) Featured(c *gin.Context) {
	response.Success(c, http.StatusOK, h.Svc.FeaturedMemes(), "featured memes", nil)
}

// MemeOfTheDay GET /api/meme-of-the-day
func (h *MemeHandler) MemeOfTheDay(c *gin.Context) {
	m := h.Svc.MemeOfTheDay()
	if m == nil {
		response.Success[any](c, http.StatusOK, nil, "no meme of the day", nil)
		return
	}
	response.Success(c, http.StatusOK, m, "meme of the day", nil)
}

// ListByUser GET /api/users/:id/memes
func (h *MemeHandler) ListByUser(c *gin.Context) {
	memes := h.Svc.ListByUser(c.Param("id"))
	response.Success(c, http.StatusOK, memes, "user memes", gin.H{"count": len(memes)})
}

// Create POST /api/memes
func (h *MemeHandler) Create(c *gin.Context) {
	var req createMemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	m, err := h.Svc.CreateMeme(c.Request.Context(), application.CreateMemeInput{
		ImageURL:   req.ImageURL,
		TopText:    req.TopText,
		BottomText: req.BottomText,
		Tags:       req.Tags,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, m, "meme created", nil)
}

// Vote POST /api/memes/:id/vote — toggles the session-local vote.
func (h *MemeHandler) Vote(c *gin.Context) {
	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.Vote(c.Request.Context(), c.Param("id"), entity.VoteDirection(req.Direction)); err != nil {
		h.fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"voted": true}, "vote recorded", nil)
}

// Comment POST /api/memes/:id/comments
func (h *MemeHandler) Comment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.AddComment(c.Request.Context(), c.Param("id"), req.Text); err != nil {
		h.fail(c, err)
		return
	}
	response.Success[any](c, http.StatusCreated, gin.H{"commented": true}, "comment added successfully", nil)
}

// Flag POST /api/memes/:id/flag — fire-and-forget acknowledgment.
func (h *MemeHandler) Flag(c *gin.Context) {
	var req flagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.FlagMeme(c.Request.Context(), c.Param("id"), req.Reason); err != nil {
		h.fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"flagged": true}, "content has been flagged for review", nil)
}
