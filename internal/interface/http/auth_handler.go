package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/imagegenhub/imagegenhub/internal/application"
	"github.com/imagegenhub/imagegenhub/pkg/helpers"
	"github.com/imagegenhub/imagegenhub/pkg/response"
	"github.com/imagegenhub/imagegenhub/pkg/validation"
)

type AuthHandler struct {
	Svc     *application.AuthService
	JWT     *helpers.JWTManager
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(svc *application.AuthService, jwt *helpers.JWTManager, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, JWT: jwt, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

// Login POST /api/login. The auth boundary is mocked: any credentials are
// accepted and the identity is derived from the email.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "login failed", nil)
		return
	}

	access, aexp, err := h.JWT.GenerateAccessToken(u.ID, u.Username, u.Email)
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		response.Fail(c, http.StatusInternalServerError, "token generation failed", nil)
		return
	}
	refresh, rexp, err := h.JWT.GenerateRefreshToken(u.ID, u.Username, u.Email)
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", u.ID).Error("generate refresh token failed")
		response.Fail(c, http.StatusInternalServerError, "token generation failed", nil)
		return
	}
	h.Cookies.SetPair(c, access, aexp, refresh, rexp)
	response.Success(c, http.StatusOK, u, "login successful", map[string]any{"access_expires_at": aexp, "refresh_expires_at": rexp})
}

// Register POST /api/register. Records the account but does not establish a
// session; the client is expected to log in afterwards.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.Register(c.Request.Context(), req.Username, req.Email, req.Password); err != nil {
		response.Fail(c, http.StatusInternalServerError, "registration failed", nil)
		return
	}
	response.Success[any](c, http.StatusCreated, gin.H{"registered": true}, "account created, please log in", nil)
}

// Logout POST /api/logout. Idempotent.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Svc.Logout(c.Request.Context())
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

// Refresh POST /api/refresh rotates the cookie pair from the refresh token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie("refresh_token")
	if err != nil || refresh == "" {
		resp := response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		c.JSON(resp.Status, resp)
		return
	}
	claims, err := h.JWT.ParseRefreshToken(refresh)
	if err != nil {
		resp := response.Error[any](c, http.StatusUnauthorized, "invalid refresh token", nil)
		c.JSON(resp.Status, resp)
		return
	}
	access, aexp, err := h.JWT.GenerateAccessToken(claims.UserID, claims.Username, claims.Email)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "token generation failed", nil)
		return
	}
	newRefresh, rexp, err := h.JWT.GenerateRefreshToken(claims.UserID, claims.Username, claims.Email)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "token generation failed", nil)
		return
	}
	h.Cookies.SetPair(c, access, aexp, newRefresh, rexp)
	response.Success[any](c, http.StatusOK, gin.H{"refreshed": true}, "token refreshed", map[string]any{"access_expires_at": aexp, "refresh_expires_at": rexp})
}

// Session GET /api/session reports the restored session state so the client
// can decide whether to show the signed-in chrome.
func (h *AuthHandler) Session(c *gin.Context) {
	u := h.Svc.CurrentUser()
	if u == nil {
		response.Success[any](c, http.StatusOK, gin.H{"authenticated": false}, "no session", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"authenticated": true, "user": u}, "session", nil)
}
