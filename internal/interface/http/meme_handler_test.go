package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imagegenhub/imagegenhub/internal/application"
	"github.com/imagegenhub/imagegenhub/internal/infrastructure/memory"
	"github.com/imagegenhub/imagegenhub/internal/infrastructure/session"
	"github.com/imagegenhub/imagegenhub/internal/interface/middleware"
	"github.com/imagegenhub/imagegenhub/pkg/helpers"
	"github.com/imagegenhub/imagegenhub/pkg/validation"
)

type testServer struct {
	engine *gin.Engine
	auth   *application.AuthService
	memes  *application.MemeService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	notifier := application.NewNotifier()
	store := session.NewFileStore(filepath.Join(t.TempDir(), "session.json"), logger)
	authSvc := application.NewAuthService(store, notifier, logger, 0)

	repo := memory.NewMemeRepository()
	require.NoError(t, memory.LoadSeed(repo, ""))
	memeSvc := application.NewMemeService(repo, authSvc, notifier, logger, 0)

	jwtManager := helpers.NewJWTManager("testaccess", "testrefresh", time.Hour, time.Hour)
	ah := NewAuthHandler(authSvc, jwtManager, logger, "localhost", false)
	mh := NewMemeHandler(memeSvc, logger)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/login", ah.Login)
	api.POST("/register", ah.Register)
	api.GET("/session", ah.Session)
	api.GET("/memes", mh.List)
	api.GET("/memes/:id", mh.Get)
	api.GET("/featured-memes", mh.Featured)
	api.GET("/meme-of-the-day", mh.MemeOfTheDay)
	api.GET("/users/:id/memes", mh.ListByUser)

	auth := api.Group("/")
	auth.Use(middleware.Auth(jwtManager))
	{
		auth.POST("/logout", ah.Logout)
		auth.POST("/memes", mh.Create)
		auth.POST("/memes/:id/vote", mh.Vote)
		auth.POST("/memes/:id/comments", mh.Comment)
		auth.POST("/memes/:id/flag", mh.Flag)
	}

	return &testServer{engine: r, auth: authSvc, memes: memeSvc}
}

func (ts *testServer) do(t *testing.T, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	ts.engine.ServeHTTP(w, req)
	return w
}

func (ts *testServer) login(t *testing.T, email string) []*http.Cookie {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/api/login", `{"email":"`+email+`","password":"pw"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestLoginSetsCookiesAndReturnsIdentity(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, http.MethodPost, "/api/login", `{"email":"dev@example.com","password":"pw"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	data := body["data"].(map[string]any)
	assert.Equal(t, "dev", data["username"])

	var names []string
	for _, c := range w.Result().Cookies() {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "access_token")
	assert.Contains(t, names, "refresh_token")
}

func TestLoginRejectsBadPayload(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, http.MethodPost, "/api/login", `{"email":"not-an-email","password":"pw"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVoteWithoutCookieIsUnauthorized(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, http.MethodPost, "/api/memes/1/vote", `{"direction":"up"}`, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "must be logged in", body["message"])
}

func TestVoteFlow(t *testing.T) {
	ts := newTestServer(t)
	cookies := ts.login(t, "dev@example.com")

	w := ts.do(t, http.MethodPost, "/api/memes/1/vote", `{"direction":"up"}`, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	m, err := ts.memes.GetByID("1")
	require.NoError(t, err)
	assert.Equal(t, 351, m.Upvotes)

	// unknown direction is caught by binding
	w = ts.do(t, http.MethodPost, "/api/memes/1/vote", `{"direction":"sideways"}`, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// unknown meme id is advisory, not a crash
	w = ts.do(t, http.MethodPost, "/api/memes/nope/vote", `{"direction":"up"}`, cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommentValidationMessages(t *testing.T) {
	ts := newTestServer(t)
	cookies := ts.login(t, "dev@example.com")

	w := ts.do(t, http.MethodPost, "/api/memes/1/comments", `{"text":"   "}`, cookies)
	require.Equal(t, http.StatusBadRequest, w.Code)
	empty := decode(t, w)["message"]

	long := strings.Repeat("x", 141)
	w = ts.do(t, http.MethodPost, "/api/memes/1/comments", `{"text":"`+long+`"}`, cookies)
	require.Equal(t, http.StatusBadRequest, w.Code)
	overLength := decode(t, w)["message"]

	assert.NotEqual(t, empty, overLength)

	w = ts.do(t, http.MethodPost, "/api/memes/1/comments", `{"text":"nice one"}`, cookies)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateMemeFlow(t *testing.T) {
	ts := newTestServer(t)
	cookies := ts.login(t, "dev@example.com")

	w := ts.do(t, http.MethodPost, "/api/memes", `{"image_url":"https://example.com/x.png","top_text":"A","tags":["go"]}`, cookies)
	require.Equal(t, http.StatusCreated, w.Code)

	data := decode(t, w)["data"].(map[string]any)
	creator := data["creator"].(map[string]any)
	assert.Equal(t, "dev", creator["username"])

	// new meme leads the "new" listing
	w = ts.do(t, http.MethodGet, "/api/memes?mode=new", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode(t, w)["data"].([]any)
	first := list[0].(map[string]any)
	assert.Equal(t, data["id"], first["id"])
}

func TestListRejectsUnknownMode(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, http.MethodGet, "/api/memes?mode=bogus", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFeaturedAndMemeOfTheDay(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/featured-memes", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode(t, w)["data"].([]any)
	assert.Len(t, list, 3)

	w = ts.do(t, http.MethodGet, "/api/meme-of-the-day", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	motd := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "1", motd["id"]) // the seeded featured meme
}

func TestFlagFlow(t *testing.T) {
	ts := newTestServer(t)
	cookies := ts.login(t, "dev@example.com")

	w := ts.do(t, http.MethodPost, "/api/memes/1/flag", `{"reason":"nah"}`, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPost, "/api/memes/1/flag", `{"reason":"this is offensive"}`, cookies)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionEndpoint(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/session", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, false, data["authenticated"])

	ts.login(t, "dev@example.com")
	w = ts.do(t, http.MethodGet, "/api/session", "", nil)
	data = decode(t, w)["data"].(map[string]any)
	assert.Equal(t, true, data["authenticated"])
}
