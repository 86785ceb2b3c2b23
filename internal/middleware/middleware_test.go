package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/javajoker/games-api/internal/i18n"
	"github.com/javajoker/games-api/internal/models"
	"github.com/javajoker/games-api/internal/services"
	"github.com/javajoker/games-api/internal/testutil"
	"github.com/javajoker/games-api/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := i18n.Initialize("en"); err != nil {
		panic(err)
	}
}

func echoIdentity(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c)
	sessionID, _ := utils.GetSessionIDFromContext(c)
	c.JSON(http.StatusOK, gin.H{"user_id": userID, "session_id": sessionID})
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPreferredLanguage(t *testing.T) {
	assert.Equal(t, "zh_TW", preferredLanguage("zh-TW,zh;q=0.9,en;q=0.8"))
	assert.Equal(t, "en", preferredLanguage("fr-FR,en-US;q=0.8"))
	assert.Equal(t, "en", preferredLanguage("de"))
	assert.Equal(t, "en", preferredLanguage(""))
}

func TestAuthRequired(t *testing.T) {
	utils.SetJWTSecret("middleware-secret")
	r := gin.New()
	r.Use(I18nMiddleware())
	r.GET("/me", AuthRequired(), echoIdentity)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	w := serve(r, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Authentication required"}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Token abc")
	assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)

	token, err := utils.GenerateSessionJWT(3, "alyx", "sess-1", 1)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":3,"session_id":"sess-1"}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: utils.SessionCookie, Value: token})
	assert.Equal(t, http.StatusOK, serve(r, req).Code)
}

func TestAuthRequired_Translated(t *testing.T) {
	r := gin.New()
	r.Use(I18nMiddleware())
	r.GET("/me", AuthRequired(), echoIdentity)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Accept-Language", "zh-TW")
	w := serve(r, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"需要登入"}`, w.Body.String())
}

func TestAPIKeyRequired(t *testing.T) {
	db := testutil.NewTestDB(t)
	authService := services.NewAuthService(db, testutil.NewTestConfig())

	user := &models.User{Username: "vortigaunt", Email: "vort@example.com"}
	require.NoError(t, user.SetPassword("nihilanth1"))
	require.NoError(t, db.Create(user).Error)
	issued, err := authService.IssueAccessToken(context.Background(), user.ID, "sess-9")
	require.NoError(t, err)

	open := gin.New()
	open.GET("/api/tags", APIKeyRequired(authService, false), echoIdentity)
	assert.Equal(t, http.StatusOK, serve(open, httptest.NewRequest(http.MethodGet, "/api/tags", nil)).Code)

	guarded := gin.New()
	guarded.GET("/api/tags", APIKeyRequired(authService, true), echoIdentity)

	w := serve(guarded, httptest.NewRequest(http.MethodGet, "/api/tags", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
	req.Header.Set("X-API-Key", "gk_"+"0000000000000000000000000000000000000000")
	assert.Equal(t, http.StatusUnauthorized, serve(guarded, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/api/tags", nil)
	req.Header.Set("X-API-Key", issued.APIKey)
	w = serve(guarded, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"session_id":"sess-9"`)

	req = httptest.NewRequest(http.MethodGet, "/api/tags?api_key="+issued.APIKey, nil)
	assert.Equal(t, http.StatusOK, serve(guarded, req).Code)
}

func TestRateLimiter(t *testing.T) {
	r := gin.New()
	r.Use(NewRateLimiter(rate.Every(time.Hour), 2).Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusNoContent, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	}
	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)
}

func TestRateLimitDisabled(t *testing.T) {
	r := gin.New()
	r.Use(GeneralRateLimit(testutil.NewTestConfig().RateLimit))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 50; i++ {
		require.Equal(t, http.StatusNoContent, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), RequestLogger(), Metrics())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get("X-Request-ID")
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = serve(r, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}
