package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/college-portal-api/internal/models"
	appErrors "github.com/noah-isme/college-portal-api/pkg/errors"
)

type stubValidator map[string]*models.JWTClaims

func (s stubValidator) ValidateToken(token string) (*models.JWTClaims, error) {
	if claims, ok := s[token]; ok {
		return claims, nil
	}
	return nil, appErrors.Clone(appErrors.ErrUnauthorized, "Invalid or expired token")
}

func newRouter(guards ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append(guards, func(c *gin.Context) {
		role := ""
		if claims, ok := CurrentUser(c); ok {
			role = string(claims.Role)
		}
		c.JSON(http.StatusOK, gin.H{"role": role})
	})
	r.GET("/", handlers...)
	return r
}

func do(r *gin.Engine, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

var tokens = stubValidator{
	"student-token":   {UserID: "u1", Role: models.RoleStudent},
	"principal-token": {UserID: "u2", Role: models.RolePrincipal},
}

func TestJWT(t *testing.T) {
	r := newRouter(JWT(tokens))

	rec := do(r, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Access token required", body["error"])

	assert.Equal(t, http.StatusUnauthorized, do(r, "Basic abc").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "Bearer forged").Code)

	rec = do(r, "bearer student-token")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"role":"student"}`, rec.Body.String())
}

func TestOptionalJWT(t *testing.T) {
	r := newRouter(OptionalJWT(tokens))

	assert.JSONEq(t, `{"role":""}`, do(r, "").Body.String())
	assert.JSONEq(t, `{"role":""}`, do(r, "Bearer forged").Body.String())
	assert.JSONEq(t, `{"role":"principal"}`, do(r, "Bearer principal-token").Body.String())
}

func TestRequireRoles(t *testing.T) {
	r := newRouter(JWT(tokens), RequireRoles(models.RoleLecturer, models.RolePrincipal))

	assert.Equal(t, http.StatusForbidden, do(r, "Bearer student-token").Code)
	assert.Equal(t, http.StatusOK, do(r, "Bearer principal-token").Code)

	unauthenticated := newRouter(RequireRoles(models.RolePrincipal))
	assert.Equal(t, http.StatusUnauthorized, do(unauthenticated, "").Code)
}

func TestSetCacheHit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	SetCacheHit(c, true)
	assert.Equal(t, "HIT", rec.Header().Get(CacheHeader))

	rec = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(rec)
	SetCacheHit(c, false)
	assert.Equal(t, "MISS", rec.Header().Get(CacheHeader))
}
