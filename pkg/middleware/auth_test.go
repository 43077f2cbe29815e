package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestExtractBearerAcceptsCaseInsensitivePrefix(t *testing.T) {
	token, ok := ExtractBearer("Bearer my-secret")
	require.True(t, ok)
	require.Equal(t, "my-secret", token)

	token, ok = ExtractBearer("bearer my-secret")
	require.True(t, ok)
	require.Equal(t, "my-secret", token)
}

func TestExtractBearerRejectsOtherSchemes(t *testing.T) {
	_, ok := ExtractBearer("Basic dXNlcjpwYXNz")
	require.False(t, ok)
}

func TestBearerAuthNoHeaderForbidden(t *testing.T) {
	g := gin.New()
	g.GET("/", BearerAuth("secret-string"), func(c *gin.Context) { c.Status(http.StatusOK) })
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)
	require.Equal(t, http.StatusForbidden, rw.Code)
}

func TestBearerAuthWrongTokenForbidden(t *testing.T) {
	g := gin.New()
	g.GET("/", BearerAuth("secret-string"), func(c *gin.Context) { c.Status(http.StatusOK) })
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer other-string")
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)
	require.Equal(t, http.StatusForbidden, rw.Code)
}

func TestBearerAuthCorrectTokenPasses(t *testing.T) {
	g := gin.New()
	g.GET("/", BearerAuth("secret-string"), func(c *gin.Context) { c.Status(http.StatusOK) })
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer secret-string")
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)
	require.Equal(t, http.StatusOK, rw.Code)
}

func TestBearerAuthDisabledWhenSecretEmpty(t *testing.T) {
	g := gin.New()
	g.GET("/", BearerAuth(""), func(c *gin.Context) { c.Status(http.StatusOK) })
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)
	require.Equal(t, http.StatusOK, rw.Code)
}
