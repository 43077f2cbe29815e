package middleware

import (
	"crypto/subtle"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
)

var bearerPattern = regexp.MustCompile(`^(?i:bearer) (.*)$`)

// ExtractBearer returns the token carried by a case-insensitive "bearer "
// prefixed Authorization header value, or ("", false) if the header doesn't
// match that shape.
func ExtractBearer(header string) (string, bool) {
	m := bearerPattern.FindStringSubmatch(header)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// BearerAuth returns a Gin middleware that rejects requests whose bearer
// token does not byte-for-byte equal secret. When secret is empty, auth is
// disabled entirely and every request passes.
func BearerAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}
		token, ok := ExtractBearer(c.GetHeader("Authorization"))
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
