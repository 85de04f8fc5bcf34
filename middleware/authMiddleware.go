package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// UserIDKey is the gin context key holding the authenticated user id.
const UserIDKey = "uid"

type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Authenticate requires a valid bearer token. The legacy bare "token" header is accepted too.
func Authenticate(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientToken := bearerToken(c.GetHeader("Authorization"))
		if clientToken == "" {
			clientToken = c.GetHeader("token")
		}
		if clientToken == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access Denied"})
			return
		}

		uid, err := verifier.Verify(clientToken)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Token"})
			return
		}

		c.Set(UserIDKey, uid)
		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
