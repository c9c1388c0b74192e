package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/open2log/shopping-lists/internal/auth"
)

const (
	// IdentityHeader carries the caller's user ID, set by the upstream
	// gateway after it has authenticated the request. The value is opaque:
	// it is checked for presence only, never for format or existence.
	IdentityHeader = "X-User-Id"

	// userIDKey is the gin context key for the resolved identity.
	userIDKey = "user_id"
)

// GetUserID extracts the authenticated user ID from the request context.
// Returns empty string if not set.
func GetUserID(c *gin.Context) string {
	userID, _ := c.Value(userIDKey).(string)
	return userID
}

// RequireIdentity resolves the caller identity and aborts with 400 when none
// is present, before any handler or store access runs.
//
// The identity header always wins. When jwtManager is non-nil, a request
// without the header may instead present "Authorization: Bearer <token>" and
// the token's user_id claim becomes the identity; this covers clients that
// talk to the service directly rather than through the gateway. An invalid
// bearer token is treated the same as a missing identity.
func RequireIdentity(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(IdentityHeader)

		if userID == "" && jwtManager != nil {
			if token, ok := bearerToken(c.GetHeader("Authorization")); ok {
				if claims, err := jwtManager.Validate(token); err == nil {
					userID = claims.UserID
				}
			}
		}

		if userID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": auth.ErrMissingIdentity.Error(),
			})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}
