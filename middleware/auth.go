package middleware

import (
	"errors"
	"strings"

	"notesapp/services"
	"notesapp/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	UserIDKey = "user_id"
	ClaimsKey = "claims"
)

// TokenVerifier is satisfied by services.TokenManager.
type TokenVerifier interface {
	Verify(token string) (*services.SessionClaims, error)
}

// AuthMiddleware rejects the request with 401 unless it carries a valid
// bearer token. On success the account id is stored under UserIDKey.
func AuthMiddleware(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get the token from the header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.TrackAuthAttempt("failure", "token")
			utils.Unauthorized(c, "Missing or invalid token")
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			utils.TrackAuthAttempt("failure", "token")
			if errors.Is(err, jwt.ErrTokenExpired) {
				utils.Unauthorized(c, "Token has expired")
			} else {
				utils.Unauthorized(c, "Invalid token")
			}
			c.Abort()
			return
		}

		// Set user ID in context for use in handlers
		c.Set(UserIDKey, claims.User.ID)
		c.Set(ClaimsKey, claims)

		if claims.IssuedAt != nil {
			c.Set("token_issued_at", claims.IssuedAt.Time)
		}

		c.Next()
	}
}

// CurrentUserID returns the account id set by AuthMiddleware.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
