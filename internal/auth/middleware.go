package auth

import (
	"errors"

	"codeberg.org/agentic/server/agentic/users"
	apierrors "codeberg.org/agentic/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// validates the session token and re-verifies the principal against the
// store before any handler runs. A syntactically valid token whose user row
// is gone (deleted account) is treated as anonymous. Role and email are set
// from the fresh row, never from the cookie snapshot.
func Middleware(userRepo UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := TokenFromRequest(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		claims, err := ValidateJWT(token)
		if err != nil {
			apierrors.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		user, err := userRepo.FindByID(c.Request.Context(), claims.UserID)
		if errors.Is(err, users.ErrNotFound) {
			apierrors.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		if err != nil {
			apierrors.InternalError(c, "failed to verify session", err)
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user_email", user.Email)
		c.Set("user_role", user.Role)

		c.Next()
	}
}

// extracts user_id from context after Middleware
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")

	if !exists {
		return "", false
	}

	return userID.(string), true
}

// extracts user_email from context after Middleware
func GetUserEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get("user_email")

	if !exists {
		return "", false
	}

	return email.(string), true
}
