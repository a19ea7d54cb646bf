package auth

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"codeberg.org/agentic/server/agentic/users"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const tokenLifetime = 7 * 24 * time.Hour

// creates a signed session token snapshotting the user's claims
func GenerateJWT(user *users.User) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", fmt.Errorf("JWT_SECRET not set")
	}

	avatarURL := ""
	if user.AvatarURL != nil {
		avatarURL = *user.AvatarURL
	}

	claims := Claims{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		AvatarURL: avatarURL,
		Role:      user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// validates a session token and returns the claims.
// Pure: no side effects, no store access.
func ValidateJWT(tokenString string) (*Claims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET not set")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// delivers the session token as an HTTP-only cookie
func SetSessionCookie(c *gin.Context, token string) {
	secure := os.Getenv("ENVIRONMENT") == "production"

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(tokenLifetime.Seconds()), "/", "", secure, true)
}

// expires the session cookie
func ClearSessionCookie(c *gin.Context) {
	secure := os.Getenv("ENVIRONMENT") == "production"

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", secure, true)
}

// extracts the raw token from the session cookie, falling back to a
// Bearer Authorization header for non-browser clients
func TokenFromRequest(c *gin.Context) (string, bool) {
	if token, err := c.Cookie(CookieName); err == nil && token != "" {
		return token, true
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}

	return parts[1], true
}
