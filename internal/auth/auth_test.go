package auth

import (
	"os"
	"strings"
	"testing"
	"time"

	"codeberg.org/agentic/server/agentic/users"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *users.User {
	avatar := "https://cdn.example.com/avatars/ada.png"

	return &users.User{
		ID:        "user-123",
		Email:     "ada@example.com",
		Name:      "Ada",
		AvatarURL: &avatar,
		Role:      "member",
	}
}

func TestGenerateJWT_Success(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing")

	token, err := GenerateJWT(testUser())

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, 3, len(strings.Split(token, ".")), "JWT should have 3 parts")
}

func TestGenerateJWT_MissingSecret(t *testing.T) {
	os.Unsetenv( //nolint:errcheck // test cleanup
	"JWT_SECRET")

	_, err := GenerateJWT(testUser())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET not set")
}

func TestValidateJWT_ValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing")

	token, err := GenerateJWT(testUser())
	require.NoError(t, err)

	claims, err := ValidateJWT(token)

	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "Ada", claims.Name)
	assert.Equal(t, "https://cdn.example.com/avatars/ada.png", claims.AvatarURL)
	assert.Equal(t, "member", claims.Role)
}

func TestGenerateJWT_NilAvatar(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing")

	user := testUser()
	user.AvatarURL = nil

	token, err := GenerateJWT(user)
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Empty(t, claims.AvatarURL)
}

func TestValidateJWT_ExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing")

	claims := Claims{
		UserID: "user-123",
		Email:  "ada@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte("test-secret-key-for-testing"))
	require.NoError(t, err)

	_, err = ValidateJWT(tokenString)

	assert.Error(t, err, "expired token should be rejected")
}

func TestValidateJWT_TamperedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing")

	token, err := GenerateJWT(testUser())
	require.NoError(t, err)

	tamperedToken := token[:len(token)-5] + "XXXXX"

	_, err = ValidateJWT(tamperedToken)
	assert.Error(t, err, "tampered token should be rejected")
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing")
	token, err := GenerateJWT(testUser())
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "different-secret-key")

	_, err = ValidateJWT(token)

	assert.Error(t, err, "token signed with different secret should be rejected")
}

func TestValidateJWT_AlgorithmConfusionAttack(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing")

	claims := Claims{
		UserID: "attacker",
		Email:  "attacker@evil.com",
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	tokenString, _ := token.SignedString(jwt.UnsafeAllowNoneSignatureType) //nolint:errcheck // test code

	_, err := ValidateJWT(tokenString)
	assert.Error(t, err, "token with 'none' algorithm should be rejected")
}

func TestValidateJWT_MalformedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing")

	malformedTokens := []string{
		"",
		"not.a.jwt",
		"only.two",
		"too.many.parts.in.this.token",
		"<script>alert('xss')</script>",
	}

	for _, token := range malformedTokens {
		_, err := ValidateJWT(token)
		assert.Error(t, err, "malformed token '%s' should be rejected", token)
	}
}

func TestJWT_TokenExpiration(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing")

	token, err := GenerateJWT(testUser())
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)

	expectedExpiry := time.Now().Add(tokenLifetime)
	timeDiff := claims.ExpiresAt.Time.Sub(expectedExpiry).Abs()

	assert.Less(t, timeDiff, 5*time.Second, "expiration should be approximately 7 days from now")
}
