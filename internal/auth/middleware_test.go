package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/agentic/server/agentic/users"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// in-memory stand-in for the users repository
type fakeUserFinder struct {
	users map[string]*users.User
}

func (f *fakeUserFinder) FindByID(_ context.Context, userID string) (*users.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, users.ErrNotFound
	}
	return user, nil
}

func newAuthRouter(finder UserFinder) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/protected", Middleware(finder), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{
			"user_id": userID,
			"role":    c.GetString("user_role"),
		})
	})

	return router
}

func TestMiddleware_NoToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing")

	router := newAuthRouter(&fakeUserFinder{users: map[string]*users.User{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddleware_CookieToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing")

	user := testUser()
	router := newAuthRouter(&fakeUserFinder{users: map[string]*users.User{user.ID: user}})

	token, err := GenerateJWT(user)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.ID)
}

func TestMiddleware_BearerFallback(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing")

	user := testUser()
	router := newAuthRouter(&fakeUserFinder{users: map[string]*users.User{user.ID: user}})

	token, err := GenerateJWT(user)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMiddleware_DeletedUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing")

	user := testUser()

	// token is valid but the row is gone: the session must read as anonymous
	router := newAuthRouter(&fakeUserFinder{users: map[string]*users.User{}})

	token, err := GenerateJWT(user)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddleware_RoleComesFromStore(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing")

	user := testUser()
	token, err := GenerateJWT(user)
	require.NoError(t, err)

	// role changed in the store after the token was issued
	promoted := *user
	promoted.Role = "admin"
	router := newAuthRouter(&fakeUserFinder{users: map[string]*users.User{user.ID: &promoted}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"admin"`, "stale cookie role must not win over the store")
}

func TestMiddleware_GarbageToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing")

	router := newAuthRouter(&fakeUserFinder{users: map[string]*users.User{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "garbage"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
