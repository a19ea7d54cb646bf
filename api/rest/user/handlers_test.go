package user

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"codeberg.org/agentic/server/agentic/users"
	"codeberg.org/agentic/server/internal/identity"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserStore struct {
	user         *users.User
	findErr      error
	updatedName  string
	updatedURL   string
	passwordHash string
	deleteErr    error
	deleted      bool
}

func (s *fakeUserStore) FindByID(_ context.Context, _ string) (*users.User, error) {
	return s.user, s.findErr
}

func (s *fakeUserStore) UpdateName(_ context.Context, _, name string) (*users.User, error) {
	s.updatedName = name
	u := *s.user
	u.Name = name
	return &u, nil
}

func (s *fakeUserStore) UpdateAvatar(_ context.Context, _, avatarURL string) (*users.User, error) {
	s.updatedURL = avatarURL
	u := *s.user
	u.AvatarURL = &avatarURL
	return &u, nil
}

func (s *fakeUserStore) UpdatePassword(_ context.Context, _, passwordHash string) error {
	s.passwordHash = passwordHash
	return nil
}

func (s *fakeUserStore) Delete(_ context.Context, _ string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = true
	return nil
}

type fakeObjStore struct {
	key  string
	mime string
	size int
}

func (s *fakeObjStore) Put(_ context.Context, key, contentType string, data []byte) (string, error) {
	s.key = key
	s.mime = contentType
	s.size = len(data)
	return "https://cdn.example.com/" + key, nil
}

func asPrincipal(userID string) gin.HandlerFunc {
	return func(c *gin.Context) { c.Set("user_id", userID) }
}

func passwordUser(t *testing.T, password string) *users.User {
	t.Helper()

	hash, err := identity.HashPassword(password)
	require.NoError(t, err)

	return &users.User{ID: "user-1", Email: "ada@x.com", Name: "Ada", PasswordHash: &hash, Role: "member"}
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestChangePasswordHandler_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := &fakeUserStore{user: passwordUser(t, "oldpassword")}
	router := gin.New()
	router.POST("/change-password", asPrincipal("user-1"), ChangePasswordHandler(store))

	w := doJSON(router, http.MethodPost, "/change-password", `{"current_password":"oldpassword","new_password":"newpassword"}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, store.passwordHash)
	assert.True(t, identity.CheckPassword("newpassword", store.passwordHash))
}

func TestChangePasswordHandler_WrongCurrent(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := &fakeUserStore{user: passwordUser(t, "oldpassword")}
	router := gin.New()
	router.POST("/change-password", asPrincipal("user-1"), ChangePasswordHandler(store))

	w := doJSON(router, http.MethodPost, "/change-password", `{"current_password":"not-it","new_password":"newpassword"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, store.passwordHash, "password must not change")
}

func TestChangePasswordHandler_NoPasswordSet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// account created through an OAuth provider, no hash on the row
	store := &fakeUserStore{user: &users.User{ID: "user-1", Email: "ada@x.com", Role: "member"}}
	router := gin.New()
	router.POST("/change-password", asPrincipal("user-1"), ChangePasswordHandler(store))

	w := doJSON(router, http.MethodPost, "/change-password", `{"current_password":"anything","new_password":"newpassword"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateNameHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := &fakeUserStore{user: passwordUser(t, "pw-irrelevant")}
	router := gin.New()
	router.POST("/update-name", asPrincipal("user-1"), UpdateNameHandler(store))

	w := doJSON(router, http.MethodPost, "/update-name", `{"name":"  Grace  "}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Grace", store.updatedName, "name is trimmed")
}

func TestUpdateNameHandler_Blank(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := &fakeUserStore{user: passwordUser(t, "pw-irrelevant")}
	router := gin.New()
	router.POST("/update-name", asPrincipal("user-1"), UpdateNameHandler(store))

	w := doJSON(router, http.MethodPost, "/update-name", `{"name":"   "}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func avatarUpload(t *testing.T, field string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile(field, "avatar.png")
	require.NoError(t, err)

	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func pngBytes(size int) []byte {
	data := make([]byte, size)
	copy(data, []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a})
	return data
}

func TestUpdateProfileHandler_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := &fakeUserStore{user: passwordUser(t, "pw-irrelevant")}
	objects := &fakeObjStore{}
	router := gin.New()
	router.POST("/update-profile", asPrincipal("user-1"), UpdateProfileHandler(store, objects, 5*1024*1024))

	body, contentType := avatarUpload(t, "image", pngBytes(2048))
	req := httptest.NewRequest(http.MethodPost, "/update-profile", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", objects.mime)
	assert.Equal(t, 2048, objects.size)
	assert.Contains(t, objects.key, "avatars/user-1")
	assert.Equal(t, "https://cdn.example.com/"+objects.key, store.updatedURL)
}

func TestUpdateProfileHandler_TooLarge(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := &fakeUserStore{user: passwordUser(t, "pw-irrelevant")}
	objects := &fakeObjStore{}
	router := gin.New()
	router.POST("/update-profile", asPrincipal("user-1"), UpdateProfileHandler(store, objects, 1024))

	body, contentType := avatarUpload(t, "image", pngBytes(4096))
	req := httptest.NewRequest(http.MethodPost, "/update-profile", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Empty(t, objects.key, "nothing was stored")
	assert.Empty(t, store.updatedURL, "avatar stays unchanged")
}

func TestUpdateProfileHandler_NotAnImage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := &fakeUserStore{user: passwordUser(t, "pw-irrelevant")}
	objects := &fakeObjStore{}
	router := gin.New()
	router.POST("/update-profile", asPrincipal("user-1"), UpdateProfileHandler(store, objects, 5*1024*1024))

	body, contentType := avatarUpload(t, "image", []byte("%PDF-1.7 definitely a document"))
	req := httptest.NewRequest(http.MethodPost, "/update-profile", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, objects.key)
}

func TestDeleteAccountHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := &fakeUserStore{user: passwordUser(t, "pw-irrelevant")}
	router := gin.New()
	router.DELETE("/delete-account", asPrincipal("user-1"), DeleteAccountHandler(store))

	req := httptest.NewRequest(http.MethodDelete, "/delete-account", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, store.deleted)
}

func TestDeleteAccountHandler_AlreadyGone(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := &fakeUserStore{deleteErr: users.ErrNotFound}
	router := gin.New()
	router.DELETE("/delete-account", asPrincipal("user-1"), DeleteAccountHandler(store))

	req := httptest.NewRequest(http.MethodDelete, "/delete-account", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
