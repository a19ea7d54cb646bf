package contact

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	from    string
	name    string
	body    string
	sends   int
	sendErr error
}

func (m *fakeMailer) SendPasswordReset(context.Context, string, string) error { return nil }
func (m *fakeMailer) SendLoginLink(context.Context, string, string) error     { return nil }

func (m *fakeMailer) SendContact(_ context.Context, fromEmail, name, body string) error {
	if m.sendErr != nil {
		return m.sendErr
	}

	m.from = fromEmail
	m.name = name
	m.body = body
	m.sends++
	return nil
}

func doSubmit(mail *fakeMailer, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"), mail)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSubmitHandler(t *testing.T) {
	mail := &fakeMailer{}

	w := doSubmit(mail, `{"name":"Ada","email":"ada@x.com","message":"hello there"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, mail.sends)
	assert.Equal(t, "ada@x.com", mail.from)
	assert.Equal(t, "hello there", mail.body)
}

func TestSubmitHandler_HoneypotDropsSilently(t *testing.T) {
	mail := &fakeMailer{}

	w := doSubmit(mail, `{"name":"Bot","email":"bot@x.com","message":"spam","website":"https://spam.example"}`)

	// same response as a real submission, but nothing is sent
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), sentMessage)
	assert.Zero(t, mail.sends)
}

func TestSubmitHandler_BadEmail(t *testing.T) {
	mail := &fakeMailer{}

	w := doSubmit(mail, `{"name":"Ada","email":"nope","message":"hello"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, mail.sends)
}
