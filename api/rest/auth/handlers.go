package auth

import (
	"errors"
	"net/http"
	"slices"
	"time"

	"codeberg.org/agentic/server/agentic/logintokens"
	"codeberg.org/agentic/server/agentic/users"
	"codeberg.org/agentic/server/internal/auth"
	apierrors "codeberg.org/agentic/server/internal/errors"
	"codeberg.org/agentic/server/internal/identity"
	"codeberg.org/agentic/server/internal/logger"
	"codeberg.org/agentic/server/internal/mailer"
	"codeberg.org/agentic/server/internal/validators"
	"github.com/gin-gonic/gin"
	"github.com/markbates/goth/gothic"
)

const resetTokenTTL = time.Hour

// the one body both magic-link and forgot-password return, regardless of
// whether the address belongs to an account
const checkInboxMessage = "if that address has an account, an email is on its way"

// SignupHandler godoc
// @Summary Create a password-based account
// @Description Register with name, email and password. Signs the new user in.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Account details"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /api/v1/auth/signup [post]
func SignupHandler(userStore UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.ValidationError(c, err)
			return
		}

		if err := validators.EmailValidator(req.Email); err != nil {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}

		if err := validators.PasswordValidator(req.Password); err != nil {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}

		hash, err := identity.HashPassword(req.Password)
		if err != nil {
			apierrors.InternalError(c, "failed to create account", err)
			return
		}

		user, err := userStore.Create(c.Request.Context(), req.Email, req.Name, &hash, nil)

		if errors.Is(err, users.ErrEmailTaken) {
			apierrors.Conflict(c, "an account with this email already exists")
			return
		}

		if err != nil {
			apierrors.InternalError(c, "failed to create account", err)
			return
		}

		if !issueSession(c, user) {
			return
		}

		c.JSON(http.StatusCreated, AuthResponse{User: user})
	}
}

// SignInHandler godoc
// @Summary Sign in with email and password
// @Description Password sign-in. Failures are not differentiated.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignInRequest true "Credentials"
// @Success 200 {object} AuthResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/auth/sign-in [post]
func SignInHandler(resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignInRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.ValidationError(c, err)
			return
		}

		user, err := resolver.Resolve(c.Request.Context(), identity.Password{
			Email:    req.Email,
			Password: req.Password,
		})

		if errors.Is(err, identity.ErrInvalidCredentials) {
			apierrors.InvalidCredentials(c)
			return
		}

		if err != nil {
			apierrors.InternalError(c, "sign-in failed", err)
			return
		}

		if !issueSession(c, user) {
			return
		}

		c.JSON(http.StatusOK, AuthResponse{User: user})
	}
}

// BeginAuthHandler godoc
// @Summary Start OAuth authentication
// @Description Begin OAuth authentication flow with specified provider (google, github)
// @Tags auth
// @Param provider path string true "OAuth provider" Enums(google, github)
// @Success 302 {string} string "Redirect to OAuth provider"
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/v1/auth/{provider} [get]
func BeginAuthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		provider := c.Param("provider")

		if !isValidProvider(provider) {
			apierrors.BadRequest(c, "invalid provider", nil)
			return
		}

		// set provider in query for gothic
		q := c.Request.URL.Query()
		q.Add("provider", provider)
		c.Request.URL.RawQuery = q.Encode()

		gothic.BeginAuthHandler(c.Writer, c.Request)
	}
}

// CallbackHandler godoc
// @Summary OAuth callback
// @Description OAuth provider callback. Resolves or creates the user and signs them in.
// @Tags auth
// @Produce json
// @Param provider path string true "OAuth provider" Enums(google, github)
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/auth/{provider}/callback [get]
func CallbackHandler(resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		provider := c.Param("provider")

		q := c.Request.URL.Query()
		q.Add("provider", provider)
		c.Request.URL.RawQuery = q.Encode()

		gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
		if err != nil {
			apierrors.InternalError(c, "authentication failed", err)
			return
		}

		user, err := resolver.Resolve(c.Request.Context(), identity.OAuthAssertion{
			Provider:          gothUser.Provider,
			ProviderAccountID: gothUser.UserID,
			Email:             gothUser.Email,
			Name:              gothUser.Name,
			AvatarURL:         gothUser.AvatarURL,
			AccessToken:       gothUser.AccessToken,
		})

		if err != nil {
			apierrors.InternalError(c, "failed to resolve user", err)
			return
		}

		if !issueSession(c, user) {
			return
		}

		c.JSON(http.StatusOK, AuthResponse{User: user})
	}
}

// MagicLinkRequestHandler godoc
// @Summary Request a sign-in link
// @Description Emails a single-use sign-in link. The response body is the same whether or not the address has an account.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body EmailRequest true "Email address"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/v1/auth/magic-link [post]
func MagicLinkRequestHandler(tokenStore TokenStore, mail mailer.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EmailRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.ValidationError(c, err)
			return
		}

		if err := validators.EmailValidator(req.Email); err != nil {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}

		raw, hash, err := identity.NewSingleUseToken()
		if err != nil {
			apierrors.InternalError(c, "failed to create sign-in link", err)
			return
		}

		expires := time.Now().Add(logintokens.TokenTTLMinutes * time.Minute)
		if err := tokenStore.Create(c.Request.Context(), req.Email, hash, expires); err != nil {
			apierrors.InternalError(c, "failed to create sign-in link", err)
			return
		}

		if err := mail.SendLoginLink(c.Request.Context(), req.Email, raw); err != nil {
			// the body must stay identical; delivery problems are server-side only
			logger.ErrorErr(err, "failed to send sign-in link", "email", req.Email)
		}

		c.JSON(http.StatusOK, MessageResponse{Message: checkInboxMessage})
	}
}

// MagicLinkVerifyHandler godoc
// @Summary Verify a sign-in link
// @Description Consumes a single-use token from an emailed link and signs the user in, creating the account on first use.
// @Tags auth
// @Produce json
// @Param token query string true "Raw token from the emailed link"
// @Success 200 {object} AuthResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/auth/magic-link/verify [get]
func MagicLinkVerifyHandler(resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			apierrors.BadRequest(c, "missing token", nil)
			return
		}

		user, err := resolver.Resolve(c.Request.Context(), identity.MagicToken{Token: token})

		if errors.Is(err, identity.ErrTokenInvalid) {
			apierrors.InvalidOrExpired(c, http.StatusUnauthorized)
			return
		}

		if err != nil {
			apierrors.InternalError(c, "sign-in failed", err)
			return
		}

		if !issueSession(c, user) {
			return
		}

		c.JSON(http.StatusOK, AuthResponse{User: user})
	}
}

// ForgotPasswordHandler godoc
// @Summary Request a password reset link
// @Description Emails a reset link. The response body is byte-identical whether or not the address has an account.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body EmailRequest true "Email address"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/v1/auth/forgot-password [post]
func ForgotPasswordHandler(userStore UserStore, mail mailer.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EmailRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.ValidationError(c, err)
			return
		}

		if err := validators.EmailValidator(req.Email); err != nil {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}

		raw, hash, err := identity.NewSingleUseToken()
		if err != nil {
			apierrors.InternalError(c, "failed to process request", err)
			return
		}

		err = userStore.SetResetToken(c.Request.Context(), req.Email, hash, time.Now().Add(resetTokenTTL))

		switch {
		case errors.Is(err, users.ErrNotFound):
			// unknown address: same body, no email, no hint

		case err != nil:
			apierrors.InternalError(c, "failed to process request", err)
			return

		default:
			if err := mail.SendPasswordReset(c.Request.Context(), req.Email, raw); err != nil {
				logger.ErrorErr(err, "failed to send reset link", "email", req.Email)
			}
		}

		c.JSON(http.StatusOK, MessageResponse{Message: checkInboxMessage})
	}
}

// ResetPasswordHandler godoc
// @Summary Reset password with an emailed token
// @Description Sets a new password and invalidates the token in one step.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Token and new password"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/v1/auth/reset-password [post]
func ResetPasswordHandler(userStore UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResetPasswordRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.ValidationError(c, err)
			return
		}

		if err := validators.PasswordValidator(req.Password); err != nil {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}

		hash, err := identity.HashPassword(req.Password)
		if err != nil {
			apierrors.InternalError(c, "failed to reset password", err)
			return
		}

		err = userStore.ConsumeResetToken(c.Request.Context(), identity.HashToken(req.Token), hash)

		if errors.Is(err, users.ErrTokenInvalid) {
			apierrors.InvalidOrExpired(c, http.StatusBadRequest)
			return
		}

		if err != nil {
			apierrors.InternalError(c, "failed to reset password", err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "password updated"})
	}
}

// RefreshHandler godoc
// @Summary Refresh session claims
// @Description Reloads the user from the store and re-issues the session cookie with current claims.
// @Tags auth
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/auth/refresh [post]
// @Security BearerAuth
func RefreshHandler(userStore UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			return
		}

		user, err := userStore.FindByID(c.Request.Context(), userID)

		if errors.Is(err, users.ErrNotFound) {
			auth.ClearSessionCookie(c)
			apierrors.Unauthorized(c, "account no longer exists")
			return
		}

		if err != nil {
			apierrors.InternalError(c, "failed to refresh session", err)
			return
		}

		if !issueSession(c, user) {
			return
		}

		c.JSON(http.StatusOK, UserResponse{User: user})
	}
}

// GetCurrentUserHandler godoc
// @Summary Get current user
// @Description Get authenticated user's profile
// @Tags auth
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/auth/me [get]
// @Security BearerAuth
func GetCurrentUserHandler(userStore UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			return
		}

		user, err := userStore.FindByID(c.Request.Context(), userID)
		if err != nil {
			apierrors.NotFound(c, "user")
			return
		}

		c.JSON(http.StatusOK, UserResponse{User: user})
	}
}

// LogoutHandler godoc
// @Summary Logout
// @Description Clear the session cookie and any OAuth session state
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /api/v1/auth/logout [post]
func LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := gothic.Logout(c.Writer, c.Request); err != nil {
			logger.Debug("no gothic session to clear", "error", err)
		}

		auth.ClearSessionCookie(c)
		c.JSON(http.StatusOK, MessageResponse{Message: "logged out successfully"})
	}
}

// signs the user in by setting the session cookie; writes the error
// response itself and reports whether it succeeded
func issueSession(c *gin.Context, user *users.User) bool {
	token, err := auth.GenerateJWT(user)
	if err != nil {
		apierrors.InternalError(c, "failed to generate token", err)
		return false
	}

	auth.SetSessionCookie(c, token)
	return true
}

func isValidProvider(provider string) bool {
	validProviders := []string{"google", "github"}
	return slices.Contains(validProviders, provider)
}
