package user

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"codeberg.org/agentic/server/agentic/users"
	"codeberg.org/agentic/server/internal/auth"
	apierrors "codeberg.org/agentic/server/internal/errors"
	"codeberg.org/agentic/server/internal/identity"
	"codeberg.org/agentic/server/internal/objstore"
	"codeberg.org/agentic/server/internal/validators"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

// ChangePasswordHandler godoc
// @Summary Change password
// @Description Replace the password after re-verifying the current one. Accounts without a password cannot use this.
// @Tags user
// @Accept json
// @Produce json
// @Param request body ChangePasswordRequest true "Current and new password"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /api/v1/user/change-password [post]
// @Security BearerAuth
func ChangePasswordHandler(userStore UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			return
		}

		var req ChangePasswordRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.ValidationError(c, err)
			return
		}

		if err := validators.PasswordValidator(req.NewPassword); err != nil {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}

		current, err := userStore.FindByID(c.Request.Context(), userID)
		if err != nil {
			apierrors.InternalError(c, "failed to load account", err)
			return
		}

		// OAuth-only and magic-link-only accounts have no password to change
		if current.PasswordHash == nil {
			apierrors.Forbidden(c, "password sign-in is not enabled for this account")
			return
		}

		if !identity.CheckPassword(req.CurrentPassword, *current.PasswordHash) {
			apierrors.Forbidden(c, "current password is incorrect")
			return
		}

		hash, err := identity.HashPassword(req.NewPassword)
		if err != nil {
			apierrors.InternalError(c, "failed to change password", err)
			return
		}

		if err := userStore.UpdatePassword(c.Request.Context(), userID, hash); err != nil {
			apierrors.InternalError(c, "failed to change password", err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "password updated"})
	}
}

// UpdateNameHandler godoc
// @Summary Update display name
// @Tags user
// @Accept json
// @Produce json
// @Param request body UpdateNameRequest true "New display name"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/v1/user/update-name [post]
// @Security BearerAuth
func UpdateNameHandler(userStore UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			return
		}

		var req UpdateNameRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.ValidationError(c, err)
			return
		}

		name := strings.TrimSpace(req.Name)
		if name == "" {
			apierrors.BadRequest(c, "name cannot be empty", nil)
			return
		}

		updated, err := userStore.UpdateName(c.Request.Context(), userID, name)
		if err != nil {
			apierrors.InternalError(c, "failed to update name", err)
			return
		}

		c.JSON(http.StatusOK, UserResponse{User: updated})
	}
}

// UpdateProfileHandler godoc
// @Summary Upload a profile image
// @Description Accepts a multipart image upload, stores it, and points the account's avatar at the stored copy. Oversized uploads are rejected and the avatar stays unchanged.
// @Tags user
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Avatar image"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 413 {object} errors.ErrorResponse
// @Router /api/v1/user/update-profile [post]
// @Security BearerAuth
func UpdateProfileHandler(userStore UserStore, store objstore.Store, maxAvatarBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			return
		}

		// hard cap on the whole request before any parsing happens
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAvatarBytes+4096)

		fh, err := c.FormFile("image")
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				apierrors.PayloadTooLarge(c, "image too large")
				return
			}

			apierrors.BadRequest(c, "no image provided", nil)
			return
		}

		if fh.Size > maxAvatarBytes {
			apierrors.PayloadTooLarge(c, "image too large")
			return
		}

		f, err := fh.Open()
		if err != nil {
			apierrors.InternalError(c, "failed to read image", err)
			return
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			apierrors.InternalError(c, "failed to read image", err)
			return
		}

		mime, err := validators.AvatarValidator(data, maxAvatarBytes)

		switch {
		case errors.Is(err, validators.ErrAvatarTooLarge):
			apierrors.PayloadTooLarge(c, "image too large")
			return

		case err != nil:
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}

		key := fmt.Sprintf("avatars/%s-%d%s", userID, time.Now().Unix(), mimetype.Lookup(mime).Extension())

		url, err := store.Put(c.Request.Context(), key, mime, data)
		if err != nil {
			apierrors.InternalError(c, "failed to store image", err)
			return
		}

		updated, err := userStore.UpdateAvatar(c.Request.Context(), userID, url)
		if err != nil {
			apierrors.InternalError(c, "failed to update avatar", err)
			return
		}

		c.JSON(http.StatusOK, UserResponse{User: updated})
	}
}

// DeleteAccountHandler godoc
// @Summary Delete account
// @Description Removes the account and everything attached to it. Deleting an account that is already gone returns 404.
// @Tags user
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/user/delete-account [delete]
// @Security BearerAuth
func DeleteAccountHandler(userStore UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			return
		}

		err := userStore.Delete(c.Request.Context(), userID)

		if errors.Is(err, users.ErrNotFound) {
			apierrors.NotFound(c, "account")
			return
		}

		if err != nil {
			apierrors.InternalError(c, "failed to delete account", err)
			return
		}

		auth.ClearSessionCookie(c)
		c.JSON(http.StatusOK, MessageResponse{Message: "account deleted"})
	}
}
