package contact

import (
	"net/http"

	apierrors "codeberg.org/agentic/server/internal/errors"
	"codeberg.org/agentic/server/internal/logger"
	"codeberg.org/agentic/server/internal/mailer"
	"codeberg.org/agentic/server/internal/validators"
	"github.com/gin-gonic/gin"
)

const sentMessage = "thanks, we'll be in touch"

// SubmitHandler godoc
// @Summary Submit the contact form
// @Description Relays the message to the configured inbox. Submissions with the honeypot field filled are silently dropped.
// @Tags contact
// @Accept json
// @Produce json
// @Param request body ContactRequest true "Contact message"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/v1/contact [post]
func SubmitHandler(mail mailer.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ContactRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.ValidationError(c, err)
			return
		}

		// a filled honeypot means a bot; answer success and do nothing
		if req.Website != "" {
			logger.Debug("dropped contact submission with honeypot set")
			c.JSON(http.StatusOK, MessageResponse{Message: sentMessage})
			return
		}

		if err := validators.EmailValidator(req.Email); err != nil {
			apierrors.BadRequest(c, err.Error(), nil)
			return
		}

		if err := mail.SendContact(c.Request.Context(), req.Email, req.Name, req.Message); err != nil {
			apierrors.InternalError(c, "failed to send message", err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: sentMessage})
	}
}
