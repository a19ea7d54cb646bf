package contact

import (
	"codeberg.org/agentic/server/internal/mailer"
	"github.com/gin-gonic/gin"
)

// registers the contact form route
func RegisterRoutes(router *gin.RouterGroup, mail mailer.Sender) {
	router.POST("/contact", SubmitHandler(mail))
}
