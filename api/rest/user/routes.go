package user

import (
	"codeberg.org/agentic/server/internal/objstore"
	"github.com/gin-gonic/gin"
)

// registers all profile management routes; every route requires a session
func RegisterRoutes(router *gin.RouterGroup, userStore UserStore, store objstore.Store, maxAvatarBytes int64, authed gin.HandlerFunc) {
	userGroup := router.Group("/user", authed)
	{
		userGroup.POST("/change-password", ChangePasswordHandler(userStore))
		userGroup.POST("/update-name", UpdateNameHandler(userStore))
		userGroup.POST("/update-profile", UpdateProfileHandler(userStore, store, maxAvatarBytes))
		userGroup.DELETE("/delete-account", DeleteAccountHandler(userStore))
	}
}
