package auth

import (
	"codeberg.org/agentic/server/internal/mailer"
	"github.com/gin-gonic/gin"
)

// registers all authentication routes
func RegisterRoutes(router *gin.RouterGroup, userStore UserStore, tokenStore TokenStore, resolver UserResolver, mail mailer.Sender, authed gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", SignupHandler(userStore))
		authGroup.POST("/sign-in", SignInHandler(resolver))
		authGroup.POST("/magic-link", MagicLinkRequestHandler(tokenStore, mail))
		authGroup.GET("/magic-link/verify", MagicLinkVerifyHandler(resolver))
		authGroup.POST("/forgot-password", ForgotPasswordHandler(userStore, mail))
		authGroup.POST("/reset-password", ResetPasswordHandler(userStore))
		authGroup.POST("/logout", LogoutHandler())
		authGroup.GET("/:provider", BeginAuthHandler())
		authGroup.GET("/:provider/callback", CallbackHandler(resolver))

		authGroup.POST("/refresh", authed, RefreshHandler(userStore))
		authGroup.GET("/me", authed, GetCurrentUserHandler(userStore))
	}
}
