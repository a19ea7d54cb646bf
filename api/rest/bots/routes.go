package bots

import (
	"codeberg.org/agentic/server/agentic/bots"
	"github.com/gin-gonic/gin"
)

// registers the public agent catalog routes
func RegisterRoutes(router *gin.RouterGroup, catalog *bots.Catalog) {
	botsGroup := router.Group("/bots")
	{
		botsGroup.GET("", ListBotsHandler(catalog))
		botsGroup.GET("/:botId", GetBotHandler(catalog))
	}
}
