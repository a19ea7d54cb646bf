package bots

import (
	"errors"
	"net/http"

	"codeberg.org/agentic/server/agentic/bots"
	apierrors "codeberg.org/agentic/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// ListBotsHandler godoc
// @Summary List the agent catalog
// @Description Public catalog listing with optional category and tag filters.
// @Tags bots
// @Produce json
// @Param category query string false "Filter by category"
// @Param tag query string false "Filter by use-case tag"
// @Success 200 {object} ListResponse
// @Router /api/v1/bots [get]
func ListBotsHandler(catalog *bots.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		list := catalog.List(c.Query("category"), c.Query("tag"))
		c.JSON(http.StatusOK, ListResponse{Bots: list})
	}
}

// GetBotHandler godoc
// @Summary Get one agent
// @Description Returns the agent with its related catalog entries.
// @Tags bots
// @Produce json
// @Param botId path string true "Agent id"
// @Success 200 {object} DetailResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/bots/{botId} [get]
func GetBotHandler(catalog *bots.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		botID := c.Param("botId")

		bot, err := catalog.Get(botID)

		if errors.Is(err, bots.ErrNotFound) {
			apierrors.NotFound(c, "agent")
			return
		}

		if err != nil {
			apierrors.InternalError(c, "failed to load agent", err)
			return
		}

		related, err := catalog.Related(botID)
		if err != nil {
			apierrors.InternalError(c, "failed to load related agents", err)
			return
		}

		c.JSON(http.StatusOK, DetailResponse{Bot: bot, Related: related})
	}
}
