package notes

import (
	"github.com/gin-gonic/gin"
)

// registers the note routes; the shared snapshot fetch is public
func RegisterRoutes(router *gin.RouterGroup, noteStore NoteStore, shareStore ShareStore, directory AgentDirectory, authed gin.HandlerFunc) {
	notesGroup := router.Group("/notes", authed)
	{
		notesGroup.GET("/:botId", GetNoteHandler(noteStore))
		notesGroup.POST("/:botId", SaveNoteHandler(noteStore))
		notesGroup.POST("/:botId/share", ShareNoteHandler(noteStore, shareStore, directory))
	}

	router.GET("/shared/:noteId", GetSharedNoteHandler(shareStore))
}
