package handler

import (
	"notesapp/middleware"
	"notesapp/usecase"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services bundles what the routes need.
type Services struct {
	Accounts     *usecase.AccountsService
	Notes        *usecase.NotesService
	Tokens       middleware.TokenVerifier
	Dependencies []Dependency
}

// RegisterRoutes mounts the public and authenticated endpoints on router.
func RegisterRoutes(router *gin.Engine, svc Services) {
	router.GET("/", RootHandler)
	router.GET("/health", func(c *gin.Context) {
		HealthHandler(c, svc.Dependencies)
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes (no authentication required)
	router.POST("/create-account", func(c *gin.Context) {
		RegistrationHandler(c, svc.Accounts)
	})
	router.POST("/login", func(c *gin.Context) {
		LoginHandler(c, svc.Accounts)
	})

	// Protected routes (authentication required)
	protected := router.Group("/")
	protected.Use(middleware.AuthMiddleware(svc.Tokens))
	{
		protected.GET("/get-user", func(c *gin.Context) {
			GetUserHandler(c, svc.Accounts)
		})
		protected.POST("/add-note", func(c *gin.Context) {
			AddNoteHandler(c, svc.Notes)
		})
		protected.PUT("/edit-note/:noteId", func(c *gin.Context) {
			EditNoteHandler(c, svc.Notes)
		})
		protected.GET("/get-all-notes", func(c *gin.Context) {
			GetAllNotesHandler(c, svc.Notes)
		})
		protected.DELETE("/delete-note/:noteId", func(c *gin.Context) {
			DeleteNoteHandler(c, svc.Notes)
		})
		protected.PUT("/update-note-pinned/:noteId", func(c *gin.Context) {
			UpdateNotePinnedHandler(c, svc.Notes)
		})
		protected.GET("/search-notes", func(c *gin.Context) {
			SearchNotesHandler(c, svc.Notes)
		})
	}
}
