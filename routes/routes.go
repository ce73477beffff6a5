package routes

import (
	"net/http"
	"time"

	"gospelcms/controllers"
	"gospelcms/handlers"
	"gospelcms/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, blogController *controllers.BlogController, authController *controllers.AuthController, userController *controllers.UserController, wsHandler *handlers.WebSocketHandler) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		// Public site endpoints, no auth.
		api.GET("/posts", blogController.ListPublished)
		api.GET("/posts/:slug", blogController.GetBySlug)
		api.GET("/posts/:slug/related", blogController.GetRelated)
		api.GET("/categories", blogController.GetCategories)
		api.GET("/tags", blogController.GetTags)

		auth := api.Group("/auth")
		{
			loginLimiter := middleware.NewRateLimiter(5, time.Minute)
			auth.POST("/login", loginLimiter.Limit(), authController.Login)
			auth.GET("/me", middleware.AuthRequired(), authController.Me)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.AuthRequired())
		{
			admin.GET("/posts", blogController.ListAll)
			admin.POST("/posts", blogController.Create)
			admin.GET("/posts/:id", blogController.GetPost)
			admin.PUT("/posts/:id", blogController.Update)
			admin.DELETE("/posts/:id", blogController.Delete)

			admin.GET("/users", userController.GetUsers)
			admin.POST("/users", userController.CreateUser)
			admin.DELETE("/users/:id", userController.DeleteUser)

			admin.GET("/events", wsHandler.HandleEvents)
		}
	}
}
