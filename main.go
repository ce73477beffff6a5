package main

import (
	"log"

	"gospelcms/config"
	"gospelcms/controllers"
	"gospelcms/database"
	"gospelcms/handlers"
	"gospelcms/middleware"
	"gospelcms/routes"
	"gospelcms/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "gospelcms/docs"
)

// @title Gospel CMS API
// @version 1.0
// @description Content management API for the artist site: blog posts, categories, tags and users

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg := config.Load()

	store := database.Connect(cfg)

	blogService := services.NewBlogService(store)
	userService := services.NewUserService(store)
	eventService := services.NewEventService()

	if cfg.SeedContent {
		if err := blogService.Seed(); err != nil {
			log.Fatal("Failed to seed content:", err)
		}
	}
	if err := userService.Bootstrap(cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName); err != nil {
		log.Fatal("Failed to bootstrap admin user:", err)
	}

	r := gin.Default()

	r.Use(middleware.CORS())
	r.Use(middleware.Logger())
	r.Use(middleware.ErrorHandler())

	blogController := controllers.NewBlogController(blogService, userService, eventService)
	authController := controllers.NewAuthController(userService)
	userController := controllers.NewUserController(userService)
	wsHandler := handlers.NewWebSocketHandler(eventService)

	routes.SetupRoutes(r, blogController, authController, userController, wsHandler)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	log.Printf("Server starting on :%s", cfg.Port)
	log.Printf("Swagger docs available at: http://localhost:%s/swagger/index.html", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
