package main

import (
	"fmt"
	"log"
	"net/http"

	"warbler/backend/internal/auth"
	"warbler/backend/internal/config"
	"warbler/backend/internal/database"
	"warbler/backend/internal/handler"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "warbler/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Warbler API
// @version         1.0
// @description     This is the API for the Warbler social feed service.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", handler.RegisterUser)
			authRoutes.POST("/login", handler.LoginUser)
		}

		// Home timeline works for anonymous callers too; they get an empty feed.
		apiV1.GET("/timeline", auth.OptionalAuthMiddleware(), handler.GetHomeTimeline)

		// User routes (protected)
		userRoutes := apiV1.Group("/users")
		userRoutes.Use(auth.AuthMiddleware())
		{
			userRoutes.GET("", handler.SearchUsers) // Must be before /:id
			userRoutes.GET("/me", handler.GetMe)
			userRoutes.PUT("/me", handler.UpdateMe)
			userRoutes.DELETE("/me", handler.DeleteMe)
			userRoutes.GET("/:id", handler.GetUserByID)
			userRoutes.GET("/:id/followers", handler.GetFollowers)
			userRoutes.GET("/:id/following", handler.GetFollowing)
			userRoutes.GET("/:id/likes", handler.GetUserLikes)
			userRoutes.GET("/:id/messages", handler.GetUserMessages)

			// Social graph routes
			userRoutes.POST("/:id/follow", handler.FollowUser)
			userRoutes.POST("/:id/unfollow", handler.UnfollowUser)
		}

		// Message routes (protected)
		messageRoutes := apiV1.Group("/messages")
		messageRoutes.Use(auth.AuthMiddleware())
		{
			messageRoutes.POST("", handler.CreateMessage)
			messageRoutes.GET("/:id", handler.GetMessageByID)
			messageRoutes.DELETE("/:id", handler.DeleteMessage)
			messageRoutes.POST("/:id/like", handler.ToggleLike)
		}

		// Admin routes (protected by auth and admin check)
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(auth.AuthMiddleware(), auth.AdminMiddleware())
		{
			adminRoutes.DELETE("/users/:id", handler.AdminDeleteUser)
			adminRoutes.DELETE("/messages/:id", handler.AdminDeleteMessage)
		}
	}

	fmt.Println("Server is running on :" + config.AppConfig.Port)
	fmt.Println("Swagger UI is available at http://localhost:" + config.AppConfig.Port + "/swagger/index.html")
	log.Fatal(router.Run(":" + config.AppConfig.Port))
}
