package router

import (
	"log"
	"net/http"

	"moodlog/config"
	"moodlog/controllers"
	"moodlog/middleware"

	"github.com/gin-gonic/gin"
)

// Initialize wires all routes and middlewares: public routes (register,
// login) plus authenticated routes (everything touching logs).
func Initialize(r *gin.Engine, cfg config.Configuration) {
	_ = cfg

	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestID())

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public (no auth)
	api.POST("/users", Logger(), controllers.CreateUser)
	api.POST("/login", Logger(), controllers.Login)

	// Authenticated routes (token required)
	auth := api.Group("")
	auth.Use(controllers.AuthRequired())

	auth.GET("/me", Logger(), controllers.Me)

	// Logs CRUD
	auth.POST("/logs", Logger(), controllers.CreateLog)
	auth.GET("/logs", Logger(), controllers.GetLogs)
	auth.GET("/logs/:logId", Logger(), controllers.GetLogByID)
	auth.PUT("/logs/:logId", Logger(), controllers.UpdateLog)
	auth.DELETE("/logs/:logId", Logger(), controllers.DeleteLog)

	// Dashboard
	auth.GET("/users/:userId", Logger(), controllers.GetUserDashboard)

	log.Printf("Routes initialized")
}
