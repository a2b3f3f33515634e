package router

import (
	"log"
	"time"

	"moodlog/middleware"

	"github.com/gin-gonic/gin"
)

// Logger logs method, path, status, latency and the request id.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		log.Printf("%s %s -> %d (%s) rid=%s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), duration,
			c.GetString(middleware.RequestIDKey))
	}
}
