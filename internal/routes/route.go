package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sandycove/clubapi/internal/container"
	"github.com/sandycove/clubapi/internal/handlers"
	"github.com/sandycove/clubapi/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	// API version 1
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "sandycove-api",
			})
		})
	}

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(container.Logger))

	eventRoutes := protected.Group("/events")
	{
		eventRoutes.GET("/upcoming", handlers.GetUpcomingEvents(container.FeedService))
		eventRoutes.GET("/:id/attendees", handlers.GetEventAttendees(container.AttendanceService))
		eventRoutes.POST("/:id/rsvp", handlers.RSVPToEvent(container.FeedService))
		eventRoutes.POST("/", handlers.CreateEvent(container.EventService))
	}

	musicRoutes := protected.Group("/music")
	{
		musicRoutes.GET("/upcoming", handlers.GetUpcomingMusic(container.FeedService))
	}

	protected.POST("/bands", handlers.AddBand(container.EventService))
	protected.POST("/tournaments", handlers.AddTournament(container.EventService))

	return r
}
