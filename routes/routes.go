package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"slotify/handlers"
	"slotify/middleware"
	"slotify/utils"
)

// RegisterSchedulingRoutes registers the booking and availability endpoints.
// Slot seeding is administrative and sits behind the admin token.
func RegisterSchedulingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/scheduling")
	{
		api.POST("/meetings", hb.ScheduleMeetingHandler)
		api.GET("/free-slots", hb.GetFreeSlotsHandler)

		admin := api.Group("")
		admin.Use(middleware.AdminAuthMiddleware())
		admin.POST("/slots", hb.AddPotentialSlotHandler)
	}
}

// RegisterSessionRoutes registers maintenance endpoints for the session-thread
// mapper consumed by the agent layer.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/sessions")
	{
		api.POST("/thread-id", hb.GetThreadIDHandler)
		api.GET("/thread/:threadID", hb.GetSessionInfoHandler)

		admin := api.Group("")
		admin.Use(middleware.AdminAuthMiddleware())
		admin.GET("/stats", hb.SessionStatsHandler)
		admin.DELETE("/thread", hb.ClearSessionHandler)
		admin.DELETE("", hb.ClearAllSessionsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint backed by the
// background monitor's latest snapshot.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Mongo {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterSchedulingRoutes(r, hb)
	RegisterSessionRoutes(r, hb)
	RegisterHealthRoute(r)
}
