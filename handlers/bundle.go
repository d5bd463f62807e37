// File: handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct for route
// registration.
type HandlerBundle struct {
	// Scheduling endpoints
	ScheduleMeetingHandler  gin.HandlerFunc
	GetFreeSlotsHandler     gin.HandlerFunc
	AddPotentialSlotHandler gin.HandlerFunc

	// Session-mapper maintenance endpoints
	GetThreadIDHandler      gin.HandlerFunc
	GetSessionInfoHandler   gin.HandlerFunc
	ClearSessionHandler     gin.HandlerFunc
	ClearAllSessionsHandler gin.HandlerFunc
	SessionStatsHandler     gin.HandlerFunc
}
