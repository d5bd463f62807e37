package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotify/models"
	"slotify/services/scheduling"
	"slotify/utils"
)

// SchedulingHandler exposes the scheduling operations over HTTP.
type SchedulingHandler struct {
	Service scheduling.SchedulingService
}

// NewSchedulingHandler constructs a SchedulingHandler.
func NewSchedulingHandler(svc scheduling.SchedulingService) *SchedulingHandler {
	return &SchedulingHandler{Service: svc}
}

// ScheduleMeetingHandler books a meeting. The response is always slot-shaped;
// clients must branch on the booked field, a conflict is not an HTTP error.
func (h *SchedulingHandler) ScheduleMeetingHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.ScheduleMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid schedule request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	slot, err := h.Service.ScheduleMeeting(c.Request.Context(), req)
	if err != nil {
		respondSchedulingError(c, err, "Failed to schedule meeting")
		return
	}

	c.JSON(http.StatusOK, slot)
}

// GetFreeSlotsHandler lists available windows. Accepts optional RFC3339
// start_after and duration_minutes query parameters.
func (h *SchedulingHandler) GetFreeSlotsHandler(c *gin.Context) {
	var startAfter *time.Time
	if raw := c.Query("start_after"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_after; expected RFC3339 timestamp"})
			return
		}
		startAfter = &t
	}

	duration := scheduling.DefaultDurationMinutes
	if raw := c.Query("duration_minutes"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid duration_minutes; expected positive integer"})
			return
		}
		duration = d
	}

	free, err := h.Service.GetFreeSlots(c.Request.Context(), startAfter, duration)
	if err != nil {
		respondSchedulingError(c, err, "Failed to fetch free slots")
		return
	}

	c.JSON(http.StatusOK, gin.H{"free_slots": free})
}

// AddPotentialSlotHandler seeds an unbooked slot. Admin-only.
func (h *SchedulingHandler) AddPotentialSlotHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.PotentialSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid potential slot request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	slot, err := h.Service.AddPotentialSlot(c.Request.Context(), req)
	if err != nil {
		respondSchedulingError(c, err, "Failed to add potential slot")
		return
	}

	c.JSON(http.StatusCreated, slot)
}

func respondSchedulingError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, scheduling.ErrStoreUnavailable):
		utils.JSONError(c, http.StatusServiceUnavailable, message, "slot store unavailable; retry later")
	case errors.Is(err, scheduling.ErrSlotVanished):
		utils.JSONError(c, http.StatusInternalServerError, message, "slot state changed unexpectedly")
	default:
		utils.JSONError(c, http.StatusInternalServerError, message, err.Error())
	}
}
