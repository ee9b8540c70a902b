package handlers

import (
	"net/http"

	"conjunto/models"
	"conjunto/services/parking"

	"github.com/gin-gonic/gin"
)

// SlotHandler exposes the visitor slot registry.
type SlotHandler struct {
	Svc parking.Service
}

// NewSlotHandler creates a SlotHandler.
func NewSlotHandler(svc parking.Service) *SlotHandler {
	return &SlotHandler{Svc: svc}
}

// ListHandler returns all visitor slots with their occupancy.
func (h *SlotHandler) ListHandler(c *gin.Context) {
	slots, err := h.Svc.ListSlots(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

// CreateHandler registers a new visitor slot.
func (h *SlotHandler) CreateHandler(c *gin.Context) {
	var slot models.ParkingSlot
	if err := c.ShouldBindJSON(&slot); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if slot.Number == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slot number is required"})
		return
	}

	if err := h.Svc.CreateSlot(c.Request.Context(), slot); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "slot": slot.Number})
}
