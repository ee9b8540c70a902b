package handlers

import (
	"net/http"
	"time"

	"conjunto/services/parking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VehicleHandler exposes the visitor vehicle endpoints used by the guard post.
type VehicleHandler struct {
	Svc    parking.Service
	Logger *zap.Logger
}

// NewVehicleHandler creates a VehicleHandler.
func NewVehicleHandler(svc parking.Service, logger *zap.Logger) *VehicleHandler {
	return &VehicleHandler{Svc: svc, Logger: logger}
}

// EntryHandler registers a visitor vehicle entering the complex.
func (h *VehicleHandler) EntryHandler(c *gin.Context) {
	var input parking.EntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if input.RegisteredBy == "" {
		input.RegisteredBy = c.GetString("callerID")
	}

	session, err := h.Svc.RegisterEntry(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "vehicle": session})
}

// CheckoutHandler closes the active session for a plate and returns the
// receipt.
func (h *VehicleHandler) CheckoutHandler(c *gin.Context) {
	var input struct {
		Plate string `json:"plate"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := h.Svc.CheckoutVehicle(c.Request.Context(), input.Plate, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "vehicle": result.Session, "receipt": result.Receipt})
}

// ListHandler returns every visitor session, newest entry first.
func (h *VehicleHandler) ListHandler(c *gin.Context) {
	sessions, err := h.Svc.ListSessions(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// ActiveHandler returns the vehicles currently inside the complex.
func (h *VehicleHandler) ActiveHandler(c *gin.Context) {
	sessions, err := h.Svc.ListActiveSessions(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// TodayHandler returns the vehicles that entered today.
func (h *VehicleHandler) TodayHandler(c *gin.Context) {
	sessions, err := h.Svc.ListTodaySessions(c.Request.Context(), time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}
