package handlers

import (
	"net/http"
	"time"

	"conjunto/models"
	"conjunto/services/parking"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the administration endpoints: dashboard stats, revenue
// reports and tariff management.
type AdminHandler struct {
	Svc parking.Service
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(svc parking.Service) *AdminHandler {
	return &AdminHandler{Svc: svc}
}

// StatsHandler returns the dashboard summary.
func (h *AdminHandler) StatsHandler(c *gin.Context) {
	stats, err := h.Svc.Stats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ReportHandler summarizes visitor vehicle activity between the "from" and
// "to" query dates (YYYY-MM-DD; "to" is inclusive). Both default to today.
func (h *AdminHandler) ReportHandler(c *gin.Context) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 0, 1)

	if v := c.Query("from"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, now.Location())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'from' date", "details": err.Error()})
			return
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, now.Location())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'to' date", "details": err.Error()})
			return
		}
		to = parsed.AddDate(0, 0, 1)
	}

	report, err := h.Svc.Report(c.Request.Context(), from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetTariffHandler returns the fee schedule currently in force.
func (h *AdminHandler) GetTariffHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.Svc.Tariff())
}

// UpdateTariffHandler replaces the fee schedule.
func (h *AdminHandler) UpdateTariffHandler(c *gin.Context) {
	var tariff models.Tariff
	if err := c.ShouldBindJSON(&tariff); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Svc.SetTariff(tariff); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "tariff": tariff})
}
