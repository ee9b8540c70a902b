package handlers

import (
	"net/http"

	"conjunto/services/parking"

	"github.com/gin-gonic/gin"
)

// ReceiptHandler exposes the parking receipt log.
type ReceiptHandler struct {
	Svc parking.Service
}

// NewReceiptHandler creates a ReceiptHandler.
func NewReceiptHandler(svc parking.Service) *ReceiptHandler {
	return &ReceiptHandler{Svc: svc}
}

// ListHandler returns all receipts, newest first.
func (h *ReceiptHandler) ListHandler(c *gin.Context) {
	receipts, err := h.Svc.ListReceipts(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipts)
}

// GetHandler returns one receipt by id.
func (h *ReceiptHandler) GetHandler(c *gin.Context) {
	receipt, err := h.Svc.GetReceipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}
