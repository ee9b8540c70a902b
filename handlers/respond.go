package handlers

import (
	"errors"
	"net/http"

	"conjunto/services/parking"
	"conjunto/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps a parking service error onto the HTTP contract:
// 404 for missing sessions/receipts, 409 for contention and occupancy
// conflicts, 422 for an invalid interval, 400 for bad input.
func respondServiceError(c *gin.Context, err error) {
	var pe *parking.Error
	if !errors.As(err, &pe) {
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
		return
	}

	status := http.StatusInternalServerError
	switch pe.Code {
	case parking.CodeSessionNotFound, parking.CodeReceiptNotFound:
		status = http.StatusNotFound
	case parking.CodeBusy, parking.CodeSlotUnavailable:
		status = http.StatusConflict
	case parking.CodeVehicleInside, parking.CodeInvalidInput:
		status = http.StatusBadRequest
	case parking.CodeInvalidInterval:
		status = http.StatusUnprocessableEntity
	}
	utils.JSONError(c, status, pe.Message, pe.Code)
}
