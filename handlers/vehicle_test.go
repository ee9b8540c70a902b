package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	receiptRepo "conjunto/database/repository/receipt"
	slotRepo "conjunto/database/repository/slot"
	vehicleRepo "conjunto/database/repository/vehicle"
	"conjunto/models"
	"conjunto/services/parking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	slots := slotRepo.NewMemorySlotRepo("")
	if err := slots.Save(context.Background(), &models.ParkingSlot{Number: "V-01", Level: "1"}); err != nil {
		t.Fatalf("seed slot: %v", err)
	}

	svc := parking.NewDefaultParkingService(
		vehicleRepo.NewMemorySessionRepo(""),
		slots,
		receiptRepo.NewMemoryReceiptRepo(""),
		nil,
		zap.NewNop(),
		models.DefaultTariff(),
		200*time.Millisecond,
	)

	h := NewVehicleHandler(svc, zap.NewNop())
	r := gin.New()
	r.POST("/entry", h.EntryHandler)
	r.POST("/checkout", h.CheckoutHandler)
	r.GET("/active", h.ActiveHandler)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestEntryAndCheckoutEndpoints(t *testing.T) {
	router := newTestRouter(t)

	entry := parking.EntryInput{
		Plate:       "AAA111",
		VehicleType: "car",
		Destination: "Tower 2 Apt 501",
		SlotNumber:  "V-01",
	}
	w := postJSON(t, router, "/entry", entry)
	if w.Code != http.StatusOK {
		t.Fatalf("entry: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Same plate again while inside.
	w = postJSON(t, router, "/entry", entry)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate entry: expected 400, got %d: %s", w.Code, w.Body.String())
	}

	w = postJSON(t, router, "/checkout", gin.H{"plate": "AAA111"})
	if w.Code != http.StatusOK {
		t.Fatalf("checkout: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Receipt models.ParkingReceipt `json:"receipt"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode checkout response: %v", err)
	}
	if resp.Receipt.ID != "REC-001" {
		t.Fatalf("expected receipt REC-001, got %q", resp.Receipt.ID)
	}
	if resp.Receipt.Fee != 0 {
		t.Fatalf("expected zero fee inside grace period, got %d", resp.Receipt.Fee)
	}
}

func TestCheckoutUnknownPlateReturns404(t *testing.T) {
	router := newTestRouter(t)

	w := postJSON(t, router, "/checkout", gin.H{"plate": "ZZZ999"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestEntryRejectsMalformedBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/entry", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestEntryToOccupiedSlotConflicts(t *testing.T) {
	router := newTestRouter(t)

	w := postJSON(t, router, "/entry", parking.EntryInput{
		Plate: "AAA111", VehicleType: "car", Destination: "d", SlotNumber: "V-01",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("entry: expected 200, got %d", w.Code)
	}

	w = postJSON(t, router, "/entry", parking.EntryInput{
		Plate: "BBB222", VehicleType: "car", Destination: "d", SlotNumber: "V-01",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("occupied slot: expected 409, got %d: %s", w.Code, w.Body.String())
	}
}
