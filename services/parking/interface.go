package parking

import (
	"context"
	"time"

	"conjunto/models"
)

// EntryInput carries the gate entry form filled in by the guard post.
type EntryInput struct {
	Plate        string `json:"plate"`
	VehicleType  string `json:"vehicleType"`
	Destination  string `json:"destination"`
	SlotNumber   string `json:"slotNumber"`
	RegisteredBy string `json:"registeredBy"`
}

// CheckoutResult bundles the closed session and its receipt.
type CheckoutResult struct {
	Session *models.VisitorSession `json:"session"`
	Receipt *models.ParkingReceipt `json:"receipt"`
}

// VehicleReport summarizes visitor vehicle activity over a date range.
type VehicleReport struct {
	From           time.Time               `json:"from"`
	To             time.Time               `json:"to"`
	Vehicles       []models.VisitorSession `json:"vehicles"`
	TotalVehicles  int                     `json:"totalVehicles"`
	TotalCollected int64                   `json:"totalCollected"`
}

// DashboardStats is the guard/admin dashboard summary.
type DashboardStats struct {
	ActiveVehicles int   `json:"activeVehicles"`
	OccupiedSlots  int   `json:"occupiedSlots"`
	FreeSlots      int   `json:"freeSlots"`
	ReceiptsIssued int   `json:"receiptsIssued"`
	TotalCollected int64 `json:"totalCollected"`
}

// Service defines the visitor parking operations exposed to the transport
// layer.
type Service interface {
	RegisterEntry(ctx context.Context, in EntryInput) (*models.VisitorSession, error)
	CheckoutVehicle(ctx context.Context, plate string, now time.Time) (*CheckoutResult, error)

	ListSessions(ctx context.Context) ([]models.VisitorSession, error)
	ListActiveSessions(ctx context.Context) ([]models.VisitorSession, error)
	ListTodaySessions(ctx context.Context, now time.Time) ([]models.VisitorSession, error)

	ListReceipts(ctx context.Context) ([]models.ParkingReceipt, error)
	GetReceipt(ctx context.Context, id string) (*models.ParkingReceipt, error)

	ListSlots(ctx context.Context) ([]models.ParkingSlot, error)
	CreateSlot(ctx context.Context, slot models.ParkingSlot) error

	Report(ctx context.Context, from, to time.Time) (*VehicleReport, error)
	Stats(ctx context.Context) (*DashboardStats, error)

	Tariff() models.Tariff
	SetTariff(t models.Tariff) error
}
