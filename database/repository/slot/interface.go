package slotRepo

import (
	"context"

	"conjunto/models"
)

// SlotRepository persists the visitor parking slot registry. Get returns
// (nil, nil) for an unknown slot number.
type SlotRepository interface {
	Get(ctx context.Context, number string) (*models.ParkingSlot, error)
	Save(ctx context.Context, slot *models.ParkingSlot) error
	FindAll(ctx context.Context) ([]models.ParkingSlot, error)
}
