package receiptRepo

import (
	"context"
	"time"

	"conjunto/models"
)

// ReceiptRepository is the append-only store of checkout receipts. Append
// assigns the receipt ID when it is empty. FindByID returns (nil, nil) for an
// unknown id.
type ReceiptRepository interface {
	Append(ctx context.Context, r *models.ParkingReceipt) error
	FindByID(ctx context.Context, id string) (*models.ParkingReceipt, error)
	FindAll(ctx context.Context) ([]models.ParkingReceipt, error)
	FindByGeneratedRange(ctx context.Context, from, to time.Time) ([]models.ParkingReceipt, error)
}
