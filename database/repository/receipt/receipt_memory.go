package receiptRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"conjunto/models"
)

// MemoryReceiptRepo implements ReceiptRepository with an in-process append-only
// slice. Receipt ids follow the gate office's "REC-001" numbering.
type MemoryReceiptRepo struct {
	mu       sync.RWMutex
	receipts []models.ParkingReceipt
	file     string
}

// NewMemoryReceiptRepo creates an in-memory receipt repository, loading an
// existing snapshot from file when present.
func NewMemoryReceiptRepo(file string) *MemoryReceiptRepo {
	repo := &MemoryReceiptRepo{file: file}
	if file != "" {
		repo.load()
	}
	return repo
}

func (r *MemoryReceiptRepo) load() {
	data, err := os.ReadFile(r.file)
	if err != nil {
		return
	}
	var receipts []models.ParkingReceipt
	if err := json.Unmarshal(data, &receipts); err != nil {
		return
	}
	r.receipts = receipts
}

// Flush writes the receipt log to the snapshot file.
func (r *MemoryReceiptRepo) Flush() error {
	if r.file == "" {
		return nil
	}
	r.mu.RLock()
	receipts := make([]models.ParkingReceipt, len(r.receipts))
	copy(receipts, r.receipts)
	r.mu.RUnlock()

	data, err := json.MarshalIndent(receipts, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal receipt snapshot: %w", err)
	}
	return os.WriteFile(r.file, data, 0o644)
}

func (r *MemoryReceiptRepo) Append(ctx context.Context, receipt *models.ParkingReceipt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.receipts {
		if existing.SessionID == receipt.SessionID {
			return fmt.Errorf("receipt for session %s already exists", receipt.SessionID)
		}
	}
	if receipt.ID == "" {
		receipt.ID = fmt.Sprintf("REC-%03d", len(r.receipts)+1)
	}
	r.receipts = append(r.receipts, *receipt)
	return nil
}

func (r *MemoryReceiptRepo) FindByID(ctx context.Context, id string) (*models.ParkingReceipt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, receipt := range r.receipts {
		if receipt.ID == id {
			out := receipt
			return &out, nil
		}
	}
	return nil, nil
}

func (r *MemoryReceiptRepo) FindAll(ctx context.Context) ([]models.ParkingReceipt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Newest first, matching the Mongo implementation's sort.
	out := make([]models.ParkingReceipt, 0, len(r.receipts))
	for i := len(r.receipts) - 1; i >= 0; i-- {
		out = append(out, r.receipts[i])
	}
	return out, nil
}

func (r *MemoryReceiptRepo) FindByGeneratedRange(ctx context.Context, from, to time.Time) ([]models.ParkingReceipt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.ParkingReceipt
	for i := len(r.receipts) - 1; i >= 0; i-- {
		receipt := r.receipts[i]
		if !receipt.GeneratedAt.Before(from) && receipt.GeneratedAt.Before(to) {
			out = append(out, receipt)
		}
	}
	return out, nil
}
