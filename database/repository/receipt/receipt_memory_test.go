package receiptRepo

import (
	"context"
	"testing"
	"time"

	"conjunto/models"
)

func TestMemoryReceiptRepoSequentialIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryReceiptRepo("")

	first := models.ParkingReceipt{SessionID: "s1", Plate: "AAA111", GeneratedAt: time.Now()}
	if err := repo.Append(ctx, &first); err != nil {
		t.Fatalf("Append: %v", err)
	}
	second := models.ParkingReceipt{SessionID: "s2", Plate: "BBB222", GeneratedAt: time.Now()}
	if err := repo.Append(ctx, &second); err != nil {
		t.Fatalf("Append: %v", err)
	}

	if first.ID != "REC-001" || second.ID != "REC-002" {
		t.Fatalf("expected REC-001/REC-002, got %s/%s", first.ID, second.ID)
	}
}

func TestMemoryReceiptRepoRejectsDuplicateSession(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryReceiptRepo("")

	r1 := models.ParkingReceipt{SessionID: "s1", Plate: "AAA111"}
	if err := repo.Append(ctx, &r1); err != nil {
		t.Fatalf("Append: %v", err)
	}
	dup := models.ParkingReceipt{SessionID: "s1", Plate: "AAA111"}
	if err := repo.Append(ctx, &dup); err == nil {
		t.Fatal("expected error appending a second receipt for the same session")
	}

	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 receipt, got %d", len(all))
	}
}
