package parking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	receiptRepo "conjunto/database/repository/receipt"
	slotRepo "conjunto/database/repository/slot"
	vehicleRepo "conjunto/database/repository/vehicle"
	"conjunto/models"

	"go.uber.org/zap"
)

func newTestService() *DefaultParkingService {
	return NewDefaultParkingService(
		vehicleRepo.NewMemorySessionRepo(""),
		slotRepo.NewMemorySlotRepo(""),
		receiptRepo.NewMemoryReceiptRepo(""),
		nil,
		zap.NewNop(),
		models.DefaultTariff(),
		200*time.Millisecond,
	)
}

func mustEnter(t *testing.T, svc *DefaultParkingService, in EntryInput) *models.VisitorSession {
	t.Helper()
	session, err := svc.RegisterEntry(context.Background(), in)
	if err != nil {
		t.Fatalf("RegisterEntry(%s): %v", in.Plate, err)
	}
	return session
}

func TestCheckoutChargesAndReleasesSlot(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	if err := svc.CreateSlot(ctx, models.ParkingSlot{Number: "C-01", Level: "Basement 1"}); err != nil {
		t.Fatalf("CreateSlot: %v", err)
	}

	session := mustEnter(t, svc, EntryInput{
		Plate:       " abc123 ",
		Destination: "Tower 1 - Apt 301",
		SlotNumber:  "C-01",
	})
	if session.Plate != "ABC123" {
		t.Fatalf("plate not normalized: %q", session.Plate)
	}

	now := session.EntryTime.Add(4 * time.Hour)
	result, err := svc.CheckoutVehicle(ctx, "abc123", now)
	if err != nil {
		t.Fatalf("CheckoutVehicle: %v", err)
	}

	if result.Session.Active {
		t.Error("session should be closed after checkout")
	}
	if result.Session.ExitTime == nil || !result.Session.ExitTime.Equal(now) {
		t.Errorf("exit time = %v, want %v", result.Session.ExitTime, now)
	}
	if result.Session.FeeCharged != 6000 {
		t.Errorf("fee charged = %d, want 6000", result.Session.FeeCharged)
	}
	if result.Receipt.ID != "REC-001" {
		t.Errorf("receipt id = %q, want REC-001", result.Receipt.ID)
	}
	if result.Receipt.SessionID != session.ID {
		t.Errorf("receipt session id = %q, want %q", result.Receipt.SessionID, session.ID)
	}
	if result.Receipt.Fee != 6000 || result.Receipt.ElapsedMinutes != 240 {
		t.Errorf("receipt fee/minutes = %d/%d, want 6000/240", result.Receipt.Fee, result.Receipt.ElapsedMinutes)
	}

	slot, err := svc.SlotRepo.Get(ctx, "C-01")
	if err != nil {
		t.Fatalf("SlotRepo.Get: %v", err)
	}
	if slot.Occupied || slot.OccupantRef != "" {
		t.Errorf("slot should be free after checkout, got %+v", slot)
	}

	// The same slot can be taken again by the next visitor.
	mustEnter(t, svc, EntryInput{Plate: "XYZ789", SlotNumber: "C-01"})
}

func TestCheckoutTwiceReportsSessionNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	session := mustEnter(t, svc, EntryInput{Plate: "ABC123"})

	now := session.EntryTime.Add(time.Hour)
	if _, err := svc.CheckoutVehicle(ctx, "ABC123", now); err != nil {
		t.Fatalf("first checkout: %v", err)
	}

	_, err := svc.CheckoutVehicle(ctx, "ABC123", now.Add(time.Minute))
	if !IsCode(err, CodeSessionNotFound) {
		t.Fatalf("expected %s on second checkout, got %v", CodeSessionNotFound, err)
	}

	receipts, err := svc.ListReceipts(ctx)
	if err != nil {
		t.Fatalf("ListReceipts: %v", err)
	}
	if len(receipts) != 1 {
		t.Fatalf("expected exactly one receipt, got %d", len(receipts))
	}
}

func TestCheckoutUnknownPlate(t *testing.T) {
	svc := newTestService()
	_, err := svc.CheckoutVehicle(context.Background(), "GHOST1", time.Now())
	if !IsCode(err, CodeSessionNotFound) {
		t.Fatalf("expected %s, got %v", CodeSessionNotFound, err)
	}
}

func TestConcurrentCheckoutsProduceOneReceipt(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	session := mustEnter(t, svc, EntryInput{Plate: "ABC123"})
	now := session.EntryTime.Add(3 * time.Hour)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CheckoutVehicle(ctx, "ABC123", now)
		}(i)
	}
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case IsCode(err, CodeSessionNotFound), IsCode(err, CodeBusy):
		default:
			t.Fatalf("unexpected checkout error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly one successful checkout, got %d", succeeded)
	}

	receipts, err := svc.ListReceipts(ctx)
	if err != nil {
		t.Fatalf("ListReceipts: %v", err)
	}
	if len(receipts) != 1 {
		t.Fatalf("expected exactly one receipt, got %d", len(receipts))
	}
}

func TestCheckoutBusyWhenPlateLockHeld(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	mustEnter(t, svc, EntryInput{Plate: "ABC123"})

	if err := svc.locks.acquire(ctx, "ABC123", time.Second); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer svc.locks.release("ABC123")

	_, err := svc.CheckoutVehicle(ctx, "ABC123", time.Now())
	if !IsCode(err, CodeBusy) {
		t.Fatalf("expected %s while lock held, got %v", CodeBusy, err)
	}
}

// failingReceiptRepo rejects every append so the checkout rollback path can be
// exercised.
type failingReceiptRepo struct {
	receiptRepo.ReceiptRepository
}

func (f *failingReceiptRepo) Append(ctx context.Context, r *models.ParkingReceipt) error {
	return errors.New("store unavailable")
}

func TestCheckoutRollsBackWhenReceiptWriteFails(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	svc.ReceiptRepo = &failingReceiptRepo{ReceiptRepository: svc.ReceiptRepo}

	if err := svc.CreateSlot(ctx, models.ParkingSlot{Number: "C-02"}); err != nil {
		t.Fatalf("CreateSlot: %v", err)
	}
	session := mustEnter(t, svc, EntryInput{Plate: "ABC123", SlotNumber: "C-02"})

	_, err := svc.CheckoutVehicle(ctx, "ABC123", session.EntryTime.Add(5*time.Hour))
	if !IsCode(err, CodePersistenceFailure) {
		t.Fatalf("expected %s, got %v", CodePersistenceFailure, err)
	}

	// The session must still be open and the slot still occupied.
	restored, err := svc.SessionRepo.FindActiveByPlate(ctx, "ABC123")
	if err != nil {
		t.Fatalf("FindActiveByPlate: %v", err)
	}
	if restored == nil || !restored.Active || restored.ExitTime != nil || restored.FeeCharged != 0 {
		t.Fatalf("session not restored after rollback: %+v", restored)
	}
	slot, err := svc.SlotRepo.Get(ctx, "C-02")
	if err != nil {
		t.Fatalf("SlotRepo.Get: %v", err)
	}
	if !slot.Occupied {
		t.Error("slot should remain occupied after rollback")
	}
}
