package parking

import (
	"context"
	"testing"
	"time"

	"conjunto/models"
)

func TestRegisterEntryRejectsDuplicatePlate(t *testing.T) {
	svc := newTestService()
	mustEnter(t, svc, EntryInput{Plate: "ABC123", Destination: "Tower 2 - Apt 505"})

	_, err := svc.RegisterEntry(context.Background(), EntryInput{Plate: "abc123"})
	if !IsCode(err, CodeVehicleInside) {
		t.Fatalf("expected %s, got %v", CodeVehicleInside, err)
	}
}

func TestRegisterEntryRequiresPlate(t *testing.T) {
	svc := newTestService()
	_, err := svc.RegisterEntry(context.Background(), EntryInput{Plate: "   "})
	if err == nil {
		t.Fatal("expected an error for a blank plate")
	}
}

func TestRegisterEntrySlotConflicts(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	if err := svc.CreateSlot(ctx, models.ParkingSlot{Number: "C-01"}); err != nil {
		t.Fatalf("CreateSlot: %v", err)
	}
	mustEnter(t, svc, EntryInput{Plate: "AAA111", SlotNumber: "C-01"})

	// Occupied slot.
	_, err := svc.RegisterEntry(ctx, EntryInput{Plate: "BBB222", SlotNumber: "C-01"})
	if !IsCode(err, CodeSlotUnavailable) {
		t.Fatalf("expected %s for occupied slot, got %v", CodeSlotUnavailable, err)
	}

	// Unknown slot.
	_, err = svc.RegisterEntry(ctx, EntryInput{Plate: "BBB222", SlotNumber: "Z-99"})
	if !IsCode(err, CodeSlotUnavailable) {
		t.Fatalf("expected %s for unknown slot, got %v", CodeSlotUnavailable, err)
	}

	// The failed entries must not have created sessions.
	active, err := svc.ListActiveSessions(ctx)
	if err != nil {
		t.Fatalf("ListActiveSessions: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected one active session, got %d", len(active))
	}

	slot, err := svc.SlotRepo.Get(ctx, "C-01")
	if err != nil {
		t.Fatalf("SlotRepo.Get: %v", err)
	}
	if slot.OccupantRef != "Visitor - AAA111" {
		t.Errorf("occupant ref = %q, want %q", slot.OccupantRef, "Visitor - AAA111")
	}
}

func TestCreateSlotRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	if err := svc.CreateSlot(ctx, models.ParkingSlot{Number: "C-01"}); err != nil {
		t.Fatalf("CreateSlot: %v", err)
	}
	err := svc.CreateSlot(ctx, models.ParkingSlot{Number: "C-01"})
	if !IsCode(err, CodeSlotUnavailable) {
		t.Fatalf("expected %s, got %v", CodeSlotUnavailable, err)
	}
}

func TestReleaseSlotIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	if err := svc.CreateSlot(ctx, models.ParkingSlot{Number: "C-01"}); err != nil {
		t.Fatalf("CreateSlot: %v", err)
	}

	if err := svc.releaseSlot(ctx, "C-01"); err != nil {
		t.Fatalf("releasing a free slot should be a no-op, got %v", err)
	}
	if err := svc.releaseSlot(ctx, "Z-99"); err != nil {
		t.Fatalf("releasing an unknown slot should be a no-op, got %v", err)
	}
}

func TestReportTotalsCollectedFees(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	first := mustEnter(t, svc, EntryInput{Plate: "AAA111"})
	if _, err := svc.CheckoutVehicle(ctx, "AAA111", first.EntryTime.Add(4*time.Hour)); err != nil {
		t.Fatalf("checkout AAA111: %v", err)
	}
	mustEnter(t, svc, EntryInput{Plate: "BBB222"}) // still inside

	report, err := svc.Report(ctx, first.EntryTime.Add(-time.Hour), first.EntryTime.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if report.TotalVehicles != 2 {
		t.Errorf("total vehicles = %d, want 2", report.TotalVehicles)
	}
	if report.TotalCollected != 6000 {
		t.Errorf("total collected = %d, want 6000", report.TotalCollected)
	}
}

func TestStatsCountsOccupancy(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	if err := svc.CreateSlot(ctx, models.ParkingSlot{Number: "C-01"}); err != nil {
		t.Fatalf("CreateSlot: %v", err)
	}
	if err := svc.CreateSlot(ctx, models.ParkingSlot{Number: "C-02"}); err != nil {
		t.Fatalf("CreateSlot: %v", err)
	}
	session := mustEnter(t, svc, EntryInput{Plate: "AAA111", SlotNumber: "C-01"})

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.ActiveVehicles != 1 || stats.OccupiedSlots != 1 || stats.FreeSlots != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	if _, err := svc.CheckoutVehicle(ctx, "AAA111", session.EntryTime.Add(3*time.Hour)); err != nil {
		t.Fatalf("CheckoutVehicle: %v", err)
	}
	stats, err = svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats after checkout: %v", err)
	}
	if stats.ActiveVehicles != 0 || stats.OccupiedSlots != 0 || stats.ReceiptsIssued != 1 {
		t.Fatalf("unexpected stats after checkout: %+v", stats)
	}
	if stats.TotalCollected != 3000 {
		t.Errorf("total collected = %d, want 3000", stats.TotalCollected)
	}
}

func TestListTodaySessions(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	mustEnter(t, svc, EntryInput{Plate: "AAA111"})

	today, err := svc.ListTodaySessions(ctx, time.Now())
	if err != nil {
		t.Fatalf("ListTodaySessions: %v", err)
	}
	if len(today) != 1 {
		t.Fatalf("expected one session today, got %d", len(today))
	}

	tomorrow, err := svc.ListTodaySessions(ctx, time.Now().AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("ListTodaySessions: %v", err)
	}
	if len(tomorrow) != 0 {
		t.Fatalf("expected no sessions tomorrow, got %d", len(tomorrow))
	}
}

func TestSetTariffValidation(t *testing.T) {
	svc := newTestService()

	if err := svc.SetTariff(models.Tariff{}); err == nil {
		t.Fatal("expected zero tariff to be rejected")
	}
	bad := models.DefaultTariff()
	bad.HourlyTierCeilingHours = 30
	if err := svc.SetTariff(bad); err == nil {
		t.Fatal("expected ceiling above day length to be rejected")
	}

	updated := models.DefaultTariff()
	updated.HourlyRate = 2000
	if err := svc.SetTariff(updated); err != nil {
		t.Fatalf("SetTariff: %v", err)
	}
	if got := svc.Tariff().HourlyRate; got != 2000 {
		t.Errorf("hourly rate = %d, want 2000", got)
	}
}
