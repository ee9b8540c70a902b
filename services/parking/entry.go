package parking

import (
	"context"
	"time"

	"conjunto/models"

	"github.com/google/uuid"
)

// RegisterEntry records a visitor vehicle entering the complex. At most one
// active session may exist per plate; when a slot number is supplied the slot
// is occupied together with the session creation.
func (s *DefaultParkingService) RegisterEntry(ctx context.Context, in EntryInput) (*models.VisitorSession, error) {
	plate := normalizePlate(in.Plate)
	if plate == "" {
		return nil, newError(CodeInvalidInput, "plate is required")
	}

	if err := s.locks.acquire(ctx, plate, s.LockWait); err != nil {
		return nil, err
	}
	defer s.locks.release(plate)

	existing, err := s.SessionRepo.FindActiveByPlate(ctx, plate)
	if err != nil {
		return nil, newError(CodePersistenceFailure, "failed to look up plate %s: %v", plate, err)
	}
	if existing != nil {
		return nil, newError(CodeVehicleInside, "vehicle %s is already inside the complex", plate)
	}

	var occupiedSlot *models.ParkingSlot
	if in.SlotNumber != "" {
		occupiedSlot, err = s.occupySlot(ctx, in.SlotNumber, "Visitor - "+plate)
		if err != nil {
			return nil, err
		}
	}

	session := &models.VisitorSession{
		ID:           uuid.New().String(),
		Plate:        plate,
		VehicleType:  in.VehicleType,
		Destination:  in.Destination,
		SlotNumber:   in.SlotNumber,
		EntryTime:    time.Now(),
		Active:       true,
		RegisteredBy: in.RegisteredBy,
	}

	if err := s.SessionRepo.Create(ctx, session); err != nil {
		// Creation failed after the slot was taken: free it again so the
		// registry does not reference a session that never existed.
		if occupiedSlot != nil {
			s.releaseSlot(ctx, occupiedSlot.Number)
		}
		return nil, newError(CodePersistenceFailure, "failed to create session for %s: %v", plate, err)
	}

	if s.Logger != nil {
		s.Logger.Sugar().Infof("vehicle %s entered, destination %q, slot %q", plate, in.Destination, in.SlotNumber)
	}
	return session, nil
}

// occupySlot marks the slot as taken by occupantRef. Double occupancy and
// unknown slot numbers are rejected with slotUnavailable.
func (s *DefaultParkingService) occupySlot(ctx context.Context, number, occupantRef string) (*models.ParkingSlot, error) {
	slot, err := s.SlotRepo.Get(ctx, number)
	if err != nil {
		return nil, newError(CodePersistenceFailure, "failed to fetch slot %s: %v", number, err)
	}
	if slot == nil {
		return nil, newError(CodeSlotUnavailable, "slot %s does not exist", number)
	}
	if slot.Occupied {
		return nil, newError(CodeSlotUnavailable, "slot %s is occupied by %s", number, slot.OccupantRef)
	}

	slot.Occupied = true
	slot.OccupantRef = occupantRef
	if err := s.SlotRepo.Save(ctx, slot); err != nil {
		return nil, newError(CodePersistenceFailure, "failed to occupy slot %s: %v", number, err)
	}
	return slot, nil
}

// releaseSlot frees the slot. Releasing an already-free or unknown slot is a
// no-op so a retried checkout never fails here.
func (s *DefaultParkingService) releaseSlot(ctx context.Context, number string) error {
	slot, err := s.SlotRepo.Get(ctx, number)
	if err != nil {
		return newError(CodePersistenceFailure, "failed to fetch slot %s: %v", number, err)
	}
	if slot == nil || !slot.Occupied {
		return nil
	}

	slot.Occupied = false
	slot.OccupantRef = ""
	if err := s.SlotRepo.Save(ctx, slot); err != nil {
		return newError(CodePersistenceFailure, "failed to release slot %s: %v", number, err)
	}
	return nil
}
