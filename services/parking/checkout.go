package parking

import (
	"context"
	"time"

	"conjunto/models"
)

// CheckoutVehicle closes the active session for a plate: it computes the fee
// for the stay, stamps the session, releases the assigned slot and appends a
// receipt. The three writes form one durable unit; if a later write fails the
// earlier ones are compensated so callers never observe a closed session
// without its receipt.
func (s *DefaultParkingService) CheckoutVehicle(ctx context.Context, plate string, now time.Time) (*CheckoutResult, error) {
	plate = normalizePlate(plate)
	if plate == "" {
		return nil, newError(CodeInvalidInput, "plate is required")
	}

	if err := s.locks.acquire(ctx, plate, s.LockWait); err != nil {
		return nil, err
	}
	defer s.locks.release(plate)

	session, err := s.SessionRepo.FindActiveByPlate(ctx, plate)
	if err != nil {
		return nil, newError(CodePersistenceFailure, "failed to look up plate %s: %v", plate, err)
	}
	if session == nil {
		return nil, newError(CodeSessionNotFound, "no active session for plate %s", plate)
	}

	result, err := ComputeFee(session.EntryTime, now, s.Tariff())
	if err != nil {
		return nil, err
	}

	// Close the session.
	original := *session
	exit := now
	session.ExitTime = &exit
	session.Active = false
	session.FeeCharged = result.Fee
	session.FeeBreakdown = result.Breakdown
	if err := s.SessionRepo.Update(ctx, session); err != nil {
		return nil, newError(CodePersistenceFailure, "failed to close session for %s: %v", plate, err)
	}

	// Release the assigned slot, undoing the close if the registry write fails.
	if session.SlotNumber != "" {
		if err := s.releaseSlot(ctx, session.SlotNumber); err != nil {
			s.rollbackSession(ctx, &original)
			return nil, err
		}
	}

	// Generate the receipt; the store assigns the receipt id.
	receipt := &models.ParkingReceipt{
		SessionID:      session.ID,
		Plate:          session.Plate,
		Destination:    session.Destination,
		EntryTime:      session.EntryTime,
		ExitTime:       exit,
		ElapsedMinutes: result.ElapsedMinutes,
		ElapsedHours:   result.ElapsedHours,
		Fee:            result.Fee,
		Breakdown:      result.Breakdown,
		GeneratedAt:    now,
	}
	if err := s.ReceiptRepo.Append(ctx, receipt); err != nil {
		// Compensate: reopen the session and re-occupy the slot so the retry
		// sees the pre-checkout state.
		if session.SlotNumber != "" {
			if _, occErr := s.occupySlot(ctx, session.SlotNumber, "Visitor - "+plate); occErr != nil && s.Logger != nil {
				s.Logger.Sugar().Errorf("checkout rollback: failed to re-occupy slot %s: %v", session.SlotNumber, occErr)
			}
		}
		s.rollbackSession(ctx, &original)
		return nil, newError(CodePersistenceFailure, "failed to append receipt for %s: %v", plate, err)
	}

	session.ReceiptID = receipt.ID
	if err := s.SessionRepo.Update(ctx, session); err != nil && s.Logger != nil {
		// The receipt exists and the session is closed; losing the back
		// reference is tolerable, so only log it.
		s.Logger.Sugar().Warnf("failed to stamp receipt id on session %s: %v", session.ID, err)
	}

	if s.Logger != nil {
		s.Logger.Sugar().Infof("vehicle %s checked out after %d minute(s), charged $%d (%s)",
			plate, result.ElapsedMinutes, result.Fee, result.Breakdown)
	}
	return &CheckoutResult{Session: session, Receipt: receipt}, nil
}

// rollbackSession restores the pre-checkout session state after a failed
// write further down the unit.
func (s *DefaultParkingService) rollbackSession(ctx context.Context, original *models.VisitorSession) {
	if err := s.SessionRepo.Update(ctx, original); err != nil && s.Logger != nil {
		s.Logger.Sugar().Errorf("checkout rollback: failed to restore session %s: %v", original.ID, err)
	}
}
