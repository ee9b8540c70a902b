package parking

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"conjunto/database/repository"
	"conjunto/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const statsCacheKey = "parking:stats"
const statsCacheTTL = 30 * time.Second

// DefaultParkingService implements Service over the injected stores. It is
// storage-agnostic; production wiring selects the memory or Mongo
// repositories behind the same interfaces.
type DefaultParkingService struct {
	SessionRepo repository.SessionRepository
	SlotRepo    repository.SlotRepository
	ReceiptRepo repository.ReceiptRepository
	CacheClient *redis.Client // optional; stats caching is skipped when nil
	Logger      *zap.Logger
	LockWait    time.Duration

	tariffMu sync.RWMutex
	tariff   models.Tariff

	locks *plateLocks
}

// NewDefaultParkingService wires a parking service with the given stores and
// initial tariff.
func NewDefaultParkingService(
	sessions repository.SessionRepository,
	slots repository.SlotRepository,
	receipts repository.ReceiptRepository,
	cache *redis.Client,
	logger *zap.Logger,
	tariff models.Tariff,
	lockWait time.Duration,
) *DefaultParkingService {
	if lockWait <= 0 {
		lockWait = 2 * time.Second
	}
	return &DefaultParkingService{
		SessionRepo: sessions,
		SlotRepo:    slots,
		ReceiptRepo: receipts,
		CacheClient: cache,
		Logger:      logger,
		LockWait:    lockWait,
		tariff:      tariff,
		locks:       newPlateLocks(),
	}
}

// normalizePlate upper-cases and trims a plate string.
func normalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

// Tariff returns the fee schedule currently in force.
func (s *DefaultParkingService) Tariff() models.Tariff {
	s.tariffMu.RLock()
	defer s.tariffMu.RUnlock()
	return s.tariff
}

// SetTariff replaces the fee schedule. All values must be positive.
func (s *DefaultParkingService) SetTariff(t models.Tariff) error {
	if t.FreeMinutes < 0 || t.HourlyRate <= 0 || t.HourlyTierCeilingHours <= 0 ||
		t.DailyRate <= 0 || t.DayLengthHours <= 0 {
		return newError(CodeInvalidInput, "tariff values must be positive")
	}
	if t.HourlyTierCeilingHours > t.DayLengthHours {
		return newError(CodeInvalidInput,
			"hourly tier ceiling (%dh) cannot exceed the billable day length (%dh)",
			t.HourlyTierCeilingHours, t.DayLengthHours)
	}
	s.tariffMu.Lock()
	s.tariff = t
	s.tariffMu.Unlock()
	return nil
}

func (s *DefaultParkingService) ListSessions(ctx context.Context) ([]models.VisitorSession, error) {
	return s.SessionRepo.FindAll(ctx)
}

func (s *DefaultParkingService) ListActiveSessions(ctx context.Context) ([]models.VisitorSession, error) {
	return s.SessionRepo.FindActive(ctx)
}

// ListTodaySessions returns the sessions whose entry falls on the calendar
// day of now, newest first.
func (s *DefaultParkingService) ListTodaySessions(ctx context.Context, now time.Time) ([]models.VisitorSession, error) {
	year, month, day := now.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	return s.SessionRepo.FindByEntryRange(ctx, start, start.AddDate(0, 0, 1))
}

func (s *DefaultParkingService) ListReceipts(ctx context.Context) ([]models.ParkingReceipt, error) {
	return s.ReceiptRepo.FindAll(ctx)
}

func (s *DefaultParkingService) GetReceipt(ctx context.Context, id string) (*models.ParkingReceipt, error) {
	receipt, err := s.ReceiptRepo.FindByID(ctx, id)
	if err != nil {
		return nil, newError(CodePersistenceFailure, "failed to fetch receipt %s: %v", id, err)
	}
	if receipt == nil {
		return nil, newError(CodeReceiptNotFound, "receipt %s not found", id)
	}
	return receipt, nil
}

func (s *DefaultParkingService) ListSlots(ctx context.Context) ([]models.ParkingSlot, error) {
	return s.SlotRepo.FindAll(ctx)
}

// CreateSlot registers a new visitor slot. Existing slot numbers are rejected.
func (s *DefaultParkingService) CreateSlot(ctx context.Context, slot models.ParkingSlot) error {
	existing, err := s.SlotRepo.Get(ctx, slot.Number)
	if err != nil {
		return newError(CodePersistenceFailure, "failed to fetch slot %s: %v", slot.Number, err)
	}
	if existing != nil {
		return newError(CodeSlotUnavailable, "slot %s already exists", slot.Number)
	}
	slot.Occupied = false
	slot.OccupantRef = ""
	if err := s.SlotRepo.Save(ctx, &slot); err != nil {
		return newError(CodePersistenceFailure, "failed to save slot %s: %v", slot.Number, err)
	}
	return nil
}

// Report summarizes visitor sessions whose entry falls inside [from, to).
func (s *DefaultParkingService) Report(ctx context.Context, from, to time.Time) (*VehicleReport, error) {
	sessions, err := s.SessionRepo.FindByEntryRange(ctx, from, to)
	if err != nil {
		return nil, newError(CodePersistenceFailure, "failed to query sessions: %v", err)
	}
	var collected int64
	for _, sess := range sessions {
		if !sess.Active {
			collected += sess.FeeCharged
		}
	}
	return &VehicleReport{
		From:           from,
		To:             to,
		Vehicles:       sessions,
		TotalVehicles:  len(sessions),
		TotalCollected: collected,
	}, nil
}

// Stats builds the dashboard summary, served from the Redis cache when a
// fresh snapshot exists.
func (s *DefaultParkingService) Stats(ctx context.Context) (*DashboardStats, error) {
	if s.CacheClient != nil {
		if cached, err := s.CacheClient.Get(ctx, statsCacheKey).Result(); err == nil {
			var stats DashboardStats
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return &stats, nil
			}
		}
	}

	active, err := s.SessionRepo.FindActive(ctx)
	if err != nil {
		return nil, newError(CodePersistenceFailure, "failed to query active sessions: %v", err)
	}
	slots, err := s.SlotRepo.FindAll(ctx)
	if err != nil {
		return nil, newError(CodePersistenceFailure, "failed to query slots: %v", err)
	}
	receipts, err := s.ReceiptRepo.FindAll(ctx)
	if err != nil {
		return nil, newError(CodePersistenceFailure, "failed to query receipts: %v", err)
	}

	stats := &DashboardStats{
		ActiveVehicles: len(active),
		ReceiptsIssued: len(receipts),
	}
	for _, slot := range slots {
		if slot.Occupied {
			stats.OccupiedSlots++
		} else {
			stats.FreeSlots++
		}
	}
	for _, receipt := range receipts {
		stats.TotalCollected += receipt.Fee
	}

	if s.CacheClient != nil {
		if data, err := json.Marshal(stats); err == nil {
			if err := s.CacheClient.Set(ctx, statsCacheKey, data, statsCacheTTL).Err(); err != nil && s.Logger != nil {
				s.Logger.Warn("failed to cache dashboard stats", zap.Error(err))
			}
		}
	}
	return stats, nil
}
