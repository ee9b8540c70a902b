package slotRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"conjunto/models"
)

// MemorySlotRepo implements SlotRepository with an in-process map keyed by
// slot number.
type MemorySlotRepo struct {
	mu    sync.RWMutex
	slots map[string]models.ParkingSlot
	file  string
}

// NewMemorySlotRepo creates an in-memory slot repository, loading an existing
// snapshot from file when present.
func NewMemorySlotRepo(file string) *MemorySlotRepo {
	repo := &MemorySlotRepo{
		slots: make(map[string]models.ParkingSlot),
		file:  file,
	}
	if file != "" {
		repo.load()
	}
	return repo
}

func (r *MemorySlotRepo) load() {
	data, err := os.ReadFile(r.file)
	if err != nil {
		return
	}
	var slots []models.ParkingSlot
	if err := json.Unmarshal(data, &slots); err != nil {
		return
	}
	for _, s := range slots {
		r.slots[s.Number] = s
	}
}

// Flush writes the current slot registry to the snapshot file.
func (r *MemorySlotRepo) Flush() error {
	if r.file == "" {
		return nil
	}
	slots, _ := r.FindAll(context.Background())
	data, err := json.MarshalIndent(slots, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal slot snapshot: %w", err)
	}
	return os.WriteFile(r.file, data, 0o644)
}

func (r *MemorySlotRepo) Get(ctx context.Context, number string) (*models.ParkingSlot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slot, ok := r.slots[number]
	if !ok {
		return nil, nil
	}
	out := slot
	return &out, nil
}

func (r *MemorySlotRepo) Save(ctx context.Context, slot *models.ParkingSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.slots[slot.Number] = *slot
	return nil
}

func (r *MemorySlotRepo) FindAll(ctx context.Context) ([]models.ParkingSlot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slots := make([]models.ParkingSlot, 0, len(r.slots))
	for _, s := range r.slots {
		slots = append(slots, s)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Number < slots[j].Number })
	return slots, nil
}
