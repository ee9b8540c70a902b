package vehicleRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"conjunto/models"
)

// MemorySessionRepo implements SessionRepository with an in-process map,
// optionally snapshotted to a JSON file by the periodic flush job.
type MemorySessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]models.VisitorSession
	file     string
}

// NewMemorySessionRepo creates an in-memory session repository. When file is
// non-empty an existing snapshot is loaded from it.
func NewMemorySessionRepo(file string) *MemorySessionRepo {
	repo := &MemorySessionRepo{
		sessions: make(map[string]models.VisitorSession),
		file:     file,
	}
	if file != "" {
		repo.load()
	}
	return repo
}

func (r *MemorySessionRepo) load() {
	data, err := os.ReadFile(r.file)
	if err != nil {
		return
	}
	var sessions []models.VisitorSession
	if err := json.Unmarshal(data, &sessions); err != nil {
		return
	}
	for _, s := range sessions {
		r.sessions[s.ID] = s
	}
}

// Flush writes the current session set to the snapshot file.
func (r *MemorySessionRepo) Flush() error {
	if r.file == "" {
		return nil
	}
	r.mu.RLock()
	sessions := make([]models.VisitorSession, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.mu.RUnlock()

	data, err := json.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session snapshot: %w", err)
	}
	return os.WriteFile(r.file, data, 0o644)
}

func (r *MemorySessionRepo) Create(ctx context.Context, s *models.VisitorSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[s.ID]; exists {
		return fmt.Errorf("visitor session %s already exists", s.ID)
	}
	r.sessions[s.ID] = *s
	return nil
}

func (r *MemorySessionRepo) Update(ctx context.Context, s *models.VisitorSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[s.ID]; !exists {
		return fmt.Errorf("visitor session %s not found", s.ID)
	}
	r.sessions[s.ID] = *s
	return nil
}

func (r *MemorySessionRepo) FindByID(ctx context.Context, id string) (*models.VisitorSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	out := s
	return &out, nil
}

func (r *MemorySessionRepo) FindActiveByPlate(ctx context.Context, plate string) (*models.VisitorSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.sessions {
		if s.Active && s.Plate == plate {
			out := s
			return &out, nil
		}
	}
	return nil, nil
}

func (r *MemorySessionRepo) FindAll(ctx context.Context) ([]models.VisitorSession, error) {
	return r.filter(func(models.VisitorSession) bool { return true }), nil
}

func (r *MemorySessionRepo) FindActive(ctx context.Context) ([]models.VisitorSession, error) {
	return r.filter(func(s models.VisitorSession) bool { return s.Active }), nil
}

func (r *MemorySessionRepo) FindByEntryRange(ctx context.Context, from, to time.Time) ([]models.VisitorSession, error) {
	return r.filter(func(s models.VisitorSession) bool {
		return !s.EntryTime.Before(from) && s.EntryTime.Before(to)
	}), nil
}

// filter returns matching sessions sorted by entry time, newest first.
func (r *MemorySessionRepo) filter(keep func(models.VisitorSession) bool) []models.VisitorSession {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.VisitorSession
	for _, s := range r.sessions {
		if keep(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].EntryTime.After(out[j].EntryTime)
	})
	return out
}
