package ledger

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// MemoryRepo is an in-process Repository for tests and dry runs.
type MemoryRepo struct {
	mu    sync.Mutex
	users map[string]Ledger
}

// NewMemoryRepo creates an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{users: make(map[string]Ledger)}
}

func (r *MemoryRepo) Get(_ context.Context, userID string) (map[string]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[userID].Clone(), nil
}

func (r *MemoryRepo) Merge(_ context.Context, userID string, delta map[string]int) (map[string]int, error) {
	for skill, xp := range delta {
		if xp < 0 {
			return nil, fmt.Errorf("negative xp %d for skill %q", xp, skill)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	l := r.users[userID]
	if l == nil {
		l = make(Ledger)
		r.users[userID] = l
	}
	for skill, xp := range delta {
		if xp == 0 {
			continue
		}
		l[skill] += xp
	}
	return l.Clone(), nil
}

func (r *MemoryRepo) Reset(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, userID)
	return nil
}

// Users lists user IDs with a ledger, sorted.
func (r *MemoryRepo) Users(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Sorted(maps.Keys(r.users)), nil
}
