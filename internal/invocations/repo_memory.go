package invocations

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data []Invocation
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Create appends an invocation.
func (r *MemoryRepo) Create(ctx context.Context, inv Invocation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, inv)
	return nil
}

// ListRecent returns invocations newest first.
func (r *MemoryRepo) ListRecent(ctx context.Context, limit int) ([]Invocation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit = ClampLimit(limit)

	r.mu.RLock()
	out := make([]Invocation, len(r.data))
	copy(out, r.data)
	r.mu.RUnlock()

	// Reverse insertion order first so equal timestamps keep newest-first.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// CountByFeature returns the number of invocations per feature.
func (r *MemoryRepo) CountByFeature(ctx context.Context) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]int)
	for _, inv := range r.data {
		out[inv.Feature]++
	}
	return out, nil
}
