package billing

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory ConfirmationRepo.
type MemoryRepo struct {
	mu   sync.Mutex
	data map[string]Confirmation
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Confirmation)}
}

func (r *MemoryRepo) Record(ctx context.Context, c Confirmation) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[c.SessionID]; ok {
		return false, nil
	}
	r.data[c.SessionID] = c
	return true, nil
}

func (r *MemoryRepo) Get(ctx context.Context, sessionID string) (Confirmation, error) {
	if err := ctx.Err(); err != nil {
		return Confirmation{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.data[sessionID]
	if !ok {
		return Confirmation{}, ErrNotFound
	}
	return c, nil
}
