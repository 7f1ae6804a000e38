package repository

import (
	"context"
	"log"
	"sync"
	"time"

	"daraja_stk/internal/domain/entities"
	"daraja_stk/internal/usecase/interfaces"
)

const defaultSweepInterval = 10 * time.Minute

// IdempotencyMemoryRepository keeps Idempotency-Key records in process
// memory. Records vanish on restart and are not shared between replicas.
type IdempotencyMemoryRepository struct {
	mu   sync.RWMutex
	data map[string]entities.IdempotencyRecord
	now  func() time.Time
}

var _ interfaces.IIdempotencyRepository = (*IdempotencyMemoryRepository)(nil)

func NewIdempotencyMemoryRepository() *IdempotencyMemoryRepository {
	return &IdempotencyMemoryRepository{
		data: make(map[string]entities.IdempotencyRecord),
		now:  time.Now,
	}
}

func (r *IdempotencyMemoryRepository) Get(_ context.Context, key string) (entities.IdempotencyRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.data[key]
	if !ok || rec.Expired(r.now()) {
		return entities.IdempotencyRecord{}, nil
	}
	return cloneRecord(rec), nil
}

func (r *IdempotencyMemoryRepository) Create(_ context.Context, rec entities.IdempotencyRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.data[rec.Key]; ok && !existing.Expired(r.now()) {
		return interfaces.ErrIdempotencyKeyExists
	}
	r.data[rec.Key] = cloneRecord(rec)
	return nil
}

func (r *IdempotencyMemoryRepository) Update(_ context.Context, rec entities.IdempotencyRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[rec.Key] = cloneRecord(rec)
	return nil
}

func (r *IdempotencyMemoryRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key)
	return nil
}

// StartSweeper evicts expired records every interval until ctx is done.
func (r *IdempotencyMemoryRepository) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.sweep()
			}
		}
	}()
}

func (r *IdempotencyMemoryRepository) sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	evicted := 0
	for key, rec := range r.data {
		if rec.Expired(now) {
			delete(r.data, key)
			evicted++
		}
	}
	if evicted > 0 {
		log.Printf("[idempotency][memory] sweeper evicted=%d", evicted)
	}
	return evicted
}

func cloneRecord(rec entities.IdempotencyRecord) entities.IdempotencyRecord {
	if rec.ResponseBody != nil {
		rec.ResponseBody = append([]byte(nil), rec.ResponseBody...)
	}
	return rec
}
