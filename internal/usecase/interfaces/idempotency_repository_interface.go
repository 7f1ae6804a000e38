package interfaces

import (
	"context"
	"daraja_stk/internal/domain/entities"
	"errors"
)

var ErrIdempotencyKeyExists = errors.New("idempotency key already exists")

// IIdempotencyRepository stores recently seen Idempotency-Key records.
//
// Get returns a zero record (empty Key) when the key is unknown or expired.
// Create fails with ErrIdempotencyKeyExists when a live record already holds the key.

type IIdempotencyRepository interface {
	Get(ctx context.Context, key string) (entities.IdempotencyRecord, error)
	Create(ctx context.Context, rec entities.IdempotencyRecord) error
	Update(ctx context.Context, rec entities.IdempotencyRecord) error
	Delete(ctx context.Context, key string) error
}
