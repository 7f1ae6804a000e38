package entities

import "time"

type IdempotencyState string

const (
	IdempotencyStateProcessing IdempotencyState = "PROCESSING"
	IdempotencyStateComplete   IdempotencyState = "COMPLETE"
)

// IdempotencyRecord remembers the response sent for an Idempotency-Key so a
// retried POST replays it instead of prompting the payer twice.
//
// Storage model (DynamoDB):
//   - PK: idempotency_key
//   - TTL attribute: expires_at (epoch seconds)
type IdempotencyRecord struct {
	Key          string           `json:"key"`
	BodyHash     string           `json:"body_hash"`
	State        IdempotencyState `json:"state"`
	StatusCode   int              `json:"status_code"`
	ResponseBody []byte           `json:"response_body,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	ExpiresAt    time.Time        `json:"expires_at"`
}

func (r IdempotencyRecord) Expired(now time.Time) bool {
	return !r.ExpiresAt.IsZero() && !now.Before(r.ExpiresAt)
}
