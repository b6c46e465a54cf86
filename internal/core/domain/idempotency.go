package domain

import "time"

// IdempotencyStatus is the lifecycle state of an idempotency key.
type IdempotencyStatus string

const (
	// IdempotencyInFlight marks a key whose first execution has begun but not
	// yet committed a result.
	IdempotencyInFlight IdempotencyStatus = "IN_FLIGHT"
	// IdempotencyCompleted marks a key with a stored result snapshot; replays
	// return the snapshot instead of re-executing side effects.
	IdempotencyCompleted IdempotencyStatus = "COMPLETED"
)

// IdempotencyRecord is the durable dedup state for one caller-supplied key.
// Keys are namespaced per operation type and retained long enough to cover
// realistic client retry windows.
type IdempotencyRecord struct {
	Key            string            `json:"key"`
	Operation      string            `json:"operation"`
	Status         IdempotencyStatus `json:"status"`
	ResultSnapshot []byte            `json:"resultSnapshot,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
}
