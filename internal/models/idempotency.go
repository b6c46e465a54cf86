package models

import "time"

// IdempotencyKey represents a row in the idempotency_keys table.
type IdempotencyKey struct {
	Key            string
	Operation      string
	Status         string
	ResultSnapshot []byte
	CreatedAt      time.Time
}
