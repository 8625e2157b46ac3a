package redisx

import "time"

const (
	// idem:booking:{customer_id}:{idempotency_key} -> appointment id, or
	// "pending" while the first request is still running.
	KeyIdemBooking = "idem:booking:%d:%s"
)

var (
	TTLIdempotency = 24 * time.Hour
	TTLPending     = 30 * time.Second
)
