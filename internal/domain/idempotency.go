package domain

import "time"

// IdempotencyRecord marks a request key as already accepted. A key with an
// unexpired record must not trigger the underlying mutation again; once the
// expiry passes the record is logically dead and the key may be reused.
type IdempotencyRecord struct {
	Key       string
	ExpiresAt time.Time
}

// Live reports whether the record still blocks replays at the given instant.
func (r IdempotencyRecord) Live(now time.Time) bool {
	return now.Before(r.ExpiresAt)
}
