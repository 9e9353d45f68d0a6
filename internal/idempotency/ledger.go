package idempotency

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/catalyst-itsm/intake-service/internal/domain"
)

// TTL is the validity window of an accepted key. A replay inside the window
// is rejected; after it elapses the key may be admitted again.
const TTL = 24 * time.Hour

// ErrDuplicate is returned when a key has already been admitted and its
// record is still live.
var ErrDuplicate = errors.New("idempotency key already used")

// Ledger records which request keys have been accepted. Admit is the only
// access path; callers never read or write records directly.
//
// Admit returns nil when the key is accepted (creating or replacing its
// record with a fresh TTL), ErrDuplicate when the key is live, and any other
// error when the backing store is unavailable. An unavailable store must
// never be treated as acceptance.
type Ledger interface {
	Admit(ctx context.Context, key string) error
}

// MemoryLedger is an in-process ledger backed by a map with a single mutex.
// The mutex makes check-then-insert atomic, so two concurrent requests
// sharing a key serialize and exactly one is admitted. Expired records are
// reaped lazily on the next Admit for the same key.
type MemoryLedger struct {
	mu      sync.Mutex
	records map[string]domain.IdempotencyRecord
	now     func() time.Time
}

// NewMemoryLedger builds an empty ledger using the wall clock.
func NewMemoryLedger() *MemoryLedger {
	return NewMemoryLedgerWithClock(time.Now)
}

// NewMemoryLedgerWithClock builds a ledger with an injected clock.
func NewMemoryLedgerWithClock(now func() time.Time) *MemoryLedger {
	return &MemoryLedger{
		records: make(map[string]domain.IdempotencyRecord),
		now:     now,
	}
}

// Admit implements Ledger.
func (l *MemoryLedger) Admit(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if record, ok := l.records[key]; ok && record.Live(now) {
		return ErrDuplicate
	}
	l.records[key] = domain.IdempotencyRecord{
		Key:       key,
		ExpiresAt: now.Add(TTL),
	}
	return nil
}

// Len reports the number of stored records, live or expired.
func (l *MemoryLedger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}
