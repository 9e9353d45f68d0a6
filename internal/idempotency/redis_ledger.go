package idempotency

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/catalyst-itsm/intake-service/pkg/util"
)

const keyPrefix = "idempotency:"

// RedisLedger stores idempotency records in Redis. SET NX with a TTL gives an
// atomic insert-if-absent, so concurrent requests sharing a key serialize on
// the store itself and expiry needs no eviction loop.
type RedisLedger struct {
	client *redis.Client
}

// NewRedisLedger wraps the provided client.
func NewRedisLedger(client *redis.Client) *RedisLedger {
	return &RedisLedger{client: client}
}

// Admit implements Ledger.
func (l *RedisLedger) Admit(ctx context.Context, key string) error {
	set, err := l.client.SetNX(ctx, keyPrefix+key, 1, TTL).Result()
	if err != nil {
		return util.NewInfrastructureError("idempotency ledger unavailable", err)
	}
	if !set {
		return ErrDuplicate
	}
	return nil
}
