package lock

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/chairtime/chairtime-api/internal/httperr"
)

// DefaultTTL bounds how long a crashed holder can keep a key. Callers doing
// network I/O under the lock must bound that I/O below this.
const DefaultTTL = 30 * time.Second

// Locker is a per-key mutex on redis. The booking engine takes one per
// (shop, date) around "recompute availability -> verify slot -> insert" so
// two customers cannot interleave between the check and the write across
// processes. The TTL is a safety net against a crashed holder.
type Locker struct {
	client   *redis.Client
	ttl      time.Duration
	retries  int
	retryGap time.Duration
}

func NewLocker(client *redis.Client) *Locker {
	return &Locker{
		client:   client,
		ttl:      DefaultTTL,
		retries:  10,
		retryGap: 100 * time.Millisecond,
	}
}

// Acquire blocks (bounded) until the key is taken and returns a release
// function. Running out of attempts surfaces as a lost slot race: the caller
// re-queries availability exactly as it would after a ledger conflict.
func (l *Locker) Acquire(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()

	for attempt := 0; attempt <= l.retries; attempt++ {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			release := func() {
				// Only the holder may delete its own lock.
				l.client.Eval(context.Background(), releaseScript, []string{key}, token)
			}
			return release, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retryGap):
		}
	}

	return nil, httperr.ErrBusiness(httperr.CodeSlotNoLongerAvailable)
}

const releaseScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
    return redis.call("del", KEYS[1])
end
return 0
`
