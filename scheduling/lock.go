package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// ErrSlotLocked means another booking attempt holds the slot right now.
// Callers surface this as a booking conflict; the client may retry.
var ErrSlotLocked = errors.New("slot is currently being booked")

const lockTTL = 5 * time.Second

var unlockScript = goredis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

// WithSlotLock serializes booking attempts for one (doctor, timestamp) slot
// behind a Redis SetNX lock. The database's partial unique index remains the
// hard guarantee; the lock just keeps racing bookers from both reaching the
// insert and one of them eating a constraint error.
func WithSlotLock(ctx context.Context, client *goredis.Client, doctorID uint, slot time.Time, fn func() error) error {
	key := fmt.Sprintf("lock:slot:%d:%d", doctorID, slot.Unix())
	token := uuid.NewString()

	ok, err := client.SetNX(ctx, key, token, lockTTL).Result()
	if err != nil {
		return fmt.Errorf("acquire slot lock: %w", err)
	}
	if !ok {
		return ErrSlotLocked
	}
	defer func() {
		_, _ = unlockScript.Run(ctx, client, []string{key}, token).Result()
	}()

	return fn()
}
