package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/clinicore/clinic-backend/models"
)

func newTestRedis(t *testing.T) *goredis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestWithSlotLockMutualExclusion(t *testing.T) {
	client := newTestRedis(t)
	ctx := context.Background()
	slot := time.Date(2025, 6, 2, 9, 0, 0, 0, time.Local)

	var second error
	err := WithSlotLock(ctx, client, 1, slot, func() error {
		// A concurrent booker arriving while the claim is in flight.
		second = WithSlotLock(ctx, client, 1, slot, func() error {
			t.Error("second booker must not enter the critical section")
			return nil
		})
		return nil
	})
	if err != nil {
		t.Fatalf("first booker failed: %v", err)
	}
	if !errors.Is(second, ErrSlotLocked) {
		t.Errorf("second booker got %v, want ErrSlotLocked", second)
	}
}

func TestWithSlotLockReleasesAfterCompletion(t *testing.T) {
	client := newTestRedis(t)
	ctx := context.Background()
	slot := time.Date(2025, 6, 2, 9, 30, 0, 0, time.Local)

	if err := WithSlotLock(ctx, client, 1, slot, func() error { return nil }); err != nil {
		t.Fatalf("first claim failed: %v", err)
	}
	if err := WithSlotLock(ctx, client, 1, slot, func() error { return nil }); err != nil {
		t.Errorf("lock not released after completion: %v", err)
	}
}

func TestWithSlotLockIndependentSlots(t *testing.T) {
	client := newTestRedis(t)
	ctx := context.Background()
	slot := time.Date(2025, 6, 2, 10, 0, 0, 0, time.Local)

	// A different doctor and a different timestamp must not contend.
	err := WithSlotLock(ctx, client, 1, slot, func() error {
		if err := WithSlotLock(ctx, client, 2, slot, func() error { return nil }); err != nil {
			return err
		}
		return WithSlotLock(ctx, client, 1, slot.Add(models.SlotDuration), func() error { return nil })
	})
	if err != nil {
		t.Errorf("independent slots blocked each other: %v", err)
	}
}

func TestWithSlotLockReleasesOnError(t *testing.T) {
	client := newTestRedis(t)
	ctx := context.Background()
	slot := time.Date(2025, 6, 2, 11, 0, 0, 0, time.Local)

	boom := errors.New("insert failed")
	err := WithSlotLock(ctx, client, 1, slot, func() error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("claim error not propagated: %v", err)
	}
	if err := WithSlotLock(ctx, client, 1, slot, func() error { return nil }); err != nil {
		t.Errorf("lock not released after a failed claim: %v", err)
	}
}
