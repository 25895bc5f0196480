package redis

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func withTestClient(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	Client = goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		Client.Close()
		Client = nil
	})
}

func TestFreeSlotCacheRoundTrip(t *testing.T) {
	withTestClient(t)

	payload := []byte(`{"slots":["09:00","09:30"]}`)
	CacheFreeSlots(1, "2025-06-02", payload)

	got, ok := GetCachedFreeSlots(1, "2025-06-02")
	if !ok || string(got) != string(payload) {
		t.Fatalf("cache miss or wrong payload: %q, %v", got, ok)
	}

	InvalidateFreeSlots(1, "2025-06-02")
	if _, ok := GetCachedFreeSlots(1, "2025-06-02"); ok {
		t.Error("entry survived invalidation")
	}
}

func TestInvalidateDoctorSlotsDropsAllDates(t *testing.T) {
	withTestClient(t)

	CacheFreeSlots(1, "2025-06-02", []byte(`a`))
	CacheFreeSlots(1, "2025-06-03", []byte(`b`))
	CacheFreeSlots(2, "2025-06-02", []byte(`c`))

	// A rule change invalidates every cached day for that doctor only.
	InvalidateDoctorSlots(1)

	if _, ok := GetCachedFreeSlots(1, "2025-06-02"); ok {
		t.Error("doctor 1 entry for 2025-06-02 survived")
	}
	if _, ok := GetCachedFreeSlots(1, "2025-06-03"); ok {
		t.Error("doctor 1 entry for 2025-06-03 survived")
	}
	if _, ok := GetCachedFreeSlots(2, "2025-06-02"); !ok {
		t.Error("doctor 2 entry was dropped")
	}
}

func TestCacheHelpersWithoutClient(t *testing.T) {
	Client = nil

	CacheFreeSlots(1, "2025-06-02", []byte(`a`))
	InvalidateFreeSlots(1, "2025-06-02")
	InvalidateDoctorSlots(1)
	if _, ok := GetCachedFreeSlots(1, "2025-06-02"); ok {
		t.Error("cache hit without a client")
	}
}
