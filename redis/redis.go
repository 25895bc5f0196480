package redis

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

func InitRedis() {
	Client = redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
		DB:   0,
	})

	// Test connection
	_, err := Client.Ping(Ctx).Result()
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}
	fmt.Println("✅ Connected to Redis")
}

// Free-slot responses are cached briefly and dropped whenever a booking
// mutates a doctor's day.

const slotCacheTTL = 30 * time.Second

func SlotCacheKey(doctorID uint, date string) string {
	return fmt.Sprintf("slots:%d:%s", doctorID, date)
}

func CacheFreeSlots(doctorID uint, date string, payload []byte) {
	if Client == nil {
		return
	}
	Client.Set(Ctx, SlotCacheKey(doctorID, date), payload, slotCacheTTL)
}

func GetCachedFreeSlots(doctorID uint, date string) ([]byte, bool) {
	if Client == nil {
		return nil, false
	}
	val, err := Client.Get(Ctx, SlotCacheKey(doctorID, date)).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

func InvalidateFreeSlots(doctorID uint, date string) {
	if Client == nil {
		return
	}
	Client.Del(Ctx, SlotCacheKey(doctorID, date))
}

// InvalidateDoctorSlots drops every cached slot list for one doctor across
// all dates. Used when the weekly rules change, since a rule edit touches
// every future day at once.
func InvalidateDoctorSlots(doctorID uint) {
	if Client == nil {
		return
	}
	pattern := fmt.Sprintf("slots:%d:*", doctorID)
	iter := Client.Scan(Ctx, 0, pattern, 0).Iterator()
	for iter.Next(Ctx) {
		Client.Del(Ctx, iter.Val())
	}
}
