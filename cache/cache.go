package cache

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

// SlotTTL bounds how stale a cached slot list may get between the
// write-path invalidations.
const SlotTTL = 5 * time.Minute

// Init connects to Redis when REDIS_ADDR is set. Caching is optional;
// without it every helper below is a no-op and reads fall through to
// the database.
func Init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR not set, slot caching disabled")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})
	if _, err := client.Ping(Ctx).Result(); err != nil {
		log.Printf("Failed to connect to Redis, slot caching disabled: %v", err)
		return
	}

	Client = client
	log.Println("Connected to Redis")
}

func Enabled() bool {
	return Client != nil
}

// SlotKey identifies one cached slot list.
func SlotKey(date string, providerID, serviceID uint) string {
	return fmt.Sprintf("slots:%s:%d:%d", date, providerID, serviceID)
}

func GetSlots(key string) (string, bool) {
	if !Enabled() {
		return "", false
	}
	val, err := Client.Get(Ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func SetSlots(key, payload string) {
	if !Enabled() {
		return
	}
	if err := Client.Set(Ctx, key, payload, SlotTTL).Err(); err != nil {
		log.Printf("Failed to cache slots for %s: %v", key, err)
	}
}

// InvalidateProviderDate drops every cached slot list for one provider
// and date, across all services. Called after bookings, cancellations
// and date blocks.
func InvalidateProviderDate(date string, providerID uint) {
	deletePattern(fmt.Sprintf("slots:%s:%d:*", date, providerID))
}

// InvalidateProvider drops every cached slot list for one provider
// across all dates. A weekly-rule change affects an unbounded set of
// future dates, so the whole provider is swept.
func InvalidateProvider(providerID uint) {
	deletePattern(fmt.Sprintf("slots:*:%d:*", providerID))
}

// EvictDate drops every cached slot list for a calendar date. The cron
// sweep uses this for the current day, whose lists decay as wall-clock
// time passes.
func EvictDate(date string) int {
	return deletePattern(fmt.Sprintf("slots:%s:*", date))
}

func deletePattern(pattern string) int {
	if !Enabled() {
		return 0
	}
	deleted := 0
	iter := Client.Scan(Ctx, 0, pattern, 100).Iterator()
	for iter.Next(Ctx) {
		if err := Client.Del(Ctx, iter.Val()).Err(); err == nil {
			deleted++
		}
	}
	if err := iter.Err(); err != nil {
		log.Printf("Failed scanning cache keys %s: %v", pattern, err)
	}
	return deleted
}
