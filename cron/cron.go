package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/bookwell/bookwell-api/cache"
)

// StartCronJobs runs the background sweeps. Currently one job: evict
// the current day's cached slot lists every 15 minutes, since a slot
// list for "today" loses entries as wall-clock time passes and a
// write-path invalidation never fires for that.
func StartCronJobs() {
	if !cache.Enabled() {
		log.Println("Cache disabled, skipping cron jobs")
		return
	}

	c := cron.New()
	_, err := c.AddFunc("*/15 * * * *", evictTodaySlotCache)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron scheduler started")
}

func evictTodaySlotCache() {
	today := time.Now().Format("2006-01-02")
	if n := cache.EvictDate(today); n > 0 {
		log.Printf("Evicted %d cached slot lists for %s", n, today)
	}
}
