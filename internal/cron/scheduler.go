package cron

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/open-academy/academy-back/internal/db"
)

// StartJobs schedules the daily homework sweep: anything past its due date
// loses the active flag so it drops to the bottom of classroom listings.
func StartJobs() {
	c := cron.New()

	c.AddFunc("@daily", func() {
		log.Println("Running homework deactivation job...")

		n, err := db.DeactivateOverdueHomework(context.Background(), time.Now())
		if err != nil {
			log.Println("❌ Failed to deactivate overdue homework:", err)
			return
		}

		log.Printf("✅ Deactivated %d overdue homework\n", n)
	})

	c.Start()
}
