package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"talenthui-go-backend/config"
	"talenthui-go-backend/pkg/infrastructure/email"
	"talenthui-go-backend/pkg/usecase/usecase/payband"
)

// Scheduler manages cron jobs
type Scheduler struct {
	cron       *cron.Cron
	backfiller *payband.Backfiller
	email      *email.EmailService
	entryIDs   map[string]cron.EntryID
}

// NewScheduler creates a new scheduler. emailService may be nil.
func NewScheduler(backfiller *payband.Backfiller, emailService *email.EmailService) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		backfiller: backfiller,
		email:      emailService,
		entryIDs:   make(map[string]cron.EntryID),
	}
}

// Start registers and starts all cron jobs.
func (s *Scheduler) Start() error {
	log.Println("Starting cron scheduler...")

	schedule := config.C.Cron.PayBandBackfillSchedule
	entryID, err := s.cron.AddFunc(schedule, func() {
		s.runPayBandBackfill(context.Background())
	})
	if err != nil {
		return err
	}
	s.entryIDs["pay_band_backfill"] = entryID
	log.Printf("Registered job: pay_band_backfill with schedule: %s", schedule)

	s.cron.Start()
	log.Println("Cron scheduler started successfully")
	return nil
}

// Stop stops the cron scheduler
func (s *Scheduler) Stop() {
	log.Println("Stopping cron scheduler...")
	cronCtx := s.cron.Stop()
	<-cronCtx.Done()
	log.Println("Cron scheduler stopped")
}

func (s *Scheduler) runPayBandBackfill(ctx context.Context) {
	log.Println("Running pay band backfill job...")
	start := time.Now()

	report, err := s.backfiller.Run(ctx)
	if err != nil {
		log.Printf("Pay band backfill job failed: %v", err)
		return
	}

	log.Printf("Pay band backfill completed: %d scanned, %d updated, %d errors",
		report.Scanned, report.Updated, len(report.Errors))

	if s.email != nil {
		duration := int(time.Since(start).Seconds())
		if err := s.email.SendBackfillSummary(duration, report); err != nil {
			log.Printf("Warning: failed to send backfill summary email: %v", err)
		}
	}
}
