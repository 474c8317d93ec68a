package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"talenthui-go-backend/config"
	"talenthui-go-backend/pkg/adapter/repository/profilerepository"
	"talenthui-go-backend/pkg/infrastructure/datastore"
	"talenthui-go-backend/pkg/infrastructure/email"
	"talenthui-go-backend/pkg/usecase/usecase/payband"
)

// One-shot runner for the pay band backfill. The app schedules the same
// job via cron; this entrypoint exists for manual or containerized runs.
func main() {
	sendEmail := flag.Bool("email", false, "send a summary email when the job completes")
	flag.Parse()

	config.ReadConfig(config.ReadConfigOption{})

	pool, err := datastore.NewPool()
	if err != nil {
		log.Fatalf("Failed to open db connection: %v", err)
	}
	defer pool.Close()

	repo := profilerepository.NewProfileRepository(pool)
	backfiller := payband.NewBackfiller(repo, config.C.Cron.BatchSize)

	report, err := backfiller.Run(context.Background())
	if err != nil {
		log.Fatalf("Pay band backfill failed: %v", err)
	}

	fmt.Printf("Pay band backfill completed: %d scanned, %d updated, %d errors\n",
		report.Scanned, report.Updated, len(report.Errors))
	for _, e := range report.Errors {
		fmt.Printf("  error: %s\n", e)
	}

	if *sendEmail {
		if err := email.NewEmailService().SendBackfillSummary(0, report); err != nil {
			log.Printf("Warning: failed to send backfill summary email: %v", err)
		}
	}
}
