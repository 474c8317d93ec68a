package main

import (
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"talenthui-go-backend/config"
	"talenthui-go-backend/pkg/adapter/controller"
	"talenthui-go-backend/pkg/adapter/repository/profilerepository"
	"talenthui-go-backend/pkg/infrastructure/datastore"
	"talenthui-go-backend/pkg/infrastructure/email"
	"talenthui-go-backend/pkg/infrastructure/router"
	"talenthui-go-backend/pkg/infrastructure/scheduler"
	"talenthui-go-backend/pkg/infrastructure/storage"
	"talenthui-go-backend/pkg/registry"
	"talenthui-go-backend/pkg/usecase/usecase/payband"
)

func main() {
	config.ReadConfig(config.ReadConfigOption{})

	pool := newDBPool()
	defer pool.Close()

	ctrl := newController(pool)

	if config.C.Cron.Enabled {
		sched := newScheduler(pool)
		if err := sched.Start(); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
		defer sched.Stop()
	}

	e := router.New(ctrl, router.Options{CORS: true})
	e.Logger.Fatal(e.Start(":" + config.C.Server.Address))
}

func newDBPool() *pgxpool.Pool {
	pool, err := datastore.NewPool()
	if err != nil {
		log.Fatalf("Failed to open db connection: %v", err)
	}
	return pool
}

func newController(pool *pgxpool.Pool) controller.Controller {
	var archive *storage.S3Service
	if config.C.AWS.ArchiveUploads {
		s3Service, err := storage.NewS3Service()
		if err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		archive = s3Service
	}

	var notify *email.EmailService
	if config.C.Email.AdminEmail != "" {
		notify = email.NewEmailService()
	}

	r := registry.NewWithOptions(pool, registry.RegistryOptions{
		Archive: archive,
		Notify:  notify,
	})
	return r.NewController()
}

func newScheduler(pool *pgxpool.Pool) *scheduler.Scheduler {
	repo := profilerepository.NewProfileRepository(pool)
	backfiller := payband.NewBackfiller(repo, config.C.Cron.BatchSize)
	return scheduler.NewScheduler(backfiller, email.NewEmailService())
}
