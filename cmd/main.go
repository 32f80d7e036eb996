package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/job-tracker/internal/config"
	"github.com/maxaizer/job-tracker/internal/dataset"
	"github.com/maxaizer/job-tracker/internal/logger"
	"github.com/maxaizer/job-tracker/internal/metrics"
	"github.com/maxaizer/job-tracker/internal/repositories"
	"github.com/maxaizer/job-tracker/internal/services"
	log "github.com/sirupsen/logrus"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer()

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	if err = dbContext.Migrate(); err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	jobs, err := dataset.Load(cfg.Tracker.DatasetPath)
	if err != nil {
		log.Fatalf("can't load job dataset: %v", err)
	}

	data := repositories.NewDataRepository(dbContext.DB)
	bus := EventBus.New()

	preferences := services.NewPreferencesService(data)
	digests := services.NewDigestService(bus, data, cfg.Tracker.DigestSize)

	delivery, err := services.NewDigestDelivery(bus, cfg.Tracker.OutboxDir)
	if err != nil {
		log.Fatalf("can't create digest delivery: %v", err)
	}
	defer delivery.Stop()

	scheduler, err := services.NewDigestScheduler(digests, preferences, jobs, cfg.Tracker.DigestCron)
	if err != nil {
		log.Fatalf("can't create digest scheduler: %v", err)
	}
	defer scheduler.Stop()

	<-ctx.Done()

	log.Info("Shutting down services...")
}
