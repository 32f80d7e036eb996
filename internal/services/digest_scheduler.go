package services

import (
	"context"

	"github.com/maxaizer/job-tracker/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type preferencesLoader interface {
	Load(ctx context.Context) (*models.Preferences, error)
}

// DigestScheduler triggers today's digest generation on a cron schedule.
// Generation is idempotent per date, so overlapping triggers (cron plus an
// explicit user visit) are harmless.
type DigestScheduler struct {
	digests     *DigestService
	preferences preferencesLoader
	jobs        []models.Job
	cron        *cron.Cron
}

func NewDigestScheduler(digests *DigestService, preferences preferencesLoader,
	jobs []models.Job, cronSpec string) (*DigestScheduler, error) {

	if cronSpec == "" {
		return nil, errors.New("cron spec must not be empty")
	}

	ds := &DigestScheduler{
		digests:     digests,
		preferences: preferences,
		jobs:        jobs,
		cron:        cron.New(),
	}

	_, err := ds.cron.AddFunc(cronSpec, ds.generateToday)
	if err != nil {
		return nil, err
	}

	ds.cron.Start()
	log.Infof("digest scheduler started with spec %q", cronSpec)
	return ds, nil
}

func (ds *DigestScheduler) Stop() {
	ds.cron.Stop()
}

func (ds *DigestScheduler) generateToday() {

	ctx := context.Background()

	prefs, err := ds.preferences.Load(ctx)
	if err != nil {
		log.Errorf("failed to load preferences for scheduled digest: %v", err)
		return
	}
	if prefs == nil {
		log.Info("no preferences saved, skipping scheduled digest")
		return
	}

	if _, err = ds.digests.GetOrCreate(ctx, prefs, ds.jobs); err != nil {
		log.Errorf("failed to generate scheduled digest: %v", err)
	}
}
