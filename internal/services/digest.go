package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/job-tracker/internal/domain/models"
	"github.com/maxaizer/job-tracker/internal/events"
	"github.com/maxaizer/job-tracker/internal/logger"
	"github.com/maxaizer/job-tracker/internal/metrics"
	gocache "github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
)

const (
	digestKeyPrefix = "digest:"
	digestDateKey   = "2006-01-02"
	digestDateHuman = "Monday, 2 January 2006"
	digestTitleLine = "Job Digest"
)

// DigestService selects and caches the top matches for each calendar date.
// A date is either absent or generated; once generated, reads return the
// stored digest unchanged regardless of later preference or dataset drift.
type DigestService struct {
	bus   EventBus.Bus
	data  dataRepository
	cache *gocache.Cache
	size  int
	now   func() time.Time
}

func NewDigestService(bus EventBus.Bus, data dataRepository, size int) *DigestService {
	return &DigestService{
		bus:   bus,
		data:  data,
		cache: gocache.New(24*time.Hour, 2*time.Hour),
		size:  size,
		now:   time.Now,
	}
}

// Today returns the current calendar date in the user's locale, which keys
// the digest state machine.
func (s *DigestService) Today() string {
	return s.now().Format(digestDateKey)
}

// GetOrCreate returns today's digest, generating and persisting it only if
// no digest exists for the date yet. Nil preferences leave the date absent
// and return no digest. Repeated calls for the same date never recompute.
func (s *DigestService) GetOrCreate(ctx context.Context, prefs *models.Preferences,
	jobs []models.Job) (*models.Digest, error) {

	date := s.Today()

	existing, err := s.Get(ctx, date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	if prefs == nil {
		return nil, nil
	}

	digest := s.generate(date, *prefs, jobs)

	serialized, err := json.Marshal(digest)
	if err != nil {
		return nil, err
	}
	if err = s.data.Save(ctx, digestKeyPrefix+date, serialized); err != nil {
		return nil, err
	}
	s.cache.Set(date, digest, gocache.DefaultExpiration)

	metrics.DigestGenerationsCounter.Inc()
	log.Infof("generated digest for %v with %d jobs", date, len(digest.Jobs))
	s.bus.Publish(events.DigestGeneratedTopic, events.DigestGenerated{Digest: *digest})

	return digest, nil
}

// Get reads the digest for a date without ever generating one. An absent
// date returns nil, which is distinct from a generated digest with zero
// matches.
func (s *DigestService) Get(ctx context.Context, date string) (*models.Digest, error) {

	if cached, found := s.cache.Get(date); found {
		metrics.DigestCacheHitsCounter.Inc()
		digest := cached.(*models.Digest)
		return digest, nil
	}

	raw, err := s.data.Load(ctx, digestKeyPrefix+date)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var digest models.Digest
	if err = json.Unmarshal(raw, &digest); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeStore).
			Errorf("stored digest for %v is corrupt, treating as absent: %v", date, err)
		return nil, nil
	}

	s.cache.Set(date, &digest, gocache.DefaultExpiration)
	return &digest, nil
}

// Invalidate clears the digest for a date so the next GetOrCreate
// regenerates it. Never called automatically.
func (s *DigestService) Invalidate(ctx context.Context, date string) error {
	s.cache.Delete(date)
	return s.data.Remove(ctx, digestKeyPrefix+date)
}

func (s *DigestService) generate(date string, prefs models.Preferences, jobs []models.Job) *models.Digest {

	scored := ScoreAll(jobs, &prefs)
	metrics.ScoringPassesCounter.Inc()

	var matched []models.ScoredJob
	for _, job := range scored {
		if job.MatchScore != nil && *job.MatchScore >= prefs.MinMatchScore {
			matched = append(matched, job)
		}
	}

	sort.SliceStable(matched, func(i, k int) bool {
		if *matched[i].MatchScore != *matched[k].MatchScore {
			return *matched[i].MatchScore > *matched[k].MatchScore
		}
		return matched[i].PostedDaysAgo < matched[k].PostedDaysAgo
	})

	if len(matched) > s.size {
		matched = matched[:s.size]
	}
	if matched == nil {
		matched = []models.ScoredJob{}
	}

	return &models.Digest{Date: date, Jobs: matched}
}

// RenderText serializes a digest for copy/export: a fixed title line, a
// human-readable date header, then one line per job.
func RenderText(digest models.Digest) string {

	var b strings.Builder
	b.WriteString(digestTitleLine + "\n")

	if parsed, err := time.Parse(digestDateKey, digest.Date); err == nil {
		b.WriteString(parsed.Format(digestDateHuman) + "\n")
	} else {
		b.WriteString(digest.Date + "\n")
	}

	for _, job := range digest.Jobs {
		score := 0
		if job.MatchScore != nil {
			score = *job.MatchScore
		}
		b.WriteString(fmt.Sprintf("%s at %s (%s, %s) — %d%% — %s\n",
			job.Title, job.Company, job.Location, job.Experience, score, job.ApplyURL))
	}

	return b.String()
}
