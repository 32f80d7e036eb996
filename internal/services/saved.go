package services

import (
	"context"
	"encoding/json"

	"github.com/maxaizer/job-tracker/internal/domain/models"
	"github.com/maxaizer/job-tracker/internal/logger"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

const savedIDsKey = "saved-job-ids"

// SavedJobsService keeps the user's bookmarked job ids in the key-value
// store. Ids have no expiry and survive preference changes.
type SavedJobsService struct {
	data dataRepository
}

func NewSavedJobsService(data dataRepository) *SavedJobsService {
	return &SavedJobsService{data: data}
}

func (s *SavedJobsService) Save(ctx context.Context, jobID int) error {
	ids, err := s.SavedIDs(ctx)
	if err != nil {
		return err
	}
	if lo.Contains(ids, jobID) {
		return nil
	}
	return s.persist(ctx, append(ids, jobID))
}

func (s *SavedJobsService) Unsave(ctx context.Context, jobID int) error {
	ids, err := s.SavedIDs(ctx)
	if err != nil {
		return err
	}
	return s.persist(ctx, lo.Without(ids, jobID))
}

func (s *SavedJobsService) IsSaved(ctx context.Context, jobID int) (bool, error) {
	ids, err := s.SavedIDs(ctx)
	if err != nil {
		return false, err
	}
	return lo.Contains(ids, jobID), nil
}

// SavedIDs returns the bookmarked ids in save order. A corrupt stored value
// is treated as an empty set.
func (s *SavedJobsService) SavedIDs(ctx context.Context) ([]int, error) {

	raw, err := s.data.Load(ctx, savedIDsKey)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []int{}, nil
	}

	var ids []int
	if err = json.Unmarshal(raw, &ids); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeStore).
			Errorf("stored saved ids are corrupt, treating as empty: %v", err)
		return []int{}, nil
	}
	return ids, nil
}

// SavedJobs hydrates the bookmarked ids against the dataset, preserving
// dataset order. Ids no longer present in the dataset are skipped.
func (s *SavedJobsService) SavedJobs(ctx context.Context, jobs []models.Job) ([]models.Job, error) {
	ids, err := s.SavedIDs(ctx)
	if err != nil {
		return nil, err
	}
	saved := lo.Filter(jobs, func(j models.Job, _ int) bool {
		return lo.Contains(ids, j.ID)
	})
	return saved, nil
}

func (s *SavedJobsService) persist(ctx context.Context, ids []int) error {
	serialized, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return s.data.Save(ctx, savedIDsKey, serialized)
}
