package services

import (
	"context"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/maxaizer/job-tracker/internal/domain/models"
	"github.com/maxaizer/job-tracker/internal/logger"
	log "github.com/sirupsen/logrus"
)

const preferencesKey = "preferences"

// dataRepository is the opaque key→blob store boundary. Load returns nil
// for an absent key.
type dataRepository interface {
	Save(ctx context.Context, key string, value []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
	Remove(ctx context.Context, key string) error
}

type PreferencesService struct {
	data     dataRepository
	validate *validator.Validate
}

func NewPreferencesService(data dataRepository) *PreferencesService {
	return &PreferencesService{data: data, validate: validator.New()}
}

// Save normalizes and persists the preference record wholesale. Out-of-range
// input is clamped, never rejected.
func (s *PreferencesService) Save(ctx context.Context, prefs models.Preferences) error {

	if err := s.validate.Struct(prefs); err != nil {
		log.Warnf("preferences failed validation, clamping: %v", err)
	}
	prefs.Normalize()

	serialized, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	return s.data.Save(ctx, preferencesKey, serialized)
}

// Load returns the stored preferences, or nil when none exist. A corrupt
// stored record is treated as absent: matching stays disabled rather than
// failing the caller.
func (s *PreferencesService) Load(ctx context.Context) (*models.Preferences, error) {

	raw, err := s.data.Load(ctx, preferencesKey)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var prefs models.Preferences
	if err = json.Unmarshal(raw, &prefs); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeStore).
			Errorf("stored preferences are corrupt, treating as absent: %v", err)
		return nil, nil
	}

	prefs.Normalize()
	return &prefs, nil
}

// Clear removes the preference record, disabling matching.
func (s *PreferencesService) Clear(ctx context.Context) error {
	return s.data.Remove(ctx, preferencesKey)
}
