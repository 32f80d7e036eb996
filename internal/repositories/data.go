package repositories

import (
	"context"

	"github.com/maxaizer/job-tracker/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Data is the opaque key→blob store the rest of the tracker persists
// through. Absent keys load as nil without error.
type Data struct {
	db *gorm.DB
}

func NewDataRepository(db *gorm.DB) *Data {
	return &Data{db: db}
}

func (repo *Data) Save(ctx context.Context, key string, value []byte) error {
	return repo.db.WithContext(ctx).Save(&models.KeyValue{
		ID:    key,
		Value: value,
	}).Error
}

func (repo *Data) Load(ctx context.Context, key string) ([]byte, error) {
	record := &models.KeyValue{}
	err := repo.db.WithContext(ctx).First(record, "id = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return record.Value, nil
}

func (repo *Data) Remove(ctx context.Context, key string) error {
	return repo.db.WithContext(ctx).Delete(&models.KeyValue{}, "id = ?", key).Error
}
