package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/maxaizer/job-tracker/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jobs.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func Test_Load_PreservesDatasetOrder(t *testing.T) {

	path := writeDataset(t, `[
		{"id": 3, "title": "C", "postedDaysAgo": 1},
		{"id": 1, "title": "A", "postedDaysAgo": 2},
		{"id": 2, "title": "B", "postedDaysAgo": 0}
	]`)

	jobs, err := Load(path)
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, 3, jobs[0].ID)
	assert.Equal(t, 1, jobs[1].ID)
	assert.Equal(t, 2, jobs[2].ID)
}

func Test_Load_DefaultsMissingFields(t *testing.T) {

	path := writeDataset(t, `[{"id": 1}]`)

	jobs, err := Load(path)
	require.NoError(t, err)
	require.Len(t, jobs, 1)

	job := jobs[0]
	assert.Equal(t, "", job.Title)
	assert.Equal(t, "", job.Location)
	assert.Equal(t, models.PostedUnknown, job.PostedDaysAgo)
	assert.NotNil(t, job.Skills)
	assert.Empty(t, job.Skills)
}

func Test_Load_CoercesNegativePostingAgeToZero(t *testing.T) {

	path := writeDataset(t, `[{"id": 1, "postedDaysAgo": -3}]`)

	jobs, err := Load(path)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, 0, jobs[0].PostedDaysAgo)
}

func Test_Load_DropsRecordsWithoutIdAndDuplicateIds(t *testing.T) {

	path := writeDataset(t, `[
		{"title": "no id"},
		{"id": 1, "title": "first"},
		{"id": 1, "title": "duplicate"},
		{"id": 2, "title": "second"}
	]`)

	jobs, err := Load(path)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "first", jobs[0].Title)
	assert.Equal(t, "second", jobs[1].Title)
}

func Test_Load_UnparseableFileReturnsError(t *testing.T) {

	path := writeDataset(t, `{"not": "an array"`)

	_, err := Load(path)
	assert.Error(t, err)
}

func Test_Load_MissingFileReturnsError(t *testing.T) {

	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
