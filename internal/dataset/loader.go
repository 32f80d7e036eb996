package dataset

import (
	"encoding/json"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/maxaizer/job-tracker/internal/domain/models"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// rawJob mirrors the external dataset format. Optional fields are pointers
// so that "absent" is distinguishable from a zero value; normalization
// happens once here, downstream code sees only well-formed jobs.
type rawJob struct {
	ID            *int     `json:"id" validate:"required"`
	Title         string   `json:"title"`
	Company       string   `json:"company"`
	Location      string   `json:"location"`
	Mode          string   `json:"mode"`
	Experience    string   `json:"experience"`
	SalaryRange   string   `json:"salaryRange"`
	Skills        []string `json:"skills"`
	PostedDaysAgo *int     `json:"postedDaysAgo" validate:"omitempty,gte=0"`
	Source        string   `json:"source"`
	Description   string   `json:"description"`
	ApplyURL      string   `json:"applyUrl"`
}

var validate = validator.New()

// Load reads the externally supplied job dataset, preserving its order.
// Records without an id are dropped, duplicate ids keep the first
// occurrence, and missing optional fields get their documented defaults.
func Load(path string) ([]models.Job, error) {

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read dataset file")
	}

	var raw []rawJob
	if err = json.Unmarshal(content, &raw); err != nil {
		return nil, errors.Wrap(err, "failed to parse dataset file")
	}

	jobs := make([]models.Job, 0, len(raw))
	seen := make(map[int]bool, len(raw))

	for i, r := range raw {
		if err = validate.Struct(r); err != nil {
			log.Warnf("dataset record %d failed validation, coercing: %v", i, err)
		}

		if r.ID == nil {
			continue
		}
		if seen[*r.ID] {
			log.Warnf("dataset record %d has duplicate id %d, keeping first occurrence", i, *r.ID)
			continue
		}
		seen[*r.ID] = true

		jobs = append(jobs, normalize(r))
	}

	log.Infof("loaded %d jobs from %v", len(jobs), path)
	return jobs, nil
}

func normalize(r rawJob) models.Job {

	postedDaysAgo := models.PostedUnknown
	if r.PostedDaysAgo != nil {
		postedDaysAgo = *r.PostedDaysAgo
		if postedDaysAgo < 0 {
			postedDaysAgo = 0
		}
	}

	skills := r.Skills
	if skills == nil {
		skills = []string{}
	}

	return models.Job{
		ID:            *r.ID,
		Title:         r.Title,
		Company:       r.Company,
		Location:      r.Location,
		Mode:          r.Mode,
		Experience:    r.Experience,
		SalaryRange:   r.SalaryRange,
		Skills:        skills,
		PostedDaysAgo: postedDaysAgo,
		Source:        r.Source,
		Description:   r.Description,
		ApplyURL:      r.ApplyURL,
	}
}
