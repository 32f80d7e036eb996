package services

import (
	"sort"
	"strings"
	"time"

	"github.com/maxaizer/job-tracker/internal/domain/models"
	"github.com/maxaizer/job-tracker/internal/metrics"
	"github.com/samber/lo"
)

// FilterAndSort runs the dashboard pipeline: annotate with scores, apply the
// match threshold when armed, narrow by the free-text and attribute filters,
// then apply exactly one sort order. The threshold step runs before the
// other filters so that it composes with them instead of replacing them.
func FilterAndSort(jobs []models.Job, filters models.Filters, prefs *models.Preferences) []models.ScoredJob {

	start := time.Now()
	defer func() {
		metrics.PipelineDuration.Observe(time.Since(start).Seconds())
	}()

	result := ScoreAll(jobs, prefs)
	metrics.ScoringPassesCounter.Inc()

	if filters.ShowOnlyMatches && prefs != nil {
		result = lo.Filter(result, func(j models.ScoredJob, _ int) bool {
			return j.MatchScore != nil && *j.MatchScore >= prefs.MinMatchScore
		})
	}

	if filters.Keyword != "" {
		keyword := strings.ToLower(filters.Keyword)
		result = lo.Filter(result, func(j models.ScoredJob, _ int) bool {
			return strings.Contains(strings.ToLower(j.Title), keyword) ||
				strings.Contains(strings.ToLower(j.Company), keyword)
		})
	}

	result = filterByAttribute(result, filters.Location, func(j models.ScoredJob) string { return j.Location })
	result = filterByAttribute(result, filters.Mode, func(j models.ScoredJob) string { return j.Mode })
	result = filterByAttribute(result, filters.Experience, func(j models.ScoredJob) string { return j.Experience })
	result = filterByAttribute(result, filters.Source, func(j models.ScoredJob) string { return j.Source })

	sortScored(result, filters.Sort)
	return result
}

func filterByAttribute(jobs []models.ScoredJob, filter string, attribute func(models.ScoredJob) string) []models.ScoredJob {
	if filter == "" {
		return jobs
	}
	return lo.Filter(jobs, func(j models.ScoredJob, _ int) bool {
		return strings.EqualFold(attribute(j), filter)
	})
}

func sortScored(jobs []models.ScoredJob, order models.SortOrder) {
	switch order {
	case models.SortMatch:
		// nil scores sort after every numeric score
		sort.SliceStable(jobs, func(i, k int) bool {
			a, b := jobs[i].MatchScore, jobs[k].MatchScore
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			return *a > *b
		})
	case models.SortSalary:
		sort.SliceStable(jobs, func(i, k int) bool {
			return salaryBucket(jobs[i].SalaryRange) < salaryBucket(jobs[k].SalaryRange)
		})
	default:
		sort.SliceStable(jobs, func(i, k int) bool {
			return jobs[i].PostedDaysAgo < jobs[k].PostedDaysAgo
		})
	}
}

var salaryBucketPrefixes = []string{"₹15k", "3–5", "6–10", "10–18"}

func salaryBucket(salaryRange string) int {
	for bucket, prefix := range salaryBucketPrefixes {
		if strings.HasPrefix(salaryRange, prefix) {
			return bucket
		}
	}
	return len(salaryBucketPrefixes)
}

// FilterOptions lists the distinct attribute values present in the dataset,
// sorted, for the consumer to build its filter controls from.
type FilterOptions struct {
	Locations   []string
	Modes       []string
	Experiences []string
	Sources     []string
}

func GetFilterOptions(jobs []models.Job) FilterOptions {
	return FilterOptions{
		Locations:   distinctSorted(jobs, func(j models.Job) string { return j.Location }),
		Modes:       distinctSorted(jobs, func(j models.Job) string { return j.Mode }),
		Experiences: distinctSorted(jobs, func(j models.Job) string { return j.Experience }),
		Sources:     distinctSorted(jobs, func(j models.Job) string { return j.Source }),
	}
}

func distinctSorted(jobs []models.Job, attribute func(models.Job) string) []string {
	values := lo.FilterMap(jobs, func(j models.Job, _ int) (string, bool) {
		v := attribute(j)
		return v, v != ""
	})
	values = lo.Uniq(values)
	sort.Strings(values)
	return values
}
