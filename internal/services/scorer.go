package services

import (
	"strings"

	"github.com/maxaizer/job-tracker/internal/domain/models"
)

// Score bonuses. Each rule is all-or-nothing and order-independent; the
// capped sum may not exceed 100.
const (
	bonusTitleKeyword       = 25
	bonusDescriptionKeyword = 15
	bonusLocation           = 15
	bonusMode               = 10
	bonusExperience         = 10
	bonusSkillOverlap       = 15
	bonusRecent             = 5
	bonusLinkedIn           = 5

	recentDaysThreshold = 2
	linkedInSource      = "linkedin"
)

type Badge string

const (
	BadgeNone    Badge = "none"
	BadgeHigh    Badge = "high"
	BadgeMedium  Badge = "medium"
	BadgeLow     Badge = "low"
	BadgeMinimal Badge = "minimal"
)

// ScoreJob computes the relevance score of a job against the user's
// preferences. Nil preferences disable matching: the result is nil, which
// callers must treat as "unranked", never as zero.
func ScoreJob(job models.Job, prefs *models.Preferences) *int {
	if prefs == nil {
		return nil
	}

	score := 0

	title := strings.ToLower(job.Title)
	description := strings.ToLower(job.Description)
	keywords := prefs.KeywordTokens()

	if anyToken(keywords, func(kw string) bool { return strings.Contains(title, kw) }) {
		score += bonusTitleKeyword
	}
	if anyToken(keywords, func(kw string) bool { return strings.Contains(description, kw) }) {
		score += bonusDescriptionKeyword
	}

	if len(prefs.PreferredLocations) > 0 && containsFold(prefs.PreferredLocations, job.Location) {
		score += bonusLocation
	}

	if len(prefs.PreferredModes) > 0 && containsFold(prefs.PreferredModes, job.Mode) {
		score += bonusMode
	}

	if prefs.ExperienceLevel != "" && strings.EqualFold(prefs.ExperienceLevel, job.Experience) {
		score += bonusExperience
	}

	if skillsOverlap(prefs.SkillTokens(), job.Skills) {
		score += bonusSkillOverlap
	}

	if job.PostedDaysAgo <= recentDaysThreshold {
		score += bonusRecent
	}

	if strings.EqualFold(job.Source, linkedInSource) {
		score += bonusLinkedIn
	}

	if score > 100 {
		score = 100
	}
	return &score
}

// ScoreAll annotates every job with its match score, preserving order.
func ScoreAll(jobs []models.Job, prefs *models.Preferences) []models.ScoredJob {
	scored := make([]models.ScoredJob, len(jobs))
	for i, job := range jobs {
		scored[i] = models.ScoredJob{Job: job, MatchScore: ScoreJob(job, prefs)}
	}
	return scored
}

// ClassifyScore maps a score to its display badge.
func ClassifyScore(score *int) Badge {
	switch {
	case score == nil:
		return BadgeNone
	case *score >= 80:
		return BadgeHigh
	case *score >= 60:
		return BadgeMedium
	case *score >= 40:
		return BadgeLow
	default:
		return BadgeMinimal
	}
}

func anyToken(tokens []string, match func(string) bool) bool {
	for _, token := range tokens {
		if match(token) {
			return true
		}
	}
	return false
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}

// skillsOverlap reports whether any user skill matches any job skill. Two
// skills match if equal or either contains the other, case-insensitively.
// Loose on purpose: "react" should match "React.js".
func skillsOverlap(userSkills []string, jobSkills []string) bool {
	for _, userSkill := range userSkills {
		for _, jobSkill := range jobSkills {
			jobSkill = strings.ToLower(strings.TrimSpace(jobSkill))
			if jobSkill == "" || userSkill == "" {
				continue
			}
			if strings.Contains(jobSkill, userSkill) || strings.Contains(userSkill, jobSkill) {
				return true
			}
		}
	}
	return false
}
