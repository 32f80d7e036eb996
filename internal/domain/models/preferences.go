package models

import (
	"strings"

	"github.com/samber/lo"
)

const DefaultMinMatchScore = 40

// Preferences is the single user's declared matching profile. A nil
// *Preferences anywhere downstream means "matching disabled", which is
// different from an empty record with all fields blank.
type Preferences struct {
	RoleKeywords       string   `json:"roleKeywords"`
	PreferredLocations []string `json:"preferredLocations"`
	PreferredModes     []string `json:"preferredModes"`
	ExperienceLevel    string   `json:"experienceLevel"`
	Skills             string   `json:"skills"`
	MinMatchScore      int      `json:"minMatchScore" validate:"gte=0,lte=100"`
}

func NewPreferences() Preferences {
	return Preferences{MinMatchScore: DefaultMinMatchScore}
}

// Normalize trims and dedupes the set fields and clamps the threshold
// into [0,100]. Invalid input is coerced, never rejected.
func (p *Preferences) Normalize() {
	p.RoleKeywords = strings.TrimSpace(p.RoleKeywords)
	p.Skills = strings.TrimSpace(p.Skills)
	p.ExperienceLevel = strings.TrimSpace(p.ExperienceLevel)
	p.PreferredLocations = normalizeSet(p.PreferredLocations)
	p.PreferredModes = normalizeSet(p.PreferredModes)

	if p.MinMatchScore < 0 {
		p.MinMatchScore = 0
	}
	if p.MinMatchScore > 100 {
		p.MinMatchScore = 100
	}
}

// KeywordTokens splits RoleKeywords on commas into trimmed, lower-cased,
// deduplicated tokens.
func (p *Preferences) KeywordTokens() []string {
	return splitTokens(p.RoleKeywords)
}

// SkillTokens splits Skills the same way KeywordTokens does.
func (p *Preferences) SkillTokens() []string {
	return splitTokens(p.Skills)
}

func normalizeSet(values []string) []string {
	trimmed := lo.FilterMap(values, func(v string, _ int) (string, bool) {
		v = strings.TrimSpace(v)
		return v, v != ""
	})
	return lo.UniqBy(trimmed, strings.ToLower)
}

func splitTokens(commaSeparated string) []string {
	if strings.TrimSpace(commaSeparated) == "" {
		return nil
	}
	tokens := lo.FilterMap(strings.Split(commaSeparated, ","), func(t string, _ int) (string, bool) {
		t = strings.ToLower(strings.TrimSpace(t))
		return t, t != ""
	})
	return lo.Uniq(tokens)
}
