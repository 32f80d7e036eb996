package models

import (
	"errors"
	"fmt"
	"strings"
)

type Mode string

const (
	Remote Mode = "Remote"
	Hybrid Mode = "Hybrid"
	Onsite Mode = "Onsite"
)

func ToMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "remote":
		return Remote, nil
	case "hybrid":
		return Hybrid, nil
	case "onsite":
		return Onsite, nil
	default:
		return "", errors.New("invalid work mode")
	}
}

type ExperienceLevel string

const (
	Entry  ExperienceLevel = "Entry"
	Mid    ExperienceLevel = "Mid"
	Senior ExperienceLevel = "Senior"
	Lead   ExperienceLevel = "Lead"
)

func ToExperienceLevel(s string) (ExperienceLevel, error) {
	switch strings.ToLower(s) {
	case "entry":
		return Entry, nil
	case "mid":
		return Mid, nil
	case "senior":
		return Senior, nil
	case "lead":
		return Lead, nil
	default:
		return "", errors.New("invalid experience level")
	}
}

// PostedUnknown marks a job whose posting age was missing at ingestion.
// Such jobs sort after every real age under the "latest" order.
const PostedUnknown = 1 << 30

type Job struct {
	ID            int
	Title         string
	Company       string
	Location      string
	Mode          string
	Experience    string
	SalaryRange   string
	Skills        []string
	PostedDaysAgo int
	Source        string
	Description   string
	ApplyURL      string
}

// FormatPosted renders a posting age for display.
func FormatPosted(days int) string {
	if days >= PostedUnknown {
		return "recently"
	}
	if days == 0 {
		return "Today"
	}
	if days == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", days)
}
