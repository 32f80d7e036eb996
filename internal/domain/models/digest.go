package models

// ScoredJob is a Job annotated with its relevance score. A nil MatchScore
// means no preferences existed when the job was scored; consumers must
// treat it as "unranked", never as zero.
type ScoredJob struct {
	Job
	MatchScore *int `json:"matchScore"`
}

// Digest is the cached top selection of scored jobs for one calendar date.
type Digest struct {
	Date string      `json:"date"`
	Jobs []ScoredJob `json:"jobs"`
}
