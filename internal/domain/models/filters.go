package models

type SortOrder string

const (
	SortLatest SortOrder = "latest"
	SortMatch  SortOrder = "match"
	SortSalary SortOrder = "salary"
)

// Filters is an immutable filter-state value: callers build a new value per
// change and pass it into the pipeline, there is no shared filter singleton.
// Empty string fields mean "not filtered on".
type Filters struct {
	Keyword         string
	Location        string
	Mode            string
	Experience      string
	Source          string
	ShowOnlyMatches bool
	Sort            SortOrder
}
