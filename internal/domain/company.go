package domain

// Company is the hiring organization the careers site is generated for.
type Company struct {
	Name          string
	URL           string
	Logo          string
	Description   string
	CareersEmail  string
	DefaultOffice string // shown when a job has no concrete city, e.g. "St. George, UT"
}
