package domain

// Repository describes a single project inside the scanned group. The JSON
// tags match the hosting API's project representation so descriptors flow
// unchanged into the final report.
type Repository struct {
	Name   string `json:"name"`
	ID     int64  `json:"id"`
	WebURL string `json:"web_url"`
}

// TreeEntry is a single node of a repository file tree. Only the name is
// kept; the marker test is a pure name predicate.
type TreeEntry struct {
	Name string `json:"name"`
}

// Report is the final analysis artifact persisted to disk.
type Report struct {
	TotalPackages       int          `json:"total_packages"`
	TestingFarmPackages []Repository `json:"testing_farm_packages"`
	AnalysisDate        string       `json:"analysis_date"`
}
