package jobs

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// DataError indicates the scraper returned rows that do not satisfy the
// required job schema. It is fatal: malformed rows must not reach matching.
type DataError struct {
	Row    int
	Reason string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("job data error at row %d: %s", e.Row, e.Reason)
}

// Job is a single scraped job listing. Row position inside Jobs is the row's
// identity: transformations annotate copies and keep the original order.
type Job struct {
	Company     string `json:"company,omitempty" mapstructure:"company"`
	Title       string `json:"title,omitempty" mapstructure:"title"`
	Location    string `json:"location,omitempty" mapstructure:"location"`
	Description string `json:"description,omitempty" mapstructure:"description"`
	URL         string `json:"job_url,omitempty" mapstructure:"job_url"`
	Site        string `json:"site,omitempty" mapstructure:"site"`
	DatePosted  string `json:"date_posted,omitempty" mapstructure:"date_posted"`

	// Extra carries scraper columns the pipeline does not interpret.
	Extra map[string]any `json:"extra,omitempty" mapstructure:",remain"`

	// Sponsor is populated by the sponsor verification stage.
	Sponsor *SponsorCheck `json:"sponsor,omitempty" mapstructure:"-"`
}

// SponsorCheck records the outcome of matching the job's company against the
// sponsor register.
type SponsorCheck struct {
	Verified   bool   `json:"verified"`
	Canonical  string `json:"canonical_name,omitempty"`
	Confidence int    `json:"confidence"`
}

type Jobs struct {
	Items []*Job
}

func (j *Jobs) Len() int {
	return len(j.Items)
}

// Companies returns the raw company name of every row, in row order.
func (j *Jobs) Companies() []string {
	names := make([]string, 0, len(j.Items))
	for _, job := range j.Items {
		names = append(names, job.Company)
	}
	return names
}

// Validate fails fast when a row is structurally malformed. Company and title
// must be present; description and location may be empty and are tolerated
// with defaults downstream.
func (j *Jobs) Validate() error {
	for idx, job := range j.Items {
		if job == nil {
			return &DataError{Row: idx, Reason: "row is empty"}
		}
		if strings.TrimSpace(job.Title) == "" {
			return &DataError{Row: idx, Reason: "missing required field: title"}
		}
		if strings.TrimSpace(job.Company) == "" {
			return &DataError{Row: idx, Reason: "missing required field: company"}
		}
	}
	return nil
}

// DedupByURL removes rows whose job URL was already seen, keeping the first
// occurrence and preserving row order. Rows without a URL are kept as is.
// Returns the URLs of the removed rows.
func (j *Jobs) DedupByURL() []string {
	seen := make(map[string]bool, len(j.Items))
	kept := make([]*Job, 0, len(j.Items))
	var removed []string

	for _, job := range j.Items {
		if job.URL != "" && seen[job.URL] {
			removed = append(removed, job.URL)
			continue
		}
		seen[job.URL] = true
		kept = append(kept, job)
	}

	j.Items = kept
	return removed
}

// Keep retains only the rows for which keep returns true, preserving order,
// and returns the number of dropped rows.
func (j *Jobs) Keep(keep func(idx int, job *Job) bool) int {
	kept := make([]*Job, 0, len(j.Items))
	for idx, job := range j.Items {
		if keep(idx, job) {
			kept = append(kept, job)
		}
	}

	dropped := len(j.Items) - len(kept)
	j.Items = kept
	return dropped
}

func (j *Jobs) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "jobs_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(j); err != nil {
		return "", err
	}
	return file.Name(), nil
}
