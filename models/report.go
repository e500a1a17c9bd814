package models

import "time"

// Record represents one IPO entry parsed from a data row. Every field is
// copied verbatim from cell text; no numeric parsing or validation happens
// at this stage.
type Record struct {
	Name       string `json:"name"`
	Window     string `json:"window"`
	Price      string `json:"price"`
	GMP        string `json:"gmp"`
	GMPPercent string `json:"gmp_percent"`
	SubjectTo  string `json:"subject_to"`
}

// Section groups the records listed under one table header, such as
// "Mainboard IPO" or "SME IPO".
type Section struct {
	Name    string   `json:"name"`
	Records []Record `json:"records"`
}

// Report is the transient result of one scrape run. Sections keep the order
// in which their headers first appeared on the page.
type Report struct {
	RunID     string    `json:"run_id"`
	SourceURL string    `json:"source_url"`
	FetchedAt time.Time `json:"fetched_at"`
	Blocked   bool      `json:"blocked"`
	Sections  []Section `json:"sections"`
}

// Section returns the named section, if present.
func (r *Report) Section(name string) (*Section, bool) {
	for i := range r.Sections {
		if r.Sections[i].Name == name {
			return &r.Sections[i], true
		}
	}
	return nil, false
}

// TotalRecords counts records across all sections.
func (r *Report) TotalRecords() int {
	total := 0
	for _, section := range r.Sections {
		total += len(section.Records)
	}
	return total
}

// IsEmpty reports whether the run produced no sections at all.
func (r *Report) IsEmpty() bool {
	return len(r.Sections) == 0
}

// FetchResult is the raw outcome of one page fetch. Blocked marks the
// HTTP 403 case, which is reported to recipients rather than treated as a
// failure of the run.
type FetchResult struct {
	HTML       string `json:"-"`
	StatusCode int    `json:"status_code"`
	Blocked    bool   `json:"blocked"`
}

// RenderedReport is a report formatted for delivery. HTML is empty when the
// plain text renderer produced it.
type RenderedReport struct {
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html,omitempty"`
}
