// models/job.go
package models

import "time"

// Job lifecycle statuses as reported by the backend. The first seven form the
// ordered pipeline; "failed" and "cancelled" are terminal states outside it.
const (
	JobStatusIdle        = "idle"
	JobStatusQueued      = "queued"
	JobStatusCrawling    = "crawling"
	JobStatusParsing     = "parsing"
	JobStatusDownloading = "downloading"
	JobStatusEnriching   = "enriching"
	JobStatusIndexing    = "indexing"
	JobStatusCompleted   = "completed"
	JobStatusFailed      = "failed"
	JobStatusCancelled   = "cancelled"
)

// Counter keys published by the backend pipeline. Counters are sparse:
// an absent key means zero.
const (
	CounterPagesVisited       = "pages_visited"
	CounterProductsDiscovered = "products_discovered"
	CounterProductsExtracted  = "products_extracted"
	CounterImagesDownloaded   = "images_downloaded"
	CounterProductsEnriched   = "products_enriched"
	CounterProductsIndexed    = "products_indexed"
)

// Job is the backend-owned record of one crawl-and-index run. The client only
// ever holds an eventually-consistent read of it.
type Job struct {
	ID         string         `json:"id"`
	InputURL   string         `json:"input_url"`
	Status     string         `json:"status"`
	Counters   map[string]int `json:"counters,omitempty"`
	Error      string         `json:"error,omitempty"`
	Options    CrawlOptions   `json:"options,omitempty"`
	CreatedAt  *time.Time     `json:"created_at,omitempty"`
	FinishedAt *time.Time     `json:"finished_at,omitempty"`
}

// ProductCount returns the job-list display count with the original
// fallback order: indexed, then enriched, then discovered.
func (j Job) ProductCount() int {
	if j.Counters == nil {
		return 0
	}
	if n, ok := j.Counters[CounterProductsIndexed]; ok {
		return n
	}
	if n, ok := j.Counters[CounterProductsEnriched]; ok {
		return n
	}
	if n, ok := j.Counters[CounterProductsDiscovered]; ok {
		return n
	}
	return 0
}

// CrawlOptions is the configuration record attached at job-creation time.
// Immutable once submitted.
type CrawlOptions struct {
	MaxPages         int    `json:"max_pages"`
	MaxProducts      int    `json:"max_products"`
	FollowPagination bool   `json:"follow_pagination"`
	FollowLinks      bool   `json:"follow_links"`
	DownloadImages   bool   `json:"download_images"`
	CrawlSpeed       string `json:"crawl_speed"`
	ForceRerun       bool   `json:"force_rerun,omitempty"`
}

// DefaultCrawlOptions returns the options the intake form pre-fills.
func DefaultCrawlOptions() CrawlOptions {
	return CrawlOptions{
		MaxPages:         5,
		MaxProducts:      5,
		FollowPagination: true,
		FollowLinks:      true,
		DownloadImages:   true,
		CrawlSpeed:       "normal",
	}
}

// CreateJobRequest is the POST /jobs payload.
type CreateJobRequest struct {
	URL     string       `json:"url"`
	Options CrawlOptions `json:"options"`
}

// CreateJobResponse is the POST /jobs response.
type CreateJobResponse struct {
	JobID string `json:"job_id"`
}

// StatusSnapshot is the payload of each streamed status message. A snapshot
// completely replaces prior state; snapshots are never merged field by field.
type StatusSnapshot struct {
	Status   string         `json:"status"`
	Counters map[string]int `json:"counters"`
	Error    string         `json:"error,omitempty"`
}

// Counter returns the named counter, treating an absent key as zero.
func (s StatusSnapshot) Counter(name string) int {
	if s.Counters == nil {
		return 0
	}
	return s.Counters[name]
}

// IdleSnapshot is the snapshot a view starts from before any job exists.
func IdleSnapshot() StatusSnapshot {
	return StatusSnapshot{Status: JobStatusIdle, Counters: map[string]int{}}
}
