package progress

import (
	"fmt"

	"innocrawl/models"
)

// Stage is one step of the fixed pipeline progression.
type Stage struct {
	Key   string
	Label string
}

// Stages is the fixed ordered stage table, identical across all call sites.
// "failed" and "cancelled" are recognized terminal statuses outside this
// ordered progression.
var Stages = []Stage{
	{models.JobStatusQueued, "Queued"},
	{models.JobStatusCrawling, "Crawling"},
	{models.JobStatusParsing, "Parsing"},
	{models.JobStatusDownloading, "Downloading"},
	{models.JobStatusEnriching, "Enriching"},
	{models.JobStatusIndexing, "Indexing"},
	{models.JobStatusCompleted, "Completed"},
}

var indexingIndex = stageIndex(models.JobStatusIndexing)

// Projection is the display-ready view of a job's progress. Immutable;
// Apply produces a new one for every snapshot.
type Projection struct {
	StageIndex int // -1 until a recognized status arrives
	StageLabel string
	Percent    float64
	Message    string
	Failed     bool
	Completed  bool
}

// Initial is the projection a view renders before any snapshot arrives.
func Initial() Projection {
	return Projection{StageIndex: -1}
}

// SearchEnabled reports whether search is meaningful yet: an index exists
// once the projected stage has reached "indexing".
func (p Projection) SearchEnabled() bool {
	return p.StageIndex >= indexingIndex
}

// Apply maps a status snapshot onto the stage table. Pure and idempotent:
// the same prev/snapshot pair always yields the same projection, and a
// re-delivered identical snapshot leaves displayed state unchanged.
//
// A status missing from the table (cancelled, future values) is not an
// error; it simply leaves the previous projection in place.
func Apply(prev Projection, snap models.StatusSnapshot) Projection {
	i := stageIndex(snap.Status)
	if i < 0 && snap.Status != models.JobStatusFailed {
		return prev
	}

	next := prev
	if i >= 0 {
		next.StageIndex = i
		next.StageLabel = Stages[i].Label
		next.Percent = float64(i+1) / float64(len(Stages)) * 100
		next.Message = Stages[i].Label
	}

	next.Completed = snap.Status == models.JobStatusCompleted
	next.Failed = snap.Status == models.JobStatusFailed

	// A completed or failed job is 100% through: no further progress will
	// occur either way.
	if next.Completed || next.Failed {
		next.Percent = 100
	}

	if next.Failed {
		if snap.Error != "" {
			next.Message = fmt.Sprintf("Crawl failed: %s", snap.Error)
		} else {
			next.Message = "Crawl failed"
		}
	}

	return next
}

func stageIndex(status string) int {
	for i, s := range Stages {
		if s.Key == status {
			return i
		}
	}
	return -1
}
