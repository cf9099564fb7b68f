package progress

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"innocrawl/models"
)

func snap(status string) models.StatusSnapshot {
	return models.StatusSnapshot{Status: status, Counters: map[string]int{}}
}

func TestApply_PercentMonotonicAcrossStageTable(t *testing.T) {
	p := Initial()
	prevPercent := -1.0

	for _, stage := range Stages {
		p = Apply(p, snap(stage.Key))

		if p.Percent < prevPercent {
			t.Errorf("percent regressed at stage %q: %v -> %v", stage.Key, prevPercent, p.Percent)
		}
		if p.StageLabel != stage.Label {
			t.Errorf("stage %q label = %q; want %q", stage.Key, p.StageLabel, stage.Label)
		}
		prevPercent = p.Percent
	}

	// the last stage is "completed" and must land exactly on 100
	assert.Equal(t, 100.0, p.Percent)
	assert.True(t, p.Completed)
}

func TestApply_FailedForcesFullPercent(t *testing.T) {
	p := Apply(Initial(), snap(models.JobStatusCrawling))

	p = Apply(p, models.StatusSnapshot{Status: models.JobStatusFailed, Error: "robots.txt disallows"})

	assert.Equal(t, 100.0, p.Percent)
	assert.True(t, p.Failed)
	if !strings.Contains(p.Message, "robots.txt disallows") {
		t.Errorf("failure message must carry the backend error verbatim, got %q", p.Message)
	}
}

func TestApply_FailedWithoutErrorText(t *testing.T) {
	p := Apply(Initial(), snap(models.JobStatusFailed))

	assert.Equal(t, 100.0, p.Percent)
	assert.Equal(t, "Crawl failed", p.Message)
}

func TestApply_UnknownStatusLeavesProjectionUnchanged(t *testing.T) {
	p := Apply(Initial(), snap(models.JobStatusParsing))
	before := p

	for _, status := range []string{models.JobStatusCancelled, "rebalancing", ""} {
		p = Apply(p, snap(status))

		assert.Equal(t, before, p, "projection must not change for %q", status)
	}
}

func TestApply_Idempotent(t *testing.T) {
	s := snap(models.JobStatusEnriching)

	once := Apply(Initial(), s)
	twice := Apply(once, s)

	assert.Equal(t, once, twice)
}

func TestSearchEnabled(t *testing.T) {
	p := Initial()
	assert.False(t, p.SearchEnabled())

	// everything before indexing keeps search disabled
	for _, status := range []string{
		models.JobStatusQueued,
		models.JobStatusCrawling,
		models.JobStatusParsing,
		models.JobStatusDownloading,
		models.JobStatusEnriching,
	} {
		p = Apply(p, snap(status))
		assert.False(t, p.SearchEnabled(), "search must stay disabled at %q", status)
	}

	p = Apply(p, snap(models.JobStatusIndexing))
	assert.True(t, p.SearchEnabled())

	p = Apply(p, snap(models.JobStatusCompleted))
	assert.True(t, p.SearchEnabled())
}
