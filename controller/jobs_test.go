package controller

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"innocrawl/models"
)

func TestJobList_Load(t *testing.T) {
	// Setup
	api := &fakeAPI{
		listJobs: func() ([]models.Job, error) {
			return []models.Job{
				{ID: "job-1", Status: models.JobStatusCompleted, Counters: map[string]int{models.CounterProductsIndexed: 4}},
				{ID: "job-2", Status: models.JobStatusFailed, Error: "robots.txt disallows crawling"},
			}, nil
		},
	}
	ctl := NewJobListController(api, nil)

	// Act
	ctl.Load()

	// Assert
	view := ctl.View()
	assert.False(t, view.Loading)
	assert.Empty(t, view.Error)
	assert.Len(t, view.Jobs, 2)
	assert.Equal(t, 4, view.Jobs[0].ProductCount())
}

func TestJobList_LoadFailure(t *testing.T) {
	api := &fakeAPI{
		listJobs: func() ([]models.Job, error) { return nil, errors.New("503") },
	}
	ctl := NewJobListController(api, nil)

	ctl.Load()

	assert.Equal(t, "Failed to load jobs", ctl.View().Error)
}

func TestJobList_DeleteDropsFromListing(t *testing.T) {
	// Setup
	deleted := ""
	api := &fakeAPI{
		listJobs: func() ([]models.Job, error) {
			return []models.Job{{ID: "job-1"}, {ID: "job-2"}}, nil
		},
		deleteJob: func(jobID string) error {
			deleted = jobID
			return nil
		},
	}
	ctl := NewJobListController(api, nil)
	ctl.Load()

	// Act
	ctl.Delete("job-1")

	// Assert
	assert.Equal(t, "job-1", deleted)
	view := ctl.View()
	assert.Len(t, view.Jobs, 1)
	assert.Equal(t, "job-2", view.Jobs[0].ID)
}

func TestJobList_DeleteFailureKeepsListing(t *testing.T) {
	api := &fakeAPI{
		listJobs: func() ([]models.Job, error) {
			return []models.Job{{ID: "job-1"}}, nil
		},
		deleteJob: func(jobID string) error { return errors.New("500") },
	}
	ctl := NewJobListController(api, nil)
	ctl.Load()

	ctl.Delete("job-1")

	view := ctl.View()
	assert.Len(t, view.Jobs, 1)
	assert.Equal(t, "Failed to delete job", view.Notice)
}
