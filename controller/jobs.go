package controller

import (
	"log"
	"sync"

	"innocrawl/api/crawler"
	"innocrawl/models"
)

// JobListView is the rendered state of the job-list page.
type JobListView struct {
	Jobs    []models.Job
	Loading bool
	Error   string
	Notice  string
}

// JobListController drives the recent-jobs page. Each mount re-fetches the
// listing from the backend; nothing is shared with other controllers.
type JobListController struct {
	api    crawler.CrawlerAPI
	render func(JobListView)

	mu      sync.Mutex
	jobs    []models.Job
	loading bool
	err     string
	notice  string
}

// NewJobListController constructs the controller with its collaborators.
func NewJobListController(api crawler.CrawlerAPI, render func(JobListView)) *JobListController {
	return &JobListController{
		api:    api,
		render: render,
	}
}

// Load fetches the job listing.
func (c *JobListController) Load() {
	c.mu.Lock()
	c.loading = true
	c.err = ""
	c.mu.Unlock()
	c.notify()

	jobs, err := c.api.ListJobs()

	c.mu.Lock()
	c.loading = false
	if err != nil {
		log.Printf("[JobListController] listing jobs failed: %v", err)
		c.err = "Failed to load jobs"
	} else {
		c.jobs = jobs
	}
	c.mu.Unlock()
	c.notify()
}

// Delete removes a job on the backend and, on success, drops it from the
// in-memory listing.
func (c *JobListController) Delete(jobID string) {
	if err := c.api.DeleteJob(jobID); err != nil {
		log.Printf("[JobListController] deleting job %s failed: %v", jobID, err)
		c.mu.Lock()
		c.notice = "Failed to delete job"
		c.mu.Unlock()
		c.notify()
		return
	}

	c.mu.Lock()
	kept := c.jobs[:0]
	for _, j := range c.jobs {
		if j.ID != jobID {
			kept = append(kept, j)
		}
	}
	c.jobs = kept
	c.notice = ""
	c.mu.Unlock()
	c.notify()
}

// View returns a copy of the current view state.
func (c *JobListController) View() JobListView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return JobListView{
		Jobs:    c.jobs,
		Loading: c.loading,
		Error:   c.err,
		Notice:  c.notice,
	}
}

func (c *JobListController) notify() {
	if c.render != nil {
		c.render(c.View())
	}
}
