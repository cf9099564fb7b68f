// Package controller holds the page-level view controllers. Each one owns
// its transient view state, issues commands through the API client, and
// pushes an immutable view struct to a render callback after every change.
// There is no implicit reactivity: state changes produce a new view, which
// is handed to the callback.
package controller

import (
	"log"
	"strings"
	"sync"

	"innocrawl/api/crawler"
	"innocrawl/models"
)

// IntakeView is the rendered state of the crawl-intake page.
type IntakeView struct {
	URL     string
	Options models.CrawlOptions
	Loading bool
	Error   string
}

// JobCreatedFunc is the navigation callback fired when a crawl was accepted.
type JobCreatedFunc func(jobID, url string)

// IntakeController drives the crawl-intake form.
type IntakeController struct {
	api          crawler.CrawlerAPI
	render       func(IntakeView)
	onJobCreated JobCreatedFunc

	mu      sync.Mutex
	url     string
	options models.CrawlOptions
	loading bool
	err     string
}

// NewIntakeController constructs the controller with its collaborators.
func NewIntakeController(api crawler.CrawlerAPI, render func(IntakeView), onJobCreated JobCreatedFunc) *IntakeController {
	return &IntakeController{
		api:          api,
		render:       render,
		onJobCreated: onJobCreated,
		options:      models.DefaultCrawlOptions(),
	}
}

// SetURL updates the form's input URL.
func (c *IntakeController) SetURL(url string) {
	c.mu.Lock()
	c.url = url
	c.mu.Unlock()
	c.notify()
}

// SetOptions replaces the crawl options. The record is immutable once
// submitted to the backend.
func (c *IntakeController) SetOptions(options models.CrawlOptions) {
	c.mu.Lock()
	c.options = options
	c.mu.Unlock()
	c.notify()
}

// StartCrawl submits the form. On success the job-created callback fires
// with the new job id; on failure the error is surfaced once, without
// retrying, and the caller must not subscribe.
func (c *IntakeController) StartCrawl() {
	c.mu.Lock()
	url := strings.TrimSpace(c.url)
	options := c.options
	if url == "" {
		c.err = "Please enter a valid ecommerce listing URL"
		c.mu.Unlock()
		c.notify()
		return
	}
	c.loading = true
	c.err = ""
	c.mu.Unlock()
	c.notify()

	jobID, err := c.api.CreateJob(url, options)

	c.mu.Lock()
	c.loading = false
	if err != nil {
		log.Printf("[IntakeController] create job failed: %v", err)
		c.err = "Failed to start crawl: " + err.Error()
		c.mu.Unlock()
		c.notify()
		return
	}
	c.mu.Unlock()
	c.notify()

	if c.onJobCreated != nil {
		c.onJobCreated(jobID, url)
	}
}

// View returns a copy of the current view state.
func (c *IntakeController) View() IntakeView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return IntakeView{
		URL:     c.url,
		Options: c.options,
		Loading: c.loading,
		Error:   c.err,
	}
}

func (c *IntakeController) notify() {
	if c.render != nil {
		c.render(c.View())
	}
}
