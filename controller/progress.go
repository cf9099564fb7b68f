package controller

import (
	"log"
	"sync"

	"innocrawl/api/crawler"
	"innocrawl/live"
	"innocrawl/models"
	"innocrawl/progress"
)

// ProgressView is the rendered state of the crawl-progress page.
type ProgressView struct {
	JobID          string
	URL            string
	Snapshot       models.StatusSnapshot
	Projection     progress.Projection
	ConnectionLost bool
	Cancelling     bool
	Notice         string
}

// ProgressController owns the live subscription for one job and projects
// its snapshots for display. At most one subscription is active per
// controller; its lifetime is bounded by the view's lifetime.
type ProgressController struct {
	api        crawler.CrawlerAPI
	subscriber *live.Subscriber
	render     func(ProgressView)

	mu             sync.Mutex
	jobID          string
	url            string
	snapshot       models.StatusSnapshot
	projection     progress.Projection
	sub            *live.Subscription
	connectionLost bool
	cancelling     bool
	notice         string
}

// NewProgressController constructs the controller with its collaborators.
func NewProgressController(api crawler.CrawlerAPI, subscriber *live.Subscriber, render func(ProgressView)) *ProgressController {
	return &ProgressController{
		api:        api,
		subscriber: subscriber,
		render:     render,
		snapshot:   models.IdleSnapshot(),
		projection: progress.Initial(),
	}
}

// Start binds the controller to a job id and opens the live subscription.
// Any previous subscription is torn down first.
func (c *ProgressController) Start(jobID, url string) {
	c.mu.Lock()
	prev := c.sub
	c.sub = nil
	c.jobID = jobID
	c.url = url
	c.snapshot = models.StatusSnapshot{Status: models.JobStatusQueued, Counters: map[string]int{}}
	c.projection = progress.Apply(progress.Initial(), c.snapshot)
	c.connectionLost = false
	c.notice = ""
	c.mu.Unlock()

	if prev != nil {
		prev.Unsubscribe()
	}
	c.notify()

	sub := c.subscriber.Subscribe(jobID, c.onSnapshot, c.onConnectionError)

	c.mu.Lock()
	c.sub = sub
	c.mu.Unlock()
}

// onSnapshot replaces the held snapshot wholesale and re-projects. Snapshots
// arrive strictly sequentially, so no merge logic is needed.
func (c *ProgressController) onSnapshot(snap models.StatusSnapshot) {
	c.mu.Lock()
	c.snapshot = snap
	c.projection = progress.Apply(c.projection, snap)
	c.mu.Unlock()
	c.notify()
}

// onConnectionError records the terminal connection-lost state. Only a full
// view restart re-establishes a subscription after this.
func (c *ProgressController) onConnectionError(err error) {
	log.Printf("[ProgressController] %v", err)
	c.mu.Lock()
	c.connectionLost = true
	c.mu.Unlock()
	c.notify()
}

// Cancel asks the backend to cancel the job, fire-and-forget: the view stays
// responsive during the call, and a failure is a non-blocking notice rather
// than an error state.
func (c *ProgressController) Cancel() {
	c.mu.Lock()
	jobID := c.jobID
	if jobID == "" || c.cancelling {
		c.mu.Unlock()
		return
	}
	c.cancelling = true
	c.mu.Unlock()
	c.notify()

	go func() {
		err := c.api.CancelJob(jobID)

		c.mu.Lock()
		c.cancelling = false
		if err != nil {
			log.Printf("[ProgressController] cancel job %s failed: %v", jobID, err)
			c.notice = "Failed to cancel job"
		}
		c.mu.Unlock()
		c.notify()
	}()
}

// Close tears down the subscription unconditionally, regardless of
// connection state. Called on navigation away from the view.
func (c *ProgressController) Close() {
	c.mu.Lock()
	sub := c.sub
	c.sub = nil
	c.mu.Unlock()

	if sub != nil {
		sub.Unsubscribe()
	}
}

// View returns a copy of the current view state.
func (c *ProgressController) View() ProgressView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ProgressView{
		JobID:          c.jobID,
		URL:            c.url,
		Snapshot:       c.snapshot,
		Projection:     c.projection,
		ConnectionLost: c.connectionLost,
		Cancelling:     c.cancelling,
		Notice:         c.notice,
	}
}

func (c *ProgressController) notify() {
	if c.render != nil {
		c.render(c.View())
	}
}
