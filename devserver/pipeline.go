package devserver

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	redisdao "innocrawl/dao/redis"
	"innocrawl/models"
)

// CrawlPipeline simulates the backend crawl-and-index run: it walks each job
// through the pipeline stages on a fixed tick, accumulates counters, stores
// extracted products, and publishes a status snapshot on every change.
type CrawlPipeline struct {
	jobDao *redisdao.RedisJobDAO
	hub    *StatusHub
	tick   time.Duration
	seed   []models.Product

	mu        sync.Mutex
	cancelled map[string]bool
}

// NewCrawlPipeline constructs the pipeline with its dependencies. seed is
// the product catalog each crawl "extracts" from.
func NewCrawlPipeline(jobDao *redisdao.RedisJobDAO, hub *StatusHub, tick time.Duration, seed []models.Product) *CrawlPipeline {
	return &CrawlPipeline{
		jobDao:    jobDao,
		hub:       hub,
		tick:      tick,
		seed:      seed,
		cancelled: make(map[string]bool),
	}
}

// StartJob launches the simulated run in the background.
func (p *CrawlPipeline) StartJob(job models.Job) {
	go p.run(job)
}

// Cancel flags a running job. The run loop picks the flag up at its next
// stage boundary; cancellation is therefore advisory, not immediate.
func (p *CrawlPipeline) Cancel(jobID string) {
	p.mu.Lock()
	p.cancelled[jobID] = true
	p.mu.Unlock()
}

func (p *CrawlPipeline) isCancelled(jobID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancelled[jobID]
}

func (p *CrawlPipeline) run(job models.Job) {
	log.Printf("[CrawlPipeline] job %s started for %s", job.ID, job.InputURL)

	products := p.extractedProducts(job)
	counters := map[string]int{}

	stages := []string{
		models.JobStatusQueued,
		models.JobStatusCrawling,
		models.JobStatusParsing,
		models.JobStatusDownloading,
		models.JobStatusEnriching,
		models.JobStatusIndexing,
		models.JobStatusCompleted,
	}

	for _, stage := range stages {
		if p.isCancelled(job.ID) {
			p.finish(&job, models.JobStatusCancelled, counters, "")
			return
		}

		switch stage {
		case models.JobStatusCrawling:
			counters[models.CounterPagesVisited] = job.Options.MaxPages
			counters[models.CounterProductsDiscovered] = len(products)
		case models.JobStatusParsing:
			counters[models.CounterProductsExtracted] = len(products)
		case models.JobStatusDownloading:
			if job.Options.DownloadImages {
				counters[models.CounterImagesDownloaded] = countImages(products)
			}
		case models.JobStatusEnriching:
			counters[models.CounterProductsEnriched] = len(products)
		case models.JobStatusIndexing:
			for _, prod := range products {
				if err := p.jobDao.UpsertProduct(job.ID, prod); err != nil {
					log.Printf("[CrawlPipeline] indexing product for job %s failed: %v", job.ID, err)
				}
			}
			counters[models.CounterProductsIndexed] = len(products)
		}

		if stage == models.JobStatusCompleted {
			p.finish(&job, models.JobStatusCompleted, counters, "")
			return
		}

		p.advance(&job, stage, counters)
		time.Sleep(p.tick)
	}
}

// advance persists and publishes one stage transition.
func (p *CrawlPipeline) advance(job *models.Job, status string, counters map[string]int) {
	job.Status = status
	job.Counters = copyCounters(counters)
	if err := p.jobDao.UpsertJob(*job); err != nil {
		log.Printf("[CrawlPipeline] persisting job %s failed: %v", job.ID, err)
	}
	p.hub.Publish(job.ID, models.StatusSnapshot{Status: status, Counters: copyCounters(counters)})
}

func (p *CrawlPipeline) finish(job *models.Job, status string, counters map[string]int, errText string) {
	now := time.Now().UTC()
	job.Status = status
	job.Counters = copyCounters(counters)
	job.Error = errText
	job.FinishedAt = &now
	if err := p.jobDao.UpsertJob(*job); err != nil {
		log.Printf("[CrawlPipeline] persisting job %s failed: %v", job.ID, err)
	}
	p.hub.Publish(job.ID, models.StatusSnapshot{Status: status, Counters: copyCounters(counters), Error: errText})
	log.Printf("[CrawlPipeline] job %s finished with status %s", job.ID, status)
}

// extractedProducts clones the seed catalog for this job, capped at the
// job's max-products option, with fresh ids per run.
func (p *CrawlPipeline) extractedProducts(job models.Job) []models.Product {
	max := job.Options.MaxProducts
	if max <= 0 || max > len(p.seed) {
		max = len(p.seed)
	}

	products := make([]models.Product, 0, max)
	for _, prod := range p.seed[:max] {
		prod.ID = uuid.NewString()
		products = append(products, prod)
	}
	return products
}

func countImages(products []models.Product) int {
	n := 0
	for _, p := range products {
		n += len(p.Images)
	}
	return n
}

func copyCounters(counters map[string]int) map[string]int {
	out := make(map[string]int, len(counters))
	for k, v := range counters {
		out[k] = v
	}
	return out
}
