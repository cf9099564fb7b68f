package controller

import (
	"errors"
	"log"
	"sync"

	"innocrawl/api/crawler"
	"innocrawl/config"
	"innocrawl/models"
	"innocrawl/progress"
)

// ResultsView is the rendered state of the search-results page.
type ResultsView struct {
	JobID         string
	URL           string
	Query         string
	Filters       models.SearchFilters
	Categories    []string
	Results       []models.Product
	Detail        *models.Product
	Loading       bool
	LoadingDetail bool
	Error         string
	Notice        string
	SearchEnabled bool
}

// OpenURLFunc receives the report-download URL; the caller opens it as a
// direct navigation/download. The response is never parsed programmatically.
type OpenURLFunc func(url string)

// ResultsController drives search, filters, detail and report download for
// one job's index.
type ResultsController struct {
	api     crawler.CrawlerAPI
	render  func(ResultsView)
	openURL OpenURLFunc

	mu            sync.Mutex
	jobID         string
	url           string
	query         string
	filters       models.SearchFilters
	categories    []string
	results       []models.Product
	detail        *models.Product
	loading       bool
	loadingDetail bool
	err           string
	notice        string
	searchEnabled bool
}

// NewResultsController constructs the controller with its collaborators.
func NewResultsController(api crawler.CrawlerAPI, render func(ResultsView), openURL OpenURLFunc) *ResultsController {
	return &ResultsController{
		api:     api,
		render:  render,
		openURL: openURL,
	}
}

// Mount binds the controller to a job and fetches its categories. A failed
// categories fetch is logged and ignored; the page still works without the
// dropdown. searchEnabled should come from the job's latest projection.
func (c *ResultsController) Mount(jobID, url string, searchEnabled bool) {
	c.mu.Lock()
	c.jobID = jobID
	c.url = url
	c.searchEnabled = searchEnabled
	c.results = nil
	c.detail = nil
	c.err = ""
	c.mu.Unlock()
	c.notify()

	categories, err := c.api.GetCategories(jobID)
	if err != nil {
		log.Printf("[ResultsController] fetching categories failed: %v", err)
		return
	}

	c.mu.Lock()
	c.categories = categories
	c.mu.Unlock()
	c.notify()
}

// UpdateProjection re-derives the search gate from a fresh progress
// projection: search is only meaningful once an index exists.
func (c *ResultsController) UpdateProjection(p progress.Projection) {
	c.mu.Lock()
	c.searchEnabled = c.jobID != "" && p.SearchEnabled()
	c.mu.Unlock()
	c.notify()
}

// SetQuery updates the query text. An empty query means "match all indexed
// products for this job".
func (c *ResultsController) SetQuery(query string) {
	c.mu.Lock()
	c.query = query
	c.mu.Unlock()
	c.notify()
}

// SetFilters replaces the filter set.
func (c *ResultsController) SetFilters(filters models.SearchFilters) {
	c.mu.Lock()
	c.filters = filters
	c.mu.Unlock()
	c.notify()
}

// ResetFilters clears query and filters, keeping the result list.
func (c *ResultsController) ResetFilters() {
	c.mu.Lock()
	c.query = ""
	c.filters = models.SearchFilters{}
	c.mu.Unlock()
	c.notify()
}

// Search runs the current query and filters against the job's index and
// replaces the result list wholesale. Submission is a no-op while no job is
// active or search is not yet enabled.
func (c *ResultsController) Search() {
	c.mu.Lock()
	if c.jobID == "" || !c.searchEnabled {
		c.mu.Unlock()
		return
	}
	jobID, query, filters := c.jobID, c.query, c.filters
	c.loading = true
	c.err = ""
	c.mu.Unlock()
	c.notify()

	results, err := c.api.Search(jobID, query, config.SEARCH_DEFAULT_LIMIT, filters)

	c.mu.Lock()
	c.loading = false
	if err != nil {
		log.Printf("[ResultsController] search failed: %v", err)
		c.err = "Search failed. Please try again."
		c.results = nil
	} else {
		c.results = results
	}
	c.mu.Unlock()
	c.notify()
}

// OpenDetail fetches and shows one product's detail record.
func (c *ResultsController) OpenDetail(productID string) {
	c.mu.Lock()
	c.loadingDetail = true
	c.mu.Unlock()
	c.notify()

	detail, err := c.api.GetProduct(productID)

	c.mu.Lock()
	c.loadingDetail = false
	if err != nil {
		if !errors.Is(err, crawler.ErrProductNotFound) {
			log.Printf("[ResultsController] product detail failed: %v", err)
		}
		c.detail = nil
		c.notice = "Product detail unavailable"
	} else {
		c.detail = detail
		c.notice = ""
	}
	c.mu.Unlock()
	c.notify()
}

// CloseDetail dismisses the detail view.
func (c *ResultsController) CloseDetail() {
	c.mu.Lock()
	c.detail = nil
	c.mu.Unlock()
	c.notify()
}

// DownloadReport builds the report URL with the same filter encoding as
// Search and hands it to the opener. No-op while search is disabled.
func (c *ResultsController) DownloadReport() {
	c.mu.Lock()
	if c.jobID == "" || !c.searchEnabled {
		c.mu.Unlock()
		return
	}
	url := c.api.ReportURL(c.jobID, c.query, c.filters)
	c.mu.Unlock()

	if c.openURL != nil {
		c.openURL(url)
	}
}

// View returns a copy of the current view state.
func (c *ResultsController) View() ResultsView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ResultsView{
		JobID:         c.jobID,
		URL:           c.url,
		Query:         c.query,
		Filters:       c.filters,
		Categories:    c.categories,
		Results:       c.results,
		Detail:        c.detail,
		Loading:       c.loading,
		LoadingDetail: c.loadingDetail,
		Error:         c.err,
		Notice:        c.notice,
		SearchEnabled: c.searchEnabled,
	}
}

func (c *ResultsController) notify() {
	if c.render != nil {
		c.render(c.View())
	}
}
