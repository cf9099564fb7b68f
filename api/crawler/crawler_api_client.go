package crawler

import (
	"errors"
	"net/url"
	"strconv"

	"innocrawl/api"
	"innocrawl/models"
)

// CrawlerApiClient embeds the common HTTPClient
type CrawlerApiClient struct {
	*api.HTTPClient // Embed HTTPClient to reuse its methods and properties
}

// NewCrawlerApiClient creates a new instance of CrawlerApiClient
func NewCrawlerApiClient(httpClient *api.HTTPClient) *CrawlerApiClient {
	return &CrawlerApiClient{
		HTTPClient: httpClient,
	}
}

// CreateJob submits a crawl for the given URL and returns the new job id.
// On failure the caller must surface the error and must not subscribe.
func (c *CrawlerApiClient) CreateJob(inputURL string, options models.CrawlOptions) (string, error) {
	var response models.CreateJobResponse
	request := models.CreateJobRequest{URL: inputURL, Options: options}
	err := c.Request("POST", "/jobs", nil, request, &response)
	if err != nil {
		return "", err
	}
	return response.JobID, nil
}

// CancelJob asks the backend to cancel a job. Cancellation is advisory;
// callers treat a failure as a notice, never as a fatal error.
func (c *CrawlerApiClient) CancelJob(jobID string) error {
	return c.Request("POST", "/jobs/"+url.PathEscape(jobID)+"/cancel", nil, nil, nil)
}

// ListJobs retrieves the job summaries known to the backend.
func (c *CrawlerApiClient) ListJobs() ([]models.Job, error) {
	var response []models.Job
	err := c.Request("GET", "/jobs", nil, nil, &response)
	if err != nil {
		return nil, err
	}
	return response, nil
}

// DeleteJob removes a job; on success the caller drops it from any
// in-memory listing.
func (c *CrawlerApiClient) DeleteJob(jobID string) error {
	return c.Request("DELETE", "/jobs/"+url.PathEscape(jobID), nil, nil, nil)
}

// GetCategories returns the category strings a job has indexed so far.
// An empty result is a normal state, not an error.
func (c *CrawlerApiClient) GetCategories(jobID string) ([]string, error) {
	var response []string
	err := c.Request("GET", "/jobs/"+url.PathEscape(jobID)+"/categories", nil, nil, &response)
	if err != nil {
		return nil, err
	}
	return response, nil
}

// GetProduct retrieves a product detail, or ErrProductNotFound on 404.
func (c *CrawlerApiClient) GetProduct(productID string) (*models.Product, error) {
	var response models.Product
	err := c.Request("GET", "/products/"+url.PathEscape(productID), nil, nil, &response)
	if err != nil {
		var reqErr *api.RequestError
		if errors.As(err, &reqErr) && reqErr.IsNotFound() {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &response, nil
}

// Search runs a query against a job's index. The query may be empty, which
// the backend interprets as "match all indexed products for this job".
func (c *CrawlerApiClient) Search(jobID, query string, limit int, filters models.SearchFilters) ([]models.Product, error) {
	var response []models.Product
	err := c.Request("GET", "/search?"+searchValues(jobID, query, limit, filters).Encode(), nil, nil, &response)
	if err != nil {
		return nil, err
	}
	return response, nil
}

// ReportURL builds the report-download URL with the same filter encoding as
// Search. The caller opens it as a direct navigation/download; the response
// is never parsed programmatically.
func (c *CrawlerApiClient) ReportURL(jobID, query string, filters models.SearchFilters) string {
	return c.BaseURL + "/search/download?" + searchValues(jobID, query, 0, filters).Encode()
}

// searchValues encodes job id, query, optional limit and the set filters.
func searchValues(jobID, query string, limit int, filters models.SearchFilters) url.Values {
	q := filters.ToValues()
	q.Set("job_id", jobID)
	q.Set("q", query)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}
