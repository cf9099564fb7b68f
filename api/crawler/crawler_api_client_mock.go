package crawler

import (
	"fmt"

	"innocrawl/config"
	"innocrawl/models"
	"innocrawl/util"
)

// CrawlerApiClientMock serves canned fixture data instead of calling a
// backend. Used by the container when env != "prod".
type CrawlerApiClientMock struct {
}

// NewCrawlerApiClientMock creates a new instance of CrawlerApiClientMock
func NewCrawlerApiClientMock() *CrawlerApiClientMock {
	return &CrawlerApiClientMock{}
}

func (c *CrawlerApiClientMock) CreateJob(inputURL string, options models.CrawlOptions) (string, error) {
	return "mock-job-1", nil
}

func (c *CrawlerApiClientMock) CancelJob(jobID string) error {
	return nil
}

func (c *CrawlerApiClientMock) ListJobs() ([]models.Job, error) {
	jobs, err := util.ReadJobsFromJSON(config.GetResourcePath(config.JOBS_RESOURCE))
	if err != nil {
		fmt.Println("Could not read jobs fixture from json")
		return nil, err
	}
	return jobs, nil
}

func (c *CrawlerApiClientMock) DeleteJob(jobID string) error {
	return nil
}

func (c *CrawlerApiClientMock) GetCategories(jobID string) ([]string, error) {
	products, err := util.ReadProductsFromJSON(config.GetResourcePath(config.PRODUCTS_RESOURCE))
	if err != nil {
		fmt.Println("Could not read products fixture from json")
		return nil, err
	}

	seen := make(map[string]struct{})
	var categories []string
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, dup := seen[p.Category]; dup {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	return categories, nil
}

func (c *CrawlerApiClientMock) GetProduct(productID string) (*models.Product, error) {
	products, err := util.ReadProductsFromJSON(config.GetResourcePath(config.PRODUCTS_RESOURCE))
	if err != nil {
		fmt.Println("Could not read products fixture from json")
		return nil, err
	}
	for i := range products {
		if products[i].ID == productID {
			return &products[i], nil
		}
	}
	return nil, ErrProductNotFound
}

func (c *CrawlerApiClientMock) Search(jobID, query string, limit int, filters models.SearchFilters) ([]models.Product, error) {
	products, err := util.ReadProductsFromJSON(config.GetResourcePath(config.PRODUCTS_RESOURCE))
	if err != nil {
		fmt.Println("Could not read products fixture from json")
		return nil, err
	}
	if limit > 0 && len(products) > limit {
		products = products[:limit]
	}
	return products, nil
}

func (c *CrawlerApiClientMock) ReportURL(jobID, query string, filters models.SearchFilters) string {
	q := filters.ToValues()
	q.Set("job_id", jobID)
	q.Set("q", query)
	return "mock://search/download?" + q.Encode()
}

var _ CrawlerAPI = (*CrawlerApiClientMock)(nil)
