package crawler

import (
	"errors"

	"innocrawl/models"
)

// ErrProductNotFound is returned by GetProduct when the backend has no
// product with the given id.
var ErrProductNotFound = errors.New("product not found")

// CrawlerAPI defines the interface for interacting with the crawl backend
type CrawlerAPI interface {
	CreateJob(url string, options models.CrawlOptions) (string, error)
	CancelJob(jobID string) error
	ListJobs() ([]models.Job, error)
	DeleteJob(jobID string) error
	GetCategories(jobID string) ([]string, error)
	GetProduct(productID string) (*models.Product, error)
	Search(jobID, query string, limit int, filters models.SearchFilters) ([]models.Product, error)
	ReportURL(jobID, query string, filters models.SearchFilters) string
}
