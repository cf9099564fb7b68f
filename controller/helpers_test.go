package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/websocket"

	"innocrawl/api/crawler"
	"innocrawl/models"
)

// fakeAPI implements crawler.CrawlerAPI with per-test function hooks.
type fakeAPI struct {
	createJob     func(url string, options models.CrawlOptions) (string, error)
	cancelJob     func(jobID string) error
	listJobs      func() ([]models.Job, error)
	deleteJob     func(jobID string) error
	getCategories func(jobID string) ([]string, error)
	getProduct    func(productID string) (*models.Product, error)
	search        func(jobID, query string, limit int, filters models.SearchFilters) ([]models.Product, error)
	reportURL     func(jobID, query string, filters models.SearchFilters) string
}

var _ crawler.CrawlerAPI = (*fakeAPI)(nil)

func (f *fakeAPI) CreateJob(url string, options models.CrawlOptions) (string, error) {
	if f.createJob == nil {
		return "job-1", nil
	}
	return f.createJob(url, options)
}

func (f *fakeAPI) CancelJob(jobID string) error {
	if f.cancelJob == nil {
		return nil
	}
	return f.cancelJob(jobID)
}

func (f *fakeAPI) ListJobs() ([]models.Job, error) {
	if f.listJobs == nil {
		return nil, nil
	}
	return f.listJobs()
}

func (f *fakeAPI) DeleteJob(jobID string) error {
	if f.deleteJob == nil {
		return nil
	}
	return f.deleteJob(jobID)
}

func (f *fakeAPI) GetCategories(jobID string) ([]string, error) {
	if f.getCategories == nil {
		return nil, nil
	}
	return f.getCategories(jobID)
}

func (f *fakeAPI) GetProduct(productID string) (*models.Product, error) {
	if f.getProduct == nil {
		return nil, crawler.ErrProductNotFound
	}
	return f.getProduct(productID)
}

func (f *fakeAPI) Search(jobID, query string, limit int, filters models.SearchFilters) ([]models.Product, error) {
	if f.search == nil {
		return nil, nil
	}
	return f.search(jobID, query, limit, filters)
}

func (f *fakeAPI) ReportURL(jobID, query string, filters models.SearchFilters) string {
	if f.reportURL == nil {
		return ""
	}
	return f.reportURL(jobID, query, filters)
}

// newFeedServer starts a websocket server whose handler receives each
// accepted connection.
func newFeedServer(t *testing.T, handler func(conn *websocket.Conn, r *http.Request)) *httptest.Server {
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Logf("upgrade failed: %v", err)
			return
		}
		handler(conn, r)
	}))
}
