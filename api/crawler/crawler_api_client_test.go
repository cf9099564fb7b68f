package crawler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"innocrawl/api"
	"innocrawl/models"
)

func TestCreateJob(t *testing.T) {
	var received map[string]interface{}

	// Handler to verify request and return stubbed JSON
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// method + path
		if r.Method != "POST" {
			t.Errorf("expected POST; got %s", r.Method)
		}
		if r.URL.Path != "/jobs" {
			t.Errorf("expected path /jobs; got %s", r.URL.Path)
		}

		// read+unmarshal body
		b, _ := io.ReadAll(r.Body)
		json.Unmarshal(b, &received)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.CreateJobResponse{JobID: "job-42"})
	}))
	defer srv.Close()

	client := NewCrawlerApiClient(api.NewHTTPClient(srv.URL))

	jobID, err := client.CreateJob("https://example.com/category/shirts", models.DefaultCrawlOptions())
	if err != nil {
		t.Fatal(err)
	}
	if jobID != "job-42" {
		t.Errorf("jobID = %q; want job-42", jobID)
	}

	// verify submitted payload
	if got := received["url"]; got != "https://example.com/category/shirts" {
		t.Errorf("body[url] = %v; want the input url", got)
	}
	opts, ok := received["options"].(map[string]interface{})
	if !ok {
		t.Fatalf("body[options] missing or wrong shape: %v", received["options"])
	}
	checks := []struct {
		key  string
		want interface{}
	}{
		{"max_pages", 5.0},
		{"max_products", 5.0},
		{"follow_pagination", true},
		{"follow_links", true},
		{"download_images", true},
		{"crawl_speed", "normal"},
	}
	for _, c := range checks {
		if got, ok := opts[c.key]; !ok || got != c.want {
			t.Errorf("options[%q] = %v; want %v", c.key, got, c.want)
		}
	}
}

func TestCreateJob_BackendRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte("robots.txt disallows crawling"))
	}))
	defer srv.Close()

	client := NewCrawlerApiClient(api.NewHTTPClient(srv.URL))

	jobID, err := client.CreateJob("https://example.com", models.DefaultCrawlOptions())
	if jobID != "" {
		t.Errorf("expected empty job id on failure, got %q", jobID)
	}

	var reqErr *api.RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *api.RequestError, got %T", err)
	}
	if reqErr.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("StatusCode = %d; want 422", reqErr.StatusCode)
	}
	if reqErr.Body != "robots.txt disallows crawling" {
		t.Errorf("Body = %q; want backend text verbatim", reqErr.Body)
	}
}

func TestCancelAndDeleteJob(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewCrawlerApiClient(api.NewHTTPClient(srv.URL))

	if err := client.CancelJob("job-7"); err != nil {
		t.Fatalf("CancelJob: %v", err)
	}
	if gotMethod != "POST" || gotPath != "/jobs/job-7/cancel" {
		t.Errorf("cancel sent %s %s; want POST /jobs/job-7/cancel", gotMethod, gotPath)
	}

	if err := client.DeleteJob("job-7"); err != nil {
		t.Fatalf("DeleteJob: %v", err)
	}
	if gotMethod != "DELETE" || gotPath != "/jobs/job-7" {
		t.Errorf("delete sent %s %s; want DELETE /jobs/job-7", gotMethod, gotPath)
	}
}

func TestGetCategories_EmptyIsNormal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/jobs/job-1/categories" {
			t.Errorf("expected /jobs/job-1/categories; got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewCrawlerApiClient(api.NewHTTPClient(srv.URL))

	categories, err := client.GetCategories("job-1")
	if err != nil {
		t.Fatalf("empty categories must not be an error: %v", err)
	}
	if len(categories) != 0 {
		t.Errorf("expected no categories, got %v", categories)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such product", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewCrawlerApiClient(api.NewHTTPClient(srv.URL))

	_, err := client.GetProduct("missing")
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestSearch_QueryEncoding(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("expected /search; got %s", r.URL.Path)
		}
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"p1","title":"Red shoes","source_url":"https://example.com/p1"}]`))
	}))
	defer srv.Close()

	client := NewCrawlerApiClient(api.NewHTTPClient(srv.URL))

	products, err := client.Search("job-1", "red shoes", 12, models.SearchFilters{Category: "shoes"})
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 1 || products[0].ID != "p1" {
		t.Errorf("unexpected products: %v", products)
	}

	checks := []struct{ key, want string }{
		{"job_id", "job-1"},
		{"q", "red shoes"},
		{"limit", "12"},
		{"category", "shoes"},
	}
	for _, c := range checks {
		if got := gotQuery[c.key]; len(got) != 1 || got[0] != c.want {
			t.Errorf("query[%q] = %v; want %q", c.key, got, c.want)
		}
	}
	// unset filters must impose no constraint
	for _, absent := range []string{"min_price", "max_price", "availability"} {
		if _, ok := gotQuery[absent]; ok {
			t.Errorf("query parameter %q must be omitted when filter unset", absent)
		}
	}
}

func TestReportURL_SameFilterEncodingAsSearch(t *testing.T) {
	client := NewCrawlerApiClient(api.NewHTTPClient("http://backend:8080"))

	min := 10.0
	got := client.ReportURL("job-9", "dress", models.SearchFilters{Category: "dresses", MinPrice: &min})

	want := "http://backend:8080/search/download?category=dresses&job_id=job-9&min_price=10&q=dress"
	if got != want {
		t.Errorf("ReportURL = %q; want %q", got, want)
	}
}
