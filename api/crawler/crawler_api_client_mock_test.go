package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"innocrawl/config"
	"innocrawl/models"
	"innocrawl/util"
)

func TestMockListJobs(t *testing.T) {
	// Arrange
	t.Setenv("PROJECT_ROOT", "../..")
	client := NewCrawlerApiClientMock()

	expected, err := util.ReadJobsFromJSON(config.GetResourcePath(config.JOBS_RESOURCE))
	if err != nil {
		t.Errorf("expected no error when reading expected jobs, got %v", err)
	}

	// Act
	jobs, err := client.ListJobs()

	// Assert
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	assert.Equal(t, expected, jobs, "Jobs dont match")
}

func TestMockSearch(t *testing.T) {
	t.Setenv("PROJECT_ROOT", "../..")
	client := NewCrawlerApiClientMock()

	products, err := client.Search("mock-job-1", "", 0, models.SearchFilters{})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	assert.NotEmpty(t, products)
}

func TestMockGetProduct_NotFound(t *testing.T) {
	t.Setenv("PROJECT_ROOT", "../..")
	client := NewCrawlerApiClientMock()

	_, err := client.GetProduct("does-not-exist")
	assert.ErrorIs(t, err, ErrProductNotFound)
}
