package controller

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"innocrawl/config"
	"innocrawl/models"
	"innocrawl/progress"
)

func TestSearch_GatedUntilIndexExists(t *testing.T) {
	// Setup: search must never hit the backend before indexing started
	api := &fakeAPI{
		search: func(jobID, query string, limit int, filters models.SearchFilters) ([]models.Product, error) {
			t.Error("Search called while disabled")
			return nil, nil
		},
	}
	ctl := NewResultsController(api, nil, nil)
	ctl.Mount("job-1", "https://shop.example.com", false)

	// Act
	ctl.SetQuery("sneakers")
	ctl.Search()

	// Assert
	view := ctl.View()
	assert.False(t, view.SearchEnabled)
	assert.Nil(t, view.Results)
}

func TestUpdateProjection_OpensTheGate(t *testing.T) {
	ctl := NewResultsController(&fakeAPI{}, nil, nil)
	ctl.Mount("job-1", "https://shop.example.com", false)

	// a projection that reached the indexing stage enables search
	p := progress.Apply(progress.Initial(), models.StatusSnapshot{Status: models.JobStatusIndexing})
	ctl.UpdateProjection(p)

	assert.True(t, ctl.View().SearchEnabled)
}

func TestSearch_ReplacesResultsWholesale(t *testing.T) {
	// Setup
	price := 59.9
	api := &fakeAPI{
		search: func(jobID, query string, limit int, filters models.SearchFilters) ([]models.Product, error) {
			assert.Equal(t, "job-1", jobID)
			assert.Equal(t, "sneakers", query)
			assert.Equal(t, config.SEARCH_DEFAULT_LIMIT, limit)
			assert.Equal(t, "shoes", filters.Category)
			return []models.Product{{ID: "prod-1", Title: "Trail Sneakers", Price: &price}}, nil
		},
	}
	ctl := NewResultsController(api, nil, nil)
	ctl.Mount("job-1", "https://shop.example.com", true)

	// Act
	ctl.SetQuery("sneakers")
	ctl.SetFilters(models.SearchFilters{Category: "shoes"})
	ctl.Search()

	// Assert
	view := ctl.View()
	assert.False(t, view.Loading)
	assert.Empty(t, view.Error)
	assert.Len(t, view.Results, 1)
	assert.Equal(t, "Trail Sneakers", view.Results[0].Title)
}

func TestSearch_FailureShowsRetryableMessage(t *testing.T) {
	api := &fakeAPI{
		search: func(jobID, query string, limit int, filters models.SearchFilters) ([]models.Product, error) {
			return nil, errors.New("503")
		},
	}
	ctl := NewResultsController(api, nil, nil)
	ctl.Mount("job-1", "https://shop.example.com", true)

	ctl.Search()

	view := ctl.View()
	assert.Equal(t, "Search failed. Please try again.", view.Error)
	assert.Nil(t, view.Results)
}

func TestMount_CategoriesFailureIsIgnored(t *testing.T) {
	// Setup: the page still works without the category dropdown
	api := &fakeAPI{
		getCategories: func(jobID string) ([]string, error) {
			return nil, errors.New("500")
		},
	}
	ctl := NewResultsController(api, nil, nil)

	// Act
	ctl.Mount("job-1", "https://shop.example.com", true)

	// Assert
	view := ctl.View()
	assert.Empty(t, view.Error)
	assert.Empty(t, view.Categories)
}

func TestOpenDetail_MissingProductIsANotice(t *testing.T) {
	ctl := NewResultsController(&fakeAPI{}, nil, nil)
	ctl.Mount("job-1", "https://shop.example.com", true)

	ctl.OpenDetail("gone")

	view := ctl.View()
	assert.Nil(t, view.Detail)
	assert.Equal(t, "Product detail unavailable", view.Notice)
}

func TestOpenDetail_ThenClose(t *testing.T) {
	api := &fakeAPI{
		getProduct: func(productID string) (*models.Product, error) {
			return &models.Product{ID: productID, Title: "Trail Sneakers"}, nil
		},
	}
	ctl := NewResultsController(api, nil, nil)
	ctl.Mount("job-1", "https://shop.example.com", true)

	ctl.OpenDetail("prod-1")
	assert.NotNil(t, ctl.View().Detail)

	ctl.CloseDetail()
	assert.Nil(t, ctl.View().Detail)
}

func TestDownloadReport_HandsURLToOpener(t *testing.T) {
	// Setup
	api := &fakeAPI{
		reportURL: func(jobID, query string, filters models.SearchFilters) string {
			return "http://backend/search/download?job_id=" + jobID + "&q=" + query
		},
	}
	var opened string
	ctl := NewResultsController(api, nil, func(url string) { opened = url })
	ctl.Mount("job-1", "https://shop.example.com", true)
	ctl.SetQuery("sneakers")

	// Act
	ctl.DownloadReport()

	// Assert
	assert.Equal(t, "http://backend/search/download?job_id=job-1&q=sneakers", opened)
}

func TestDownloadReport_GatedLikeSearch(t *testing.T) {
	opened := false
	ctl := NewResultsController(&fakeAPI{}, nil, func(url string) { opened = true })
	ctl.Mount("job-1", "https://shop.example.com", false)

	ctl.DownloadReport()

	assert.False(t, opened)
}
