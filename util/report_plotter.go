package util

import (
	"fmt"
	"log"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"innocrawl/models"
)

// counterOrder keeps the chart columns in pipeline order.
var counterOrder = []string{
	models.CounterPagesVisited,
	models.CounterProductsDiscovered,
	models.CounterProductsExtracted,
	models.CounterImagesDownloaded,
	models.CounterProductsEnriched,
	models.CounterProductsIndexed,
}

// PlotJobCounters generates an HTML file rendering a job's pipeline counters
// as a bar chart.
func PlotJobCounters(job models.Job, outPath string) {
	var labels []string
	var values []opts.BarData
	for _, key := range counterOrder {
		labels = append(labels, key)
		values = append(values, opts.BarData{Value: job.Counters[key]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Crawl Job Report",
			Width:     "800px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Crawl job " + job.ID,
			Subtitle: job.InputURL,
		}),
	)
	bar.SetXAxis(labels)
	bar.AddSeries("counters", values)

	// Create an HTML file to render the chart.
	f, err := os.Create(outPath)
	if err != nil {
		log.Fatalf("Failed to create HTML file: %v", err)
	}
	defer f.Close()

	// Render the chart into the HTML file.
	if err := bar.Render(f); err != nil {
		log.Fatalf("Failed to render chart: %v", err)
	}

	fmt.Println("Job report generated: " + outPath)
}

// PlotPriceDistribution generates an HTML file rendering the prices of a
// search result set as a bar chart, one bar per product.
func PlotPriceDistribution(products []models.Product, outPath string) {
	var labels []string
	var values []opts.BarData
	for _, p := range products {
		if p.Price == nil {
			continue
		}
		labels = append(labels, p.Title)
		values = append(values, opts.BarData{Value: *p.Price})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Search Price Report",
			Width:     "800px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Price distribution",
		}),
	)
	bar.SetXAxis(labels)
	bar.AddSeries("price", values)

	f, err := os.Create(outPath)
	if err != nil {
		log.Fatalf("Failed to create HTML file: %v", err)
	}
	defer f.Close()

	if err := bar.Render(f); err != nil {
		log.Fatalf("Failed to render chart: %v", err)
	}

	fmt.Println("Price report generated: " + outPath)
}
