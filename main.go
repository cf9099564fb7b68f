package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sync"

	"innocrawl/controller"
	"innocrawl/di"
	"innocrawl/models"
	"innocrawl/util"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: innocrawl [-env dev|prod] <command> [args]

Commands:
  serve                       run the dev backend (REST + websocket feed)
  crawl <url>                 start a crawl and watch live progress
  jobs                        list recent jobs
  delete <job-id>             delete a job and its index
  search <job-id> [query]     search a job's indexed products
  report <job-id>             render the job's counter and price charts`)
	os.Exit(2)
}

func main() {
	env := flag.String("env", "dev", "environment: dev wires mock collaborators, prod talks to real backends")
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
	}

	container := di.NewContainer(*env)

	switch flag.Arg(0) {
	case "serve":
		container.DevHttpServer.Start()
	case "crawl":
		if flag.NArg() < 2 {
			usage()
		}
		runCrawl(container, flag.Arg(1))
	case "jobs":
		runListJobs(container)
	case "delete":
		if flag.NArg() < 2 {
			usage()
		}
		runDeleteJob(container, flag.Arg(1))
	case "search":
		query := ""
		if flag.NArg() > 2 {
			query = flag.Arg(2)
		}
		if flag.NArg() < 2 {
			usage()
		}
		runSearch(container, flag.Arg(1), query)
	case "report":
		if flag.NArg() < 2 {
			usage()
		}
		runReport(container, flag.Arg(1))
	default:
		usage()
	}
}

// runCrawl submits the url through the intake controller, then follows the
// job's live status feed until it reaches a terminal state.
func runCrawl(container *di.Container, url string) {
	done := make(chan struct{})
	var once sync.Once

	progressCtl := controller.NewProgressController(
		container.CrawlerAPI,
		container.Subscriber,
		func(v controller.ProgressView) {
			fmt.Printf("[%5.1f%%] %-12s products indexed: %d\n",
				v.Projection.Percent,
				v.Snapshot.Status,
				v.Snapshot.Counter(models.CounterProductsIndexed))
			if v.Projection.Failed {
				fmt.Println(v.Projection.Message)
			}
			if terminal(v) {
				once.Do(func() { close(done) })
			}
		},
	)

	intakeCtl := controller.NewIntakeController(
		container.CrawlerAPI,
		func(v controller.IntakeView) {
			if v.Error != "" {
				fmt.Fprintln(os.Stderr, v.Error)
			}
		},
		func(jobID, url string) {
			fmt.Printf("Crawl accepted, job %s\n", jobID)
			progressCtl.Start(jobID, url)
		},
	)

	intakeCtl.SetURL(url)
	intakeCtl.StartCrawl()

	if intakeCtl.View().Error != "" {
		os.Exit(1)
	}

	<-done
	progressCtl.Close()

	final := progressCtl.View()
	if final.Projection.Failed || final.ConnectionLost {
		os.Exit(1)
	}
	fmt.Printf("Done. Search the index with: innocrawl search %s\n", final.JobID)
}

func terminal(v controller.ProgressView) bool {
	if v.ConnectionLost {
		fmt.Fprintln(os.Stderr, "Live status connection lost")
		return true
	}
	return v.Projection.Completed ||
		v.Projection.Failed ||
		v.Snapshot.Status == models.JobStatusCancelled
}

func runListJobs(container *di.Container) {
	jobListCtl := controller.NewJobListController(container.CrawlerAPI, nil)
	jobListCtl.Load()

	view := jobListCtl.View()
	if view.Error != "" {
		log.Fatal(view.Error)
	}
	for _, job := range view.Jobs {
		fmt.Printf("%s  %-11s %3d products  %s\n", job.ID, job.Status, job.ProductCount(), job.InputURL)
	}
}

func runDeleteJob(container *di.Container, jobID string) {
	if err := container.CrawlerAPI.DeleteJob(jobID); err != nil {
		log.Fatalf("Failed to delete job %s: %v", jobID, err)
	}
	fmt.Printf("Deleted job %s\n", jobID)
}

func runSearch(container *di.Container, jobID, query string) {
	resultsCtl := controller.NewResultsController(container.CrawlerAPI, nil, func(url string) {
		fmt.Printf("Report download: %s\n", url)
	})

	// the CLI only searches finished jobs, so the gate is open
	resultsCtl.Mount(jobID, "", true)
	resultsCtl.SetQuery(query)
	resultsCtl.Search()

	view := resultsCtl.View()
	if view.Error != "" {
		log.Fatal(view.Error)
	}
	if len(view.Categories) > 0 {
		fmt.Printf("Categories: %v\n", view.Categories)
	}
	for _, product := range view.Results {
		price := "-"
		if product.Price != nil {
			price = fmt.Sprintf("%.2f", *product.Price)
		}
		fmt.Printf("%s  %-40s %8s  %s\n", product.ID, product.Title, price, product.Category)
	}
	resultsCtl.DownloadReport()
}

// runReport renders the job's counters and the indexed price distribution
// as standalone HTML charts in the working directory.
func runReport(container *di.Container, jobID string) {
	jobs, err := container.CrawlerAPI.ListJobs()
	if err != nil {
		log.Fatalf("Failed to list jobs: %v", err)
	}

	var job *models.Job
	for i := range jobs {
		if jobs[i].ID == jobID {
			job = &jobs[i]
			break
		}
	}
	if job == nil {
		log.Fatalf("Job %s not found", jobID)
	}

	util.PlotJobCounters(*job, "job_counters.html")

	products, err := container.CrawlerAPI.Search(jobID, "", 0, models.SearchFilters{})
	if err != nil {
		log.Fatalf("Failed to fetch indexed products: %v", err)
	}
	util.PlotPriceDistribution(products, "price_distribution.html")

	fmt.Println("Wrote job_counters.html and price_distribution.html")
}
