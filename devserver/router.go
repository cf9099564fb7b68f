package devserver

import (
	"github.com/gorilla/mux"

	"innocrawl/devserver/handlers"
)

type Router struct {
	jobHandler    *handlers.JobHandler
	searchHandler *handlers.SearchHandler
	feedHandler   *handlers.StatusFeedHandler
	router        *mux.Router
}

// NewRouter creates a router with the app's routes.
func NewRouter(
	jobHandler *handlers.JobHandler,
	searchHandler *handlers.SearchHandler,
	feedHandler *handlers.StatusFeedHandler,
	router *mux.Router) *Router {
	return &Router{
		jobHandler:    jobHandler,
		searchHandler: searchHandler,
		feedHandler:   feedHandler,
		router:        router,
	}
}

func (r *Router) RegisterRoutes() {
	r.router.HandleFunc("/jobs", r.jobHandler.CreateJob).Methods("POST")
	r.router.HandleFunc("/jobs", r.jobHandler.ListJobs).Methods("GET")
	r.router.HandleFunc("/jobs/{id}/cancel", r.jobHandler.CancelJob).Methods("POST")
	r.router.HandleFunc("/jobs/{id}/categories", r.jobHandler.GetCategories).Methods("GET")
	r.router.HandleFunc("/jobs/{id}", r.jobHandler.DeleteJob).Methods("DELETE")

	r.router.HandleFunc("/search", r.searchHandler.Search).Methods("GET")
	r.router.HandleFunc("/search/download", r.searchHandler.Download).Methods("GET")
	r.router.HandleFunc("/products/{id}", r.searchHandler.GetProduct).Methods("GET")

	// live status feed, query-arg form plus the legacy path form
	r.router.HandleFunc("/ws", r.feedHandler.Feed).Methods("GET")
	r.router.HandleFunc("/ws/{id}", r.feedHandler.Feed).Methods("GET")

	r.router.HandleFunc("/ping", r.jobHandler.Ping).Methods("GET")
}
