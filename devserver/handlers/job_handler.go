package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	redisdao "innocrawl/dao/redis"
	"innocrawl/config"
	"innocrawl/models"
)

// JobRunner starts and cancels simulated crawl runs.
type JobRunner interface {
	StartJob(job models.Job)
	Cancel(jobID string)
}

// JobHandler serves the job lifecycle routes.
type JobHandler struct {
	jobDao *redisdao.RedisJobDAO
	runner JobRunner
}

// NewJobHandler constructs the handler with its dependencies.
func NewJobHandler(jobDao *redisdao.RedisJobDAO, runner JobRunner) *JobHandler {
	return &JobHandler{jobDao: jobDao, runner: runner}
}

// CreateJob handles POST /jobs
func (h *JobHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req models.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		http.Error(w, "url is required", http.StatusBadRequest)
		return
	}
	if req.Options.MaxProducts < 0 || req.Options.MaxProducts > config.DEV_SERVER_MAX_PRODUCTS_CAP {
		http.Error(w, "max_products out of range", http.StatusUnprocessableEntity)
		return
	}

	now := time.Now().UTC()
	job := models.Job{
		ID:        uuid.NewString(),
		InputURL:  req.URL,
		Status:    models.JobStatusQueued,
		Counters:  map[string]int{},
		Options:   req.Options,
		CreatedAt: &now,
	}

	if err := h.jobDao.UpsertJob(job); err != nil {
		log.Println("Error storing job:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	h.runner.StartJob(job)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(models.CreateJobResponse{JobID: job.ID}); err != nil {
		log.Println("Error encoding response:", err)
	}
}

// ListJobs handles GET /jobs
func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobDao.ListJobs()
	if err != nil {
		log.Println("Error listing jobs:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if jobs == nil {
		jobs = []models.Job{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(jobs); err != nil {
		log.Println("Error encoding response:", err)
	}
}

// CancelJob handles POST /jobs/{id}/cancel
func (h *JobHandler) CancelJob(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["id"]
	if _, err := h.jobDao.GetJob(jobID); err != nil {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}

	h.runner.Cancel(jobID)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteJob handles DELETE /jobs/{id}
func (h *JobHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["id"]
	if _, err := h.jobDao.GetJob(jobID); err != nil {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}

	if err := h.jobDao.DeleteJob(jobID); err != nil {
		log.Println("Error deleting job:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetCategories handles GET /jobs/{id}/categories
func (h *JobHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["id"]
	if _, err := h.jobDao.GetJob(jobID); err != nil {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}

	categories, err := h.jobDao.ListCategories(jobID)
	if err != nil {
		log.Println("Error listing categories:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if categories == nil {
		// no indexable output yet is a normal state
		categories = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(categories); err != nil {
		log.Println("Error encoding response:", err)
	}
}

// Ping handles GET /ping
func (h *JobHandler) Ping(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "pong"})
}
