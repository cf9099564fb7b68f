package handlers

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	redisdao "innocrawl/dao/redis"
	"innocrawl/models"
)

const (
	JOB_ID_QUERY_ARG       = "job_id"
	QUERY_QUERY_ARG        = "q"
	LIMIT_QUERY_ARG        = "limit"
	CATEGORY_QUERY_ARG     = "category"
	MIN_PRICE_QUERY_ARG    = "min_price"
	MAX_PRICE_QUERY_ARG    = "max_price"
	AVAILABILITY_QUERY_ARG = "availability"
)

// SearchHandler serves search, report download and product detail.
type SearchHandler struct {
	jobDao *redisdao.RedisJobDAO
}

// NewSearchHandler constructs the handler with its dependencies.
func NewSearchHandler(jobDao *redisdao.RedisJobDAO) *SearchHandler {
	return &SearchHandler{jobDao: jobDao}
}

// Search handles GET /search
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	results, ok := h.runSearch(r.URL.Query(), w)
	if !ok {
		return // error already written
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(results); err != nil {
		log.Println("Error encoding response:", err)
	}
}

// Download handles GET /search/download: same filter encoding as Search,
// returned as a CSV file stream.
func (h *SearchHandler) Download(w http.ResponseWriter, r *http.Request) {
	results, ok := h.runSearch(r.URL.Query(), w)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="search_results.csv"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	cw.Write([]string{"id", "title", "price", "category", "availability", "source_url"})
	for _, p := range results {
		price := ""
		if p.Price != nil {
			price = strconv.FormatFloat(*p.Price, 'f', 2, 64)
		}
		cw.Write([]string{p.ID, p.Title, price, p.Category, p.Availability, p.SourceURL})
	}
	cw.Flush()
}

// GetProduct handles GET /products/{id}
func (h *SearchHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]

	product, err := h.jobDao.GetProduct(productID)
	if err != nil {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(product); err != nil {
		log.Println("Error encoding response:", err)
	}
}

// runSearch parses args, loads the job's products and applies query and
// filters. An empty query matches all indexed products for the job.
func (h *SearchHandler) runSearch(vals url.Values, w http.ResponseWriter) ([]models.Product, bool) {
	jobID := vals.Get(JOB_ID_QUERY_ARG)
	if jobID == "" {
		http.Error(w, "Invalid argument "+JOB_ID_QUERY_ARG, http.StatusBadRequest)
		return nil, false
	}

	limit := 0
	if v := vals.Get(LIMIT_QUERY_ARG); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "Invalid argument "+LIMIT_QUERY_ARG, http.StatusBadRequest)
			return nil, false
		}
		limit = n
	}

	minPrice, ok := parseArgPrice(vals, MIN_PRICE_QUERY_ARG, w)
	if !ok {
		return nil, false
	}
	maxPrice, ok := parseArgPrice(vals, MAX_PRICE_QUERY_ARG, w)
	if !ok {
		return nil, false
	}

	products, err := h.jobDao.ListProducts(jobID)
	if err != nil {
		log.Println("Error listing products:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return nil, false
	}

	query := strings.ToLower(strings.TrimSpace(vals.Get(QUERY_QUERY_ARG)))
	category := vals.Get(CATEGORY_QUERY_ARG)
	availability := strings.ToLower(vals.Get(AVAILABILITY_QUERY_ARG))

	results := make([]models.Product, 0, len(products))
	for _, p := range products {
		if category != "" && p.Category != category {
			continue
		}
		if minPrice != nil && (p.Price == nil || *p.Price < *minPrice) {
			continue
		}
		if maxPrice != nil && (p.Price == nil || *p.Price > *maxPrice) {
			continue
		}
		if availability != "" && !strings.Contains(strings.ToLower(p.Availability), availability) {
			continue
		}
		if query != "" {
			haystack := strings.ToLower(p.Title + " " + p.Description)
			if !strings.Contains(haystack, query) {
				continue
			}
			p.MatchReason = fmt.Sprintf("Matches query: %s", query)
		}
		results = append(results, p)
	}

	// stable listing order for paging and CSV diffs
	sort.Slice(results, func(i, j int) bool { return results[i].Title < results[j].Title })

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, true
}

func parseArgPrice(vals url.Values, name string, w http.ResponseWriter) (*float64, bool) {
	s := vals.Get(name)
	if s == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		http.Error(w, "Invalid argument "+name, http.StatusBadRequest)
		return nil, false
	}
	return &v, true
}
