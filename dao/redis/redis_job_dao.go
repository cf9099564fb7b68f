package redis

import (
	"encoding/json"
	"fmt"

	"innocrawl/db"
	"innocrawl/models"
)

const JOBS_SET_KEY_V1 = "crawl_jobs_v1"
const JOB_KEY_FORMAT_V1 = "crawl_job_v1:%s"
const JOB_PRODUCTS_SET_KEY_FORMAT_V1 = "job_products_v1:%s"
const PRODUCT_KEY_FORMAT_V1 = "product_v1:%s"

// RedisJobDAO persists jobs and their indexed products as JSON in Redis.
type RedisJobDAO struct {
	client db.RedisClient
}

// NewRedisJobDAO initializes a RedisJobDAO with the Redis client.
func NewRedisJobDAO(client db.RedisClient) *RedisJobDAO {
	return &RedisJobDAO{client: client}
}

// UpsertJob stores the job record and indexes it in the jobs set.
func (dao *RedisJobDAO) UpsertJob(job models.Job) error {
	ctx := dao.client.GetContext()
	jobKey := fmt.Sprintf(JOB_KEY_FORMAT_V1, job.ID)
	return dao.client.AddMemberWithJSON(ctx, JOBS_SET_KEY_V1, jobKey, job)
}

// GetJob retrieves one job by id.
func (dao *RedisJobDAO) GetJob(jobID string) (*models.Job, error) {
	jobKey := fmt.Sprintf(JOB_KEY_FORMAT_V1, jobID)
	str, err := dao.client.Get(jobKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get job from redis: %w", err)
	}
	var job models.Job
	if err := json.Unmarshal([]byte(str), &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job JSON: %w", err)
	}
	return &job, nil
}

// ListJobs retrieves every stored job.
func (dao *RedisJobDAO) ListJobs() ([]models.Job, error) {
	jobsJSON, err := dao.client.GetMembersJSON(JOBS_SET_KEY_V1)
	if err != nil {
		return nil, fmt.Errorf("[RedisJobDAO] failed to list jobs: %v", err)
	}

	jobs := make([]models.Job, len(jobsJSON))
	for i, jobJSON := range jobsJSON {
		if err := json.Unmarshal([]byte(jobJSON), &jobs[i]); err != nil {
			return nil, fmt.Errorf("failed to unmarshal job JSON: %v", err)
		}
	}
	return jobs, nil
}

// DeleteJob removes the job record, its index entry, and its products.
func (dao *RedisJobDAO) DeleteJob(jobID string) error {
	jobKey := fmt.Sprintf(JOB_KEY_FORMAT_V1, jobID)

	products, err := dao.ListProducts(jobID)
	if err == nil {
		for _, p := range products {
			productKey := fmt.Sprintf(PRODUCT_KEY_FORMAT_V1, p.ID)
			_ = dao.client.Del(productKey)
		}
	}
	_ = dao.client.Del(fmt.Sprintf(JOB_PRODUCTS_SET_KEY_FORMAT_V1, jobID))

	if err := dao.client.RemMember(JOBS_SET_KEY_V1, jobKey); err != nil {
		return fmt.Errorf("failed to deindex job %s: %w", jobID, err)
	}
	if err := dao.client.Del(jobKey); err != nil {
		return fmt.Errorf("failed to delete job key %s: %w", jobKey, err)
	}
	return nil
}

// UpsertProduct stores a product record and indexes it under its job.
func (dao *RedisJobDAO) UpsertProduct(jobID string, p models.Product) error {
	ctx := dao.client.GetContext()
	setKey := fmt.Sprintf(JOB_PRODUCTS_SET_KEY_FORMAT_V1, jobID)
	productKey := fmt.Sprintf(PRODUCT_KEY_FORMAT_V1, p.ID)
	return dao.client.AddMemberWithJSON(ctx, setKey, productKey, p)
}

// GetProduct retrieves one product by id.
func (dao *RedisJobDAO) GetProduct(productID string) (*models.Product, error) {
	productKey := fmt.Sprintf(PRODUCT_KEY_FORMAT_V1, productID)
	str, err := dao.client.Get(productKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get product from redis: %w", err)
	}
	var p models.Product
	if err := json.Unmarshal([]byte(str), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product JSON: %w", err)
	}
	return &p, nil
}

// ListProducts retrieves every product indexed under a job.
func (dao *RedisJobDAO) ListProducts(jobID string) ([]models.Product, error) {
	setKey := fmt.Sprintf(JOB_PRODUCTS_SET_KEY_FORMAT_V1, jobID)
	productsJSON, err := dao.client.GetMembersJSON(setKey)
	if err != nil {
		return nil, fmt.Errorf("[RedisJobDAO] failed to list products: %v", err)
	}

	products := make([]models.Product, len(productsJSON))
	for i, productJSON := range productsJSON {
		if err := json.Unmarshal([]byte(productJSON), &products[i]); err != nil {
			return nil, fmt.Errorf("failed to unmarshal product JSON: %v", err)
		}
	}
	return products, nil
}

// ListCategories returns the distinct category strings of a job's products.
func (dao *RedisJobDAO) ListCategories(jobID string) ([]string, error) {
	products, err := dao.ListProducts(jobID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var categories []string
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, dup := seen[p.Category]; dup {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	return categories, nil
}
