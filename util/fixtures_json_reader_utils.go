package util

import (
	"encoding/json"
	"fmt"
	"os"

	"innocrawl/models"
)

// ReadProductsFromJSON loads a product list from JSON on disk.
func ReadProductsFromJSON(filePath string) ([]models.Product, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to unmarshal products: %w", err)
	}
	return products, nil
}

// ReadJobsFromJSON loads a job-summary list from JSON on disk.
func ReadJobsFromJSON(filePath string) ([]models.Job, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var jobs []models.Job
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal jobs: %w", err)
	}
	return jobs, nil
}

// ReadStatusSnapshotFromJSON loads a single StatusSnapshot from JSON on disk.
func ReadStatusSnapshotFromJSON(filePath string) (*models.StatusSnapshot, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var snap models.StatusSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal StatusSnapshot: %w", err)
	}
	return &snap, nil
}
