package config

import (
	"os"
	"path/filepath"
)

// Backend config
const API_BASE_URL = "http://localhost:8080"
const API_BASE_URL_ENV = "INNOCRAWL_API_URL"

// Redis Config (dev backend storage)
const REDIS_DB_ADDRESS = "redis:6379"
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0
const REDIS_DB_ADDRESS_ENV = "INNOCRAWL_REDIS_ADDR"

// Dev backend config
const DEV_SERVER_ADDRESS = ":8080"
const DEV_SERVER_STAGE_TICK_MS = 700
const DEV_SERVER_MAX_PRODUCTS_CAP = 100

// Search config
const SEARCH_DEFAULT_LIMIT = 12

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const PRODUCTS_RESOURCE = "products.json"
const JOBS_RESOURCE = "jobs.json"
const SNAPSHOT_RESOURCE = "status_snapshot.json"

// APIBaseURL returns the backend origin, preferring the env override.
func APIBaseURL() string {
	if v := os.Getenv(API_BASE_URL_ENV); v != "" {
		return v
	}
	return API_BASE_URL
}

// RedisAddress returns the Redis address, preferring the env override.
func RedisAddress() string {
	if v := os.Getenv(REDIS_DB_ADDRESS_ENV); v != "" {
		return v
	}
	return REDIS_DB_ADDRESS
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	// Check if PROJECT_ROOT is set
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	// Default to the current working directory
	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resource_file string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resource_file)
}
