package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// MockRedisClient simulates a Redis client for tests and for running the
// dev backend without a Redis instance.
type MockRedisClient struct {
	data    map[string]string              // Key-value store
	members map[string]map[string]struct{} // Set membership indexes
	mu      sync.RWMutex                   // Mutex for thread-safe operations
	context context.Context
}

// NewMockRedisClient initializes a new MockRedisClient.
func NewMockRedisClient(ctx context.Context) *MockRedisClient {
	return &MockRedisClient{
		data:    make(map[string]string),
		members: make(map[string]map[string]struct{}),
		context: ctx,
	}
}

// Set stores a key-value pair in the mock Redis.
func (m *MockRedisClient) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Get retrieves a value for a given key from the mock Redis.
func (m *MockRedisClient) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, exists := m.data[key]
	if !exists {
		return "", fmt.Errorf("key not found: %s", key)
	}
	return value, nil
}

// AddMemberWithJSON stores JSON under memberKey and indexes it in the set.
func (m *MockRedisClient) AddMemberWithJSON(ctx context.Context, setKey, memberKey string, data interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %v", err)
	}

	if _, exists := m.members[setKey]; !exists {
		m.members[setKey] = make(map[string]struct{})
	}
	m.members[setKey][memberKey] = struct{}{}

	m.data[memberKey] = string(jsonData)
	return nil
}

// GetMembersJSON returns the JSON data for every member of the set.
func (m *MockRedisClient) GetMembersJSON(setKey string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []string
	for memberKey := range m.members[setKey] {
		if data, exists := m.data[memberKey]; exists {
			results = append(results, data)
		}
	}
	return results, nil
}

// RemMember drops memberKey from the set index.
func (m *MockRedisClient) RemMember(setKey, memberKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if members, exists := m.members[setKey]; exists {
		delete(members, memberKey)
	}
	return nil
}

// GetContext returns the mock Redis client's context.
func (m *MockRedisClient) GetContext() context.Context {
	return m.context
}

// Ping simulates a Redis Ping operation.
func (m *MockRedisClient) Ping() error {
	return nil
}

// Keys supports the "prefix:*" patterns the DAOs use.
func (m *MockRedisClient) Keys(pattern string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	prefix := strings.TrimSuffix(pattern, "*")
	var keys []string
	for key := range m.data {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (m *MockRedisClient) Del(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
