package db

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"
)

// SetRedisClient stores JSON records keyed individually, with set-based
// membership indexes so a whole collection can be listed in one call.
type SetRedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewSetRedisClient initializes a new Redis client and verifies the connection
func NewSetRedisClient(ctx context.Context, client *redis.Client) *SetRedisClient {
	// Test the connection
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}

	return &SetRedisClient{
		client: client,
		ctx:    ctx,
	}
}

// Set sets a key-value pair in Redis
func (r *SetRedisClient) Set(key, value string) error {
	return r.client.Set(r.ctx, key, value, 0).Err()
}

// Get retrieves the value for a given key from Redis
func (r *SetRedisClient) Get(key string) (string, error) {
	return r.client.Get(r.ctx, key).Result()
}

// AddMemberWithJSON stores the record's JSON under memberKey and indexes
// memberKey in the given set.
func (r *SetRedisClient) AddMemberWithJSON(ctx context.Context, setKey, memberKey string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %v", err)
	}

	if err := r.client.SAdd(ctx, setKey, memberKey).Err(); err != nil {
		return fmt.Errorf("failed to index member: %v", err)
	}

	if err := r.client.Set(ctx, memberKey, jsonData, 0).Err(); err != nil {
		return fmt.Errorf("failed to set JSON data: %v", err)
	}

	return nil
}

// GetMembersJSON returns the JSON data of every member indexed in the set.
// Members whose record went missing are skipped.
func (r *SetRedisClient) GetMembersJSON(setKey string) ([]string, error) {
	members, err := r.client.SMembers(r.ctx, setKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list set members: %v", err)
	}

	var objects []string
	for _, memberKey := range members {
		data, err := r.client.Get(r.ctx, memberKey).Result()
		if err != nil {
			log.Printf("Skipping member %s due to error: %v", memberKey, err)
			continue
		}
		objects = append(objects, data)
	}

	return objects, nil
}

// RemMember drops memberKey from the set index. The record itself is
// deleted separately via Del.
func (r *SetRedisClient) RemMember(setKey, memberKey string) error {
	return r.client.SRem(r.ctx, setKey, memberKey).Err()
}

func (r *SetRedisClient) GetContext() context.Context {
	return r.ctx
}

func (r *SetRedisClient) Ping() error {
	_, err := r.client.Ping(r.ctx).Result()
	return err
}

func (r *SetRedisClient) Keys(pattern string) ([]string, error) {
	return r.client.Keys(r.ctx, pattern).Result()
}

func (r *SetRedisClient) Del(key string) error {
	return r.client.Del(r.ctx, key).Err()
}
