package db

import "context"

// RedisClientInterface defines the methods available in the RedisClient
type RedisClient interface {
	Set(key, value string) error
	Get(key string) (string, error)
	AddMemberWithJSON(ctx context.Context, setKey, memberKey string, data interface{}) error
	GetMembersJSON(setKey string) ([]string, error)
	RemMember(setKey, memberKey string) error
	GetContext() context.Context
	Ping() error
	Keys(pattern string) ([]string, error)
	Del(key string) error
}
