package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitService enforces a daily per-client request limit on the
// public verification endpoints using Redis
type RateLimitService struct {
	client *redis.Client
	limit  int
}

// NewRateLimitService creates a new rate limit service
func NewRateLimitService(redisURL string, dailyLimit int) (*RateLimitService, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RateLimitService{client: client, limit: dailyLimit}, nil
}

// RateLimitResult contains the result of a rate limit check
type RateLimitResult struct {
	Allowed        bool
	Used           int
	Limit          int
	RetryAfterSecs int
}

// CheckAndIncrement checks whether the client identified by key is within
// its daily limit and increments its counter. The counter expires at the
// next UTC midnight.
func (s *RateLimitService) CheckAndIncrement(ctx context.Context, key string) (*RateLimitResult, error) {
	now := time.Now().UTC()
	dailyKey := fmt.Sprintf("ratelimit:daily:%s:%s", key, now.Format("2006-01-02"))

	count, err := s.client.Get(ctx, dailyKey).Int()
	if err != nil && err != redis.Nil {
		return nil, err
	}

	result := &RateLimitResult{
		Used:  count,
		Limit: s.limit,
	}

	tomorrow := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	if count >= s.limit {
		result.RetryAfterSecs = int(tomorrow.Sub(now).Seconds())
		return result, nil
	}

	pipe := s.client.Pipeline()
	pipe.Incr(ctx, dailyKey)
	pipe.ExpireAt(ctx, dailyKey, tomorrow)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	result.Allowed = true
	result.Used++

	return result, nil
}

// Close closes the Redis connection
func (s *RateLimitService) Close() error {
	return s.client.Close()
}
