// Package embedding provides shared plumbing for the embedding
// service adapters: request batching and provider rate limiting.
package embedding

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/docent/internal/core/domain"
)

// BatchSize is the number of texts sent per embedding request.
// Index builds embed thousands of chunks; batching keeps the request
// count inside provider quotas.
const BatchSize = 64

// RateLimitConfig holds rate limiting configuration for a provider.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// DefaultRateLimits provides conservative defaults for each provider.
// These are well below the published quotas to avoid 429 responses
// during large index builds.
var DefaultRateLimits = map[domain.AIProvider]RateLimitConfig{
	domain.AIProviderOpenAI: {RequestsPerSecond: 5.0, BurstSize: 10},
	domain.AIProviderGemini: {RequestsPerSecond: 2.0, BurstSize: 5},
	domain.AIProviderOllama: {RequestsPerSecond: 20.0, BurstSize: 20}, // local, generous
}

// RateLimiter provides rate limiting for embedding API requests.
// It uses a token bucket algorithm with optional backoff for 429 responses.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
}

// NewRateLimiter creates a new rate limiter for the specified provider.
func NewRateLimiter(provider domain.AIProvider) *RateLimiter {
	cfg, ok := DefaultRateLimits[provider]
	if !ok {
		// Default fallback
		cfg = RateLimitConfig{RequestsPerSecond: 5.0, BurstSize: 10}
	}

	return NewRateLimiterWithConfig(cfg)
}

// NewRateLimiterWithConfig creates a rate limiter with custom configuration.
func NewRateLimiterWithConfig(cfg RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
	}
}

// Wait blocks until a request can be made without exceeding the rate limit.
// It also respects any backoff period set by RecordRateLimitError.
func (r *RateLimiter) Wait(ctx context.Context) error {
	// First, check for backoff from previous rate limit errors
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if time.Now().Before(retryAt) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(retryAt)):
		}
	}

	// Then wait for the token bucket
	return r.limiter.Wait(ctx)
}

// RecordRateLimitError records a rate limit error and sets a backoff period.
// Call this when receiving a 429 response from the provider.
func (r *RateLimiter) RecordRateLimitError(retryAfterSeconds int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if retryAfterSeconds <= 0 {
		// Default backoff: 60 seconds
		retryAfterSeconds = 60
	}

	r.retryAt = time.Now().Add(time.Duration(retryAfterSeconds) * time.Second)
}

// Allow checks if a request can be made immediately without blocking.
// Returns true if the request is allowed, false if it would exceed the rate limit.
func (r *RateLimiter) Allow() bool {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if time.Now().Before(retryAt) {
		return false
	}

	return r.limiter.Allow()
}

// RetryAfterSeconds extracts the Retry-After value from a 429 response.
// Returns 0 when the header is absent or unparseable, in which case
// RecordRateLimitError applies its default backoff.
func RetryAfterSeconds(resp *http.Response) int {
	header := resp.Header.Get("Retry-After")
	if header == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(header); err == nil {
		return seconds
	}

	// Retry-After may also be an HTTP date
	if at, err := http.ParseTime(header); err == nil {
		if d := time.Until(at); d > 0 {
			return int(d.Seconds()) + 1
		}
	}
	return 0
}

// Batches splits texts into consecutive slices of at most BatchSize.
func Batches(texts []string) [][]string {
	if len(texts) == 0 {
		return nil
	}
	batches := make([][]string, 0, (len(texts)+BatchSize-1)/BatchSize)
	for start := 0; start < len(texts); start += BatchSize {
		end := start + BatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batches = append(batches, texts[start:end])
	}
	return batches
}
