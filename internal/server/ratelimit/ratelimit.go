// Package ratelimit provides per-client, per-endpoint rate limiting backed by
// golang.org/x/time/rate token buckets.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// bucket pairs a token bucket with the limit it was built from.
type bucket struct {
	limiter  *rate.Limiter
	capacity int
}

func newBucket(capacity int, refillPerSecond float64) *bucket {
	return &bucket{
		limiter:  rate.NewLimiter(rate.Limit(refillPerSecond), capacity),
		capacity: capacity,
	}
}

// allow consumes a token if one is available.
func (b *bucket) allow(now time.Time) bool {
	return b.limiter.AllowN(now, 1)
}

// status reports the remaining whole tokens and when the bucket will be full.
func (b *bucket) status(now time.Time) (remaining int, resetTime time.Time) {
	tokens := b.limiter.TokensAt(now)
	if tokens < 0 {
		tokens = 0
	}
	remaining = int(tokens)

	resetTime = now
	if missing := float64(b.capacity) - tokens; missing > 0 && b.limiter.Limit() > 0 {
		seconds := missing / float64(b.limiter.Limit())
		resetTime = now.Add(time.Duration(seconds * float64(time.Second)))
	}
	return remaining, resetTime
}

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Limiter manages rate limiting for multiple clients.
type Limiter struct {
	buckets       map[string]*bucket // client:endpoint:method -> bucket
	mu            sync.RWMutex
	config        *Config
	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
	lastAccess    map[string]time.Time
	accessMu      sync.RWMutex
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// NewLimiter creates a new rate limiter with the given configuration.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    300,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
			Whitelist:       make(map[string]bool),
			Blacklist:       make(map[string]bool),
		}
	}

	limiter := &Limiter{
		buckets:    make(map[string]*bucket),
		config:     config,
		lastAccess: make(map[string]time.Time),
	}

	if config.Enabled && config.CleanupInterval > 0 {
		limiter.cleanupTicker = time.NewTicker(config.CleanupInterval)
		limiter.cleanupStop = make(chan struct{})
		go limiter.cleanup()
	}

	return limiter
}

// Allow checks if a request from the given client is allowed for the specified endpoint.
func (l *Limiter) Allow(clientID string, endpoint string, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{Allowed: false}
	}

	endpointConfig := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if endpointConfig == nil {
		endpointConfig = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultLimit,
		}
	}

	// Unlimited endpoint (e.g., health check)
	if endpointConfig.Limit <= 0 || endpointConfig.Window <= 0 {
		return true, Info{Allowed: true}
	}

	bucketKey := clientID + ":" + endpoint + ":" + method
	b := l.getBucket(bucketKey, endpointConfig.Limit, endpointConfig.Window, endpointConfig.Burst)

	now := time.Now()
	l.accessMu.Lock()
	l.lastAccess[bucketKey] = now
	l.accessMu.Unlock()

	allowed := b.allow(now)
	remaining, resetTime := b.status(now)

	var retryAfter time.Duration
	if !allowed {
		retryAfter = resetTime.Sub(now)
		if perToken := time.Duration(float64(time.Second) / float64(b.limiter.Limit())); perToken < retryAfter {
			retryAfter = perToken
		}
		if retryAfter < 0 {
			retryAfter = 0
		}
	}

	return allowed, Info{
		Allowed:    allowed,
		Limit:      endpointConfig.Limit,
		Remaining:  remaining,
		ResetTime:  resetTime,
		RetryAfter: retryAfter,
	}
}

// getBucket gets or creates a bucket for the given key.
func (l *Limiter) getBucket(key string, limit int, window time.Duration, burst int) *bucket {
	l.mu.RLock()
	b, exists := l.buckets[key]
	l.mu.RUnlock()
	if exists {
		return b
	}

	refillRate := float64(limit) / window.Seconds()
	capacity := burst
	if capacity <= 0 {
		capacity = limit
	}
	b = newBucket(capacity, refillRate)

	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, exists := l.buckets[key]; exists {
		return existing
	}
	l.buckets[key] = b
	return b
}

// cleanup removes old unused buckets to prevent memory leaks.
func (l *Limiter) cleanup() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.cleanupBuckets(time.Now().Add(-1 * time.Hour))
		case <-l.cleanupStop:
			return
		}
	}
}

// cleanupBuckets removes buckets last accessed before cutoff.
func (l *Limiter) cleanupBuckets(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.accessMu.Lock()
	defer l.accessMu.Unlock()

	for key, lastAccess := range l.lastAccess {
		if lastAccess.Before(cutoff) {
			delete(l.buckets, key)
			delete(l.lastAccess, key)
		}
	}
}

// bucketCount returns the number of live buckets.
func (l *Limiter) bucketCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.buckets)
}

// Stop stops the cleanup goroutine.
func (l *Limiter) Stop() {
	if l.cleanupTicker != nil {
		l.cleanupTicker.Stop()
	}
	if l.cleanupStop != nil {
		close(l.cleanupStop)
	}
}
