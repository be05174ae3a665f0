package tidydraws

import (
	"time"
)

// Option is a functional option for configuring tidydraws.
type Option func(*Settings)

// Configure applies the given options to the global settings.
// Environment variables are loaded first, then options are applied in order.
func Configure(opts ...Option) {
	loadEnv()

	globalSettings.mu.Lock()
	defer globalSettings.mu.Unlock()

	for _, opt := range opts {
		opt(globalSettings)
	}
}

// WithPredictColumn sets the default value column name for predicted draws.
func WithPredictColumn(name string) Option {
	return func(s *Settings) {
		s.DefaultPredictColumn = name
	}
}

// WithEstimateColumn sets the default value column name for fitted draws.
func WithEstimateColumn(name string) Option {
	return func(s *Settings) {
		s.DefaultEstimateColumn = name
	}
}

// WithDefaultDrawCount limits draws per call when the caller does not.
func WithDefaultDrawCount(n int) Option {
	return func(s *Settings) {
		s.DefaultDrawCount = n
	}
}

// WithTracing enables or disables debug logging of sampler calls.
func WithTracing(enable bool) Option {
	return func(s *Settings) {
		s.EnableTracing = enable
	}
}

// WithCollector sets the collector that records draw calls.
func WithCollector(c Collector) Option {
	return func(s *Settings) {
		s.Collector = c
	}
}

// WithCache enables draw caching with the specified capacity. The cache is
// created with the configured CacheTTL (0 = no expiry).
func WithCache(capacity int) Option {
	return func(s *Settings) {
		s.DefaultCache = NewDrawCache(capacity, s.CacheTTL)
	}
}

// WithCacheTTL sets the cache time-to-live (0 = no expiry). An existing
// cache is recreated with the new TTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Settings) {
		s.CacheTTL = ttl
		if s.DefaultCache != nil {
			s.DefaultCache = NewDrawCache(s.DefaultCache.Capacity(), ttl)
		}
	}
}
