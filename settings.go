package tidydraws

import (
	"sync"
	"time"
)

// Settings holds global tidydraws configuration.
type Settings struct {
	mu sync.RWMutex

	// DefaultPredictColumn names the value column for predicted draws.
	DefaultPredictColumn string

	// DefaultEstimateColumn names the value column for fitted draws.
	DefaultEstimateColumn string

	// DefaultDrawCount limits draws per call when the caller does not
	// (0 = all iterations the fit contains).
	DefaultDrawCount int

	// EnableTracing enables debug-level logging of sampler calls.
	EnableTracing bool

	// Collector receives a record of every draw call for observability.
	Collector Collector

	// DefaultCache caches raw draw arrays for fingerprinted models.
	DefaultCache Cache

	// CacheTTL is the cache time-to-live (0 = no expiry).
	CacheTTL time.Duration
}

// globalSettings is the singleton instance of Settings.
var globalSettings = &Settings{
	DefaultPredictColumn:  "pred",
	DefaultEstimateColumn: "estimate",
}

// GetSettings returns a copy of the current global settings.
func GetSettings() Settings {
	globalSettings.mu.RLock()
	defer globalSettings.mu.RUnlock()

	return Settings{
		DefaultPredictColumn:  globalSettings.DefaultPredictColumn,
		DefaultEstimateColumn: globalSettings.DefaultEstimateColumn,
		DefaultDrawCount:      globalSettings.DefaultDrawCount,
		EnableTracing:         globalSettings.EnableTracing,
		Collector:             globalSettings.Collector,
		DefaultCache:          globalSettings.DefaultCache,
		CacheTTL:              globalSettings.CacheTTL,
	}
}

// ResetConfig restores the default settings. Intended for tests.
func ResetConfig() {
	globalSettings.mu.Lock()
	defer globalSettings.mu.Unlock()

	globalSettings.DefaultPredictColumn = "pred"
	globalSettings.DefaultEstimateColumn = "estimate"
	globalSettings.DefaultDrawCount = 0
	globalSettings.EnableTracing = false
	globalSettings.Collector = nil
	globalSettings.DefaultCache = nil
	globalSettings.CacheTTL = 0
}
