package tidydraws

import (
	"os"
	"strconv"
	"time"
)

// loadEnv loads configuration from environment variables.
// This is called automatically by Configure() before applying user options.
// Environment variables supported:
//   - TIDYDRAWS_PRED_COLUMN: value column name for predicted draws (e.g. "pred")
//   - TIDYDRAWS_ESTIMATE_COLUMN: value column name for fitted draws (e.g. "estimate")
//   - TIDYDRAWS_DRAW_COUNT: default number of draws per call (e.g. "500")
//   - TIDYDRAWS_TRACING: enable tracing ("true" or "false")
//   - TIDYDRAWS_CACHE_TTL: cache time-to-live duration (e.g. "5m", "1h", "30s")
func loadEnv() {
	if col := os.Getenv("TIDYDRAWS_PRED_COLUMN"); col != "" {
		globalSettings.DefaultPredictColumn = col
	}

	if col := os.Getenv("TIDYDRAWS_ESTIMATE_COLUMN"); col != "" {
		globalSettings.DefaultEstimateColumn = col
	}

	if countStr := os.Getenv("TIDYDRAWS_DRAW_COUNT"); countStr != "" {
		if count, err := strconv.Atoi(countStr); err == nil && count >= 0 {
			globalSettings.DefaultDrawCount = count
		}
	}

	if tracingStr := os.Getenv("TIDYDRAWS_TRACING"); tracingStr != "" {
		if tracing, err := strconv.ParseBool(tracingStr); err == nil {
			globalSettings.EnableTracing = tracing
		}
	}

	if ttlStr := os.Getenv("TIDYDRAWS_CACHE_TTL"); ttlStr != "" {
		if ttl, err := time.ParseDuration(ttlStr); err == nil {
			globalSettings.CacheTTL = ttl
		}
	}
}
