package tidydraws

import (
	"context"

	"tidydraws/table"
)

// Model is the interface a fitted model must satisfy to be dispatchable.
// The model object itself is opaque to tidydraws; only its family tag is
// inspected, and the object is never mutated.
type Model interface {
	// Family returns the model family tag, e.g. "nutsreg" or "gibbsglm".
	Family() string
}

// Fingerprinter is optionally implemented by models whose identity can be
// summarized as a stable string. Only fingerprinted models participate in
// draw caching; for all others every call reaches the engine.
type Fingerprinter interface {
	Fingerprint() string
}

// Sampler adapts one model family to the generic draw interface. Samplers
// translate DrawOptions into the family's native parameter names and invoke
// the family engine's prediction entry point with summarization suppressed,
// so the result is the raw per-iteration array.
type Sampler interface {
	// Family returns the family tag this sampler handles.
	Family() string

	// NativeParams maps generic option names to this family's native
	// parameter names. Pass-through arguments using a native name listed
	// here are rejected before any prediction call.
	NativeParams() map[string]string

	// Available reports whether the family's engine is registered,
	// returning a *MissingDependencyError when it is not.
	Available() error

	// PredictDraws draws from the posterior predictive distribution.
	PredictDraws(ctx context.Context, model Model, newdata *table.Table, opts *DrawOptions) (*Draws, error)

	// FittedDraws draws the fitted (or linear-predictor) values, plus one
	// extra draw array per requested distributional parameter, keyed by
	// output column name.
	FittedDraws(ctx context.Context, model Model, newdata *table.Table, opts *DrawOptions) (*Draws, map[string]*Draws, error)
}
