package tidydraws

import (
	"context"
	"fmt"
	"sort"
	"time"

	"tidydraws/logging"
	"tidydraws/table"
)

const (
	kindPredict = "predict"
	kindFitted  = "fitted"
)

// DefaultCategoryColumn names the category column when the caller does not.
const DefaultCategoryColumn = ".category"

// PredictedDraws draws from the posterior predictive distribution of a
// fitted model for every row of newdata and returns them long format: one
// output row per (input row, iteration), carrying .row, .iteration, .chain
// and the value column (default "pred") in final position, grouped by the
// input columns plus .row. The model and newdata are never mutated.
func PredictedDraws(ctx context.Context, model any, newdata *table.Table, opts ...DrawOption) (*table.Table, error) {
	return draws(ctx, model, newdata, kindPredict, opts)
}

// AddPredictedDraws is PredictedDraws with the data-first argument order,
// for call sites that read as a pipeline from the input table.
func AddPredictedDraws(ctx context.Context, newdata *table.Table, model any, opts ...DrawOption) (*table.Table, error) {
	return draws(ctx, model, newdata, kindPredict, opts)
}

// FittedDraws draws the model's fitted values (parameter uncertainty only)
// for every row of newdata, on the response or linear-predictor scale per
// WithScale. Models that produce one value per category yield a 3-D draw
// array and an extra category column; WithDPars adds distributional
// parameter columns. The value column defaults to "estimate".
func FittedDraws(ctx context.Context, model any, newdata *table.Table, opts ...DrawOption) (*table.Table, error) {
	return draws(ctx, model, newdata, kindFitted, opts)
}

// AddFittedDraws is FittedDraws with the data-first argument order.
func AddFittedDraws(ctx context.Context, newdata *table.Table, model any, opts ...DrawOption) (*table.Table, error) {
	return draws(ctx, model, newdata, kindFitted, opts)
}

// draws runs the shared pipeline: resolve the family sampler, check engine
// availability, validate pass-through args, obtain the raw draw array
// (possibly from cache), reshape it long, and assemble the output table.
func draws(ctx context.Context, model any, newdata *table.Table, kind string, opts []DrawOption) (*table.Table, error) {
	ctx = logging.EnsureRequestID(ctx)
	settings := GetSettings()

	o := &DrawOptions{N: settings.DefaultDrawCount}
	for _, opt := range opts {
		opt(o)
	}
	if o.Var == "" {
		if kind == kindPredict {
			o.Var = settings.DefaultPredictColumn
		} else {
			o.Var = settings.DefaultEstimateColumn
		}
	}
	if o.Category == "" {
		o.Category = DefaultCategoryColumn
	}

	startTime := time.Now()
	logging.LogDrawStart(ctx, kind, fmt.Sprintf("%T", model))

	var callErr error
	defer func() {
		logging.LogDrawEnd(ctx, kind, time.Since(startTime), callErr)
	}()

	sampler, err := samplerFor(model)
	if err != nil {
		callErr = err
		return nil, callErr
	}
	if err := sampler.Available(); err != nil {
		callErr = err
		return nil, callErr
	}
	if err := validateExtraArgs(o.Extra, sampler.NativeParams()); err != nil {
		callErr = err
		return nil, callErr
	}
	m := model.(Model)

	if settings.EnableTracing {
		logging.LogSamplerCall(ctx, sampler.Family(), newdata.NRows(), o.N)
	}

	// Cache only covers the plain draw array; dpar requests always reach
	// the engine.
	var cacheKey string
	if settings.DefaultCache != nil && !o.AllDPars && len(o.DPars) == 0 {
		if fp, ok := model.(Fingerprinter); ok {
			cacheKey = GenerateDrawKey(kind, sampler.Family(), fp.Fingerprint(), newdata, o)
		}
	}

	var d *Draws
	var dpars map[string]*Draws
	cacheHit := false
	if cacheKey != "" {
		if cached, ok := settings.DefaultCache.Get(cacheKey); ok {
			d = cached
			cacheHit = true
		}
	}
	if d == nil {
		if kind == kindPredict {
			d, err = sampler.PredictDraws(ctx, m, newdata, o.Copy())
		} else {
			d, dpars, err = sampler.FittedDraws(ctx, m, newdata, o.Copy())
		}
		if err != nil {
			// Engine errors pass through with their own diagnostics.
			callErr = err
			notifyCollector(ctx, settings.Collector, kind, sampler.Family(), newdata, nil, cacheHit, time.Since(startTime), err)
			return nil, callErr
		}
		if cacheKey != "" {
			settings.DefaultCache.Set(cacheKey, d)
		}
	}

	notifyCollector(ctx, settings.Collector, kind, sampler.Family(), newdata, d, cacheHit, time.Since(startTime), nil)

	categoryCol := ""
	if d.IsCategorical() {
		categoryCol = o.Category
	}
	samples, err := reshapeDraws(d, o.Var, categoryCol)
	if err != nil {
		callErr = err
		return nil, callErr
	}

	if err := addDParColumns(samples, d, dpars); err != nil {
		callErr = err
		return nil, callErr
	}

	out, err := assemble(newdata, samples, o.Var, categoryCol)
	if err != nil {
		callErr = err
		return nil, callErr
	}
	return out, nil
}

// addDParColumns appends one value column per distributional parameter to
// the sample table. Each dpar array must match the main array's shape; the
// shared deterministic flatten order keeps the columns aligned row-for-row.
func addDParColumns(samples *table.Table, d *Draws, dpars map[string]*Draws) error {
	if len(dpars) == 0 {
		return nil
	}

	names := make([]string, 0, len(dpars))
	for name := range dpars {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		dd := dpars[name]
		if dd.Iterations() != d.Iterations() || dd.Rows() != d.Rows() {
			return fmt.Errorf("tidydraws: dpar %q has shape %dx%d, want %dx%d", name, dd.Iterations(), dd.Rows(), d.Iterations(), d.Rows())
		}
		if dd.IsCategorical() {
			return fmt.Errorf("tidydraws: dpar %q is categorical; only scalar dpars are supported", name)
		}

		width := 1
		if d.IsCategorical() {
			width = d.Categories()
		}
		values := make([]float64, 0, samples.NRows())
		for i := 0; i < dd.Iterations(); i++ {
			for r := 0; r < dd.Rows(); r++ {
				// Repeat per category so the column lines up with the
				// flattened 3-D main array.
				for c := 0; c < width; c++ {
					values = append(values, dd.At(i, r))
				}
			}
		}
		if err := samples.AddFloats(name, values); err != nil {
			return err
		}
	}
	return nil
}

// notifyCollector hands a draw record to the configured collector, if any.
func notifyCollector(ctx context.Context, c Collector, kind, family string, newdata *table.Table, d *Draws, cacheHit bool, duration time.Duration, err error) {
	if c == nil {
		return
	}
	record := &DrawRecord{
		RequestID: logging.GetRequestID(ctx),
		Kind:      kind,
		Family:    family,
		InputRows: newdata.NRows(),
		Duration:  duration,
		CacheHit:  cacheHit,
		Timestamp: time.Now(),
	}
	if d != nil {
		record.Iterations = d.Iterations()
		record.Categories = d.Categories()
	}
	if err != nil {
		record.Err = err.Error()
	}
	// Collector failures are observability-only and never fail the call.
	_ = c.Collect(record)
}
