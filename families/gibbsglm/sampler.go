// Package gibbsglm adapts Gibbs-sampled GLM fits to the generic tidydraws
// interface. Importing the package registers the family; the numerical work
// is done by an Engine registered via RegisterEngine.
//
// gibbsglm engines return a SampleGrid whose axes carry string labels
// ("iter_3", "row_12"). The sampler forwards those labels on the draw array
// so the reshaping stage can normalize them back to integer indices.
package gibbsglm

import (
	"context"
	"fmt"
	"sync"

	"tidydraws"
	"tidydraws/table"
)

// Family is the model family tag this package handles.
const Family = "gibbsglm"

// EngineName identifies the engine dependency in error messages.
const EngineName = "gibbsglm"

func init() {
	tidydraws.RegisterFamily(&sampler{})
}

// PredictArgs are the engine-native prediction parameters. Raw must stay
// true so the engine returns per-iteration values rather than posterior
// means.
type PredictArgs struct {
	// NSim is the number of posterior simulations per row (0 = all).
	NSim int

	// Random is the random-effects formula. HasRandom distinguishes an
	// explicit formula from the default of all terms; ExcludeRandom drops
	// every random-effect term.
	Random        string
	HasRandom     bool
	ExcludeRandom bool

	// AllowNewLevels permits factor levels the fit has not seen.
	AllowNewLevels bool

	// Raw requests per-iteration values; tidydraws always passes true.
	Raw bool

	// Extra holds pass-through arguments the engine interprets itself.
	Extra map[string]any
}

// FitArgs extend PredictArgs for fitted-value draws.
type FitArgs struct {
	PredictArgs

	// Linear selects the linear-predictor (link) scale.
	Linear bool
}

// SampleGrid is gibbsglm's native raw output: an iteration x row value grid
// with labeled axes. Labels may be nil when the engine omits them.
type SampleGrid struct {
	IterLabels []string
	RowLabels  []string
	Values     [][]float64 // [iteration][row]
}

// Engine is the external fitting library's prediction surface for gibbsglm
// fits.
type Engine interface {
	// Predict draws from the posterior predictive distribution.
	Predict(ctx context.Context, model tidydraws.Model, newdata *table.Table, args PredictArgs) (*SampleGrid, error)

	// FittedValues draws the fitted values.
	FittedValues(ctx context.Context, model tidydraws.Model, newdata *table.Table, args FitArgs) (*SampleGrid, error)
}

var (
	engine   Engine
	engineMu sync.RWMutex
)

// RegisterEngine installs the engine implementation for this family.
func RegisterEngine(e Engine) {
	engineMu.Lock()
	defer engineMu.Unlock()
	engine = e
}

func registeredEngine() Engine {
	engineMu.RLock()
	defer engineMu.RUnlock()
	return engine
}

type sampler struct{}

func (s *sampler) Family() string {
	return Family
}

func (s *sampler) NativeParams() map[string]string {
	return map[string]string{
		"n":          "nsim",
		"re_formula": "random",
	}
}

func (s *sampler) Available() error {
	if registeredEngine() == nil {
		return &tidydraws.MissingDependencyError{Library: EngineName}
	}
	return nil
}

func (s *sampler) PredictDraws(ctx context.Context, model tidydraws.Model, newdata *table.Table, opts *tidydraws.DrawOptions) (*tidydraws.Draws, error) {
	e := registeredEngine()
	if e == nil {
		return nil, &tidydraws.MissingDependencyError{Library: EngineName}
	}
	grid, err := e.Predict(ctx, model, newdata, nativeArgs(opts))
	if err != nil {
		return nil, err
	}
	return gridToDraws(grid)
}

func (s *sampler) FittedDraws(ctx context.Context, model tidydraws.Model, newdata *table.Table, opts *tidydraws.DrawOptions) (*tidydraws.Draws, map[string]*tidydraws.Draws, error) {
	if opts.AllDPars || len(opts.DPars) > 0 {
		return nil, nil, fmt.Errorf("gibbsglm models do not expose distributional parameters")
	}
	e := registeredEngine()
	if e == nil {
		return nil, nil, &tidydraws.MissingDependencyError{Library: EngineName}
	}
	args := FitArgs{
		PredictArgs: nativeArgs(opts),
		Linear:      opts.Scale == tidydraws.ScaleLinear,
	}
	grid, err := e.FittedValues(ctx, model, newdata, args)
	if err != nil {
		return nil, nil, err
	}
	d, err := gridToDraws(grid)
	if err != nil {
		return nil, nil, err
	}
	return d, nil, nil
}

// nativeArgs translates the generic options into this family's parameter
// names. Raw stays true so the per-iteration grid comes back.
func nativeArgs(opts *tidydraws.DrawOptions) PredictArgs {
	return PredictArgs{
		NSim:           opts.N,
		Random:         opts.ReFormula,
		HasRandom:      opts.HasReFormula,
		ExcludeRandom:  opts.NoGroupEffects,
		AllowNewLevels: opts.AllowNewLevels,
		Raw:            true,
		Extra:          opts.Extra,
	}
}

// gridToDraws copies a labeled sample grid into a draw array, carrying the
// axis labels along for normalization during reshaping.
func gridToDraws(grid *SampleGrid) (*tidydraws.Draws, error) {
	if grid == nil || len(grid.Values) == 0 {
		return nil, fmt.Errorf("gibbsglm: engine returned an empty sample grid")
	}
	iters := len(grid.Values)
	rows := len(grid.Values[0])

	d := tidydraws.NewDraws(iters, rows)
	for i, rowVals := range grid.Values {
		if len(rowVals) != rows {
			return nil, fmt.Errorf("gibbsglm: ragged sample grid: iteration %d has %d rows, want %d", i+1, len(rowVals), rows)
		}
		for r, v := range rowVals {
			d.Set(i, r, v)
		}
	}
	if grid.IterLabels != nil {
		if err := d.SetIterationLabels(grid.IterLabels); err != nil {
			return nil, err
		}
	}
	if grid.RowLabels != nil {
		if err := d.SetRowLabels(grid.RowLabels); err != nil {
			return nil, err
		}
	}
	return d, nil
}
