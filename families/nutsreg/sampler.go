// Package nutsreg adapts NUTS-sampled hierarchical regression fits to the
// generic tidydraws interface. Importing the package registers the family;
// the numerical work is done by an Engine registered via RegisterEngine.
package nutsreg

import (
	"context"
	"fmt"
	"sync"

	"tidydraws"
	"tidydraws/table"
)

// Family is the model family tag this package handles.
const Family = "nutsreg"

// EngineName identifies the engine dependency in error messages.
const EngineName = "nutsreg"

func init() {
	tidydraws.RegisterFamily(&sampler{})
}

// PredictArgs are the engine-native parameters for posterior prediction.
// Summary must stay false so the engine returns raw per-iteration values
// rather than a pre-summarized table.
type PredictArgs struct {
	// NDraws is the number of posterior draws per row (0 = all).
	NDraws int

	// GroupTerms is the group-level effects formula. HasGroupTerms
	// distinguishes an explicit formula from the default of all terms;
	// ExcludeGroupTerms drops every group-level term.
	GroupTerms        string
	HasGroupTerms     bool
	ExcludeGroupTerms bool

	// AllowNewLevels permits factor levels the fit has not seen.
	AllowNewLevels bool

	// Summary requests a summarized result; tidydraws always passes false.
	Summary bool

	// Extra holds pass-through arguments the engine interprets itself.
	Extra map[string]any
}

// FitArgs extend PredictArgs for fitted-value draws.
type FitArgs struct {
	PredictArgs

	// Linear selects the linear-predictor (link) scale; false means the
	// response scale.
	Linear bool

	// DPar names a distributional parameter to draw instead of the mean
	// ("" = the mean).
	DPar string
}

// Engine is the external fitting library's prediction surface for nutsreg
// fits. Engines return the raw draw array; categorical models return a 3-D
// array with category labels attached.
type Engine interface {
	// PosteriorPredict draws from the posterior predictive distribution.
	PosteriorPredict(ctx context.Context, model tidydraws.Model, newdata *table.Table, args PredictArgs) (*tidydraws.Draws, error)

	// PosteriorFit draws fitted values (or a distributional parameter).
	PosteriorFit(ctx context.Context, model tidydraws.Model, newdata *table.Table, args FitArgs) (*tidydraws.Draws, error)

	// DPars lists the distributional parameters a fit exposes.
	DPars(model tidydraws.Model) []string
}

var (
	engine   Engine
	engineMu sync.RWMutex
)

// RegisterEngine installs the engine implementation for this family.
// An engine package typically calls this from its init().
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
		"n":          "ndraws",
		"re_formula": "group_terms",
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
	return e.PosteriorPredict(ctx, model, newdata, nativeArgs(opts))
}

func (s *sampler) FittedDraws(ctx context.Context, model tidydraws.Model, newdata *table.Table, opts *tidydraws.DrawOptions) (*tidydraws.Draws, map[string]*tidydraws.Draws, error) {
	e := registeredEngine()
	if e == nil {
		return nil, nil, &tidydraws.MissingDependencyError{Library: EngineName}
	}

	args := FitArgs{
		PredictArgs: nativeArgs(opts),
		Linear:      opts.Scale == tidydraws.ScaleLinear,
	}
	main, err := e.PosteriorFit(ctx, model, newdata, args)
	if err != nil {
		return nil, nil, err
	}

	requested := opts.DPars
	if opts.AllDPars {
		requested = make(map[string]string)
		for _, name := range e.DPars(model) {
			requested[name] = name
		}
	}
	if len(requested) == 0 {
		return main, nil, nil
	}

	dpars := make(map[string]*tidydraws.Draws, len(requested))
	for output, native := range requested {
		dparArgs := args
		dparArgs.DPar = native
		d, err := e.PosteriorFit(ctx, model, newdata, dparArgs)
		if err != nil {
			return nil, nil, fmt.Errorf("drawing dpar %q: %w", native, err)
		}
		dpars[output] = d
	}
	return main, dpars, nil
}

// nativeArgs translates the generic options into this family's parameter
// names. Summary stays false so the raw per-iteration array comes back.
func nativeArgs(opts *tidydraws.DrawOptions) PredictArgs {
	return PredictArgs{
		NDraws:            opts.N,
		GroupTerms:        opts.ReFormula,
		HasGroupTerms:     opts.HasReFormula,
		ExcludeGroupTerms: opts.NoGroupEffects,
		AllowNewLevels:    opts.AllowNewLevels,
		Summary:           false,
		Extra:             opts.Extra,
	}
}
