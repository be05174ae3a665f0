package tidydraws

// Scale selects which quantity fitted draws are taken on.
type Scale int

const (
	// ScaleResponse draws fitted values on the response scale.
	ScaleResponse Scale = iota
	// ScaleLinear draws the linear predictor on the link scale.
	ScaleLinear
)

func (s Scale) String() string {
	if s == ScaleLinear {
		return "linear"
	}
	return "response"
}

// DrawOptions are the generic, family-independent knobs for a draw call.
// Family samplers translate these into their engine's native parameters; the
// zero value means "engine defaults" throughout.
type DrawOptions struct {
	// N is the number of posterior draws to take per row; 0 draws all
	// iterations the fit contains.
	N int

	// ReFormula selects which group-level effect terms are included.
	// HasReFormula distinguishes an explicit formula from the default
	// (all terms); NoGroupEffects excludes every group-level term.
	ReFormula      string
	HasReFormula   bool
	NoGroupEffects bool

	// AllowNewLevels is set whenever a custom ReFormula is supplied, since
	// a custom formula may introduce factor levels the fit has not seen.
	AllowNewLevels bool

	// Var names the output value column. Empty means the configured
	// default ("pred" for predicted draws, "estimate" for fitted draws).
	Var string

	// Category names the category column emitted for 3-D draw arrays.
	Category string

	// Scale applies to fitted draws only.
	Scale Scale

	// DPars maps output column name to native distributional parameter
	// name; AllDPars requests every parameter the model exposes, under
	// their native names.
	DPars    map[string]string
	AllDPars bool

	// Extra holds pass-through arguments handed to the engine untouched,
	// after the ambiguity check against the family's native names.
	Extra map[string]any
}

// Copy returns a deep copy so samplers can adjust options without mutating
// the caller's.
func (o *DrawOptions) Copy() *DrawOptions {
	out := *o
	if o.DPars != nil {
		out.DPars = make(map[string]string, len(o.DPars))
		for k, v := range o.DPars {
			out.DPars[k] = v
		}
	}
	if o.Extra != nil {
		out.Extra = make(map[string]any, len(o.Extra))
		for k, v := range o.Extra {
			out.Extra[k] = v
		}
	}
	return &out
}

// DrawOption is a functional option for the draw entry points.
type DrawOption func(*DrawOptions)

// WithDrawCount limits the number of posterior draws taken per row.
func WithDrawCount(n int) DrawOption {
	return func(o *DrawOptions) {
		o.N = n
	}
}

// WithReFormula includes only the group-level effect terms named by the
// formula. The family-native allow-new-levels flag is set alongside, since a
// narrowed formula may be applied to data with unseen factor levels.
func WithReFormula(formula string) DrawOption {
	return func(o *DrawOptions) {
		o.ReFormula = formula
		o.HasReFormula = true
		o.NoGroupEffects = false
		o.AllowNewLevels = true
	}
}

// WithNoGroupEffects excludes all group-level effect terms.
func WithNoGroupEffects() DrawOption {
	return func(o *DrawOptions) {
		o.ReFormula = ""
		o.HasReFormula = false
		o.NoGroupEffects = true
		o.AllowNewLevels = false
	}
}

// WithValueColumn names the output value column.
func WithValueColumn(name string) DrawOption {
	return func(o *DrawOptions) {
		o.Var = name
	}
}

// WithCategoryColumn names the category column emitted when a model produces
// one draw per category.
func WithCategoryColumn(name string) DrawOption {
	return func(o *DrawOptions) {
		o.Category = name
	}
}

// WithScale selects the response or linear-predictor scale for fitted draws.
func WithScale(scale Scale) DrawOption {
	return func(o *DrawOptions) {
		o.Scale = scale
	}
}

// WithDPars adds distributional parameter columns to fitted draws; keys are
// the desired output column names, values the native parameter names.
func WithDPars(pars map[string]string) DrawOption {
	return func(o *DrawOptions) {
		o.DPars = make(map[string]string, len(pars))
		for k, v := range pars {
			o.DPars[k] = v
		}
		o.AllDPars = false
	}
}

// WithAllDPars adds every distributional parameter the model exposes, each
// under its native name.
func WithAllDPars() DrawOption {
	return func(o *DrawOptions) {
		o.AllDPars = true
		o.DPars = nil
	}
}

// WithArg passes an argument through to the engine's native prediction call.
// Native names that have a generic equivalent are rejected before the call.
func WithArg(name string, value any) DrawOption {
	return func(o *DrawOptions) {
		if o.Extra == nil {
			o.Extra = make(map[string]any)
		}
		o.Extra[name] = value
	}
}
