package nutsreg

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"

	"tidydraws"
	"tidydraws/table"
)

type fakeFit struct{}

func (f *fakeFit) Family() string { return Family }

// fakeEngine returns fixed draws and records the native args it was given.
type fakeEngine struct {
	predictCalls    int
	fitCalls        int
	lastPredictArgs PredictArgs
	lastFitArgs     FitArgs
	dpars           []string
	err             error
}

func (e *fakeEngine) PosteriorPredict(ctx context.Context, model tidydraws.Model, newdata *table.Table, args PredictArgs) (*tidydraws.Draws, error) {
	e.predictCalls++
	e.lastPredictArgs = args
	if e.err != nil {
		return nil, e.err
	}
	return fixedDraws(newdata.NRows()), nil
}

func (e *fakeEngine) PosteriorFit(ctx context.Context, model tidydraws.Model, newdata *table.Table, args FitArgs) (*tidydraws.Draws, error) {
	e.fitCalls++
	e.lastFitArgs = args
	if e.err != nil {
		return nil, e.err
	}
	return fixedDraws(newdata.NRows()), nil
}

func (e *fakeEngine) DPars(model tidydraws.Model) []string {
	return e.dpars
}

// fixedDraws builds a 2 x rows array from a gonum matrix, the way a real
// engine hands its computation back.
func fixedDraws(rows int) *tidydraws.Draws {
	data := make([]float64, 2*rows)
	for i := range data {
		data[i] = float64(i)
	}
	return tidydraws.DrawsFromMatrix(mat.NewDense(2, rows, data))
}

func newdata(t *testing.T) *table.Table {
	t.Helper()
	tbl := table.New()
	if err := tbl.AddFloats("x", []float64{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	return tbl
}

func TestSampler_ArgTranslation(t *testing.T) {
	e := &fakeEngine{}
	RegisterEngine(e)
	t.Cleanup(func() { RegisterEngine(nil) })

	_, err := tidydraws.PredictedDraws(context.Background(), &fakeFit{}, newdata(t),
		tidydraws.WithDrawCount(25),
		tidydraws.WithReFormula("~(1|site)"),
		tidydraws.WithArg("seed", 42))
	if err != nil {
		t.Fatalf("PredictedDraws() error = %v", err)
	}

	args := e.lastPredictArgs
	if args.NDraws != 25 {
		t.Errorf("NDraws = %d, want 25", args.NDraws)
	}
	if args.GroupTerms != "~(1|site)" || !args.HasGroupTerms {
		t.Errorf("GroupTerms = (%q, %v), want the formula", args.GroupTerms, args.HasGroupTerms)
	}
	if !args.AllowNewLevels {
		t.Error("AllowNewLevels not set for a custom formula")
	}
	if args.Summary {
		t.Error("Summary not suppressed; raw per-iteration values required")
	}
	if args.Extra["seed"] != 42 {
		t.Errorf("Extra = %v, want seed passed through", args.Extra)
	}
}

func TestSampler_NoGroupEffects(t *testing.T) {
	e := &fakeEngine{}
	RegisterEngine(e)
	t.Cleanup(func() { RegisterEngine(nil) })

	_, err := tidydraws.PredictedDraws(context.Background(), &fakeFit{}, newdata(t),
		tidydraws.WithNoGroupEffects())
	if err != nil {
		t.Fatalf("PredictedDraws() error = %v", err)
	}

	args := e.lastPredictArgs
	if !args.ExcludeGroupTerms {
		t.Error("ExcludeGroupTerms not set")
	}
	if args.AllowNewLevels {
		t.Error("AllowNewLevels set without a custom formula")
	}
}

func TestSampler_MissingEngine(t *testing.T) {
	RegisterEngine(nil)

	_, err := tidydraws.PredictedDraws(context.Background(), &fakeFit{}, newdata(t))

	var depErr *tidydraws.MissingDependencyError
	if !errors.As(err, &depErr) {
		t.Fatalf("error = %v, want *MissingDependencyError", err)
	}
	if depErr.Library != EngineName {
		t.Errorf("Library = %q, want %q", depErr.Library, EngineName)
	}
}

func TestSampler_NativeNameRejected(t *testing.T) {
	e := &fakeEngine{}
	RegisterEngine(e)
	t.Cleanup(func() { RegisterEngine(nil) })

	_, err := tidydraws.PredictedDraws(context.Background(), &fakeFit{}, newdata(t),
		tidydraws.WithArg("ndraws", 10))

	var ambErr *tidydraws.AmbiguousArgumentError
	if !errors.As(err, &ambErr) {
		t.Fatalf("error = %v, want *AmbiguousArgumentError", err)
	}
	if e.predictCalls != 0 {
		t.Errorf("engine reached %d times despite rejected argument", e.predictCalls)
	}
}

func TestSampler_FittedScaleAndDPars(t *testing.T) {
	e := &fakeEngine{dpars: []string{"sigma", "nu"}}
	RegisterEngine(e)
	t.Cleanup(func() { RegisterEngine(nil) })

	out, err := tidydraws.FittedDraws(context.Background(), &fakeFit{}, newdata(t),
		tidydraws.WithScale(tidydraws.ScaleLinear),
		tidydraws.WithAllDPars())
	if err != nil {
		t.Fatalf("FittedDraws() error = %v", err)
	}

	if !e.lastFitArgs.Linear {
		t.Error("Linear scale not requested")
	}
	// One fit call for the mean plus one per dpar.
	if e.fitCalls != 3 {
		t.Errorf("fit calls = %d, want 3", e.fitCalls)
	}
	for _, col := range []string{"estimate", "sigma", "nu"} {
		if !out.HasColumn(col) {
			t.Errorf("output missing column %q", col)
		}
	}
}

func TestSampler_RenamedDPar(t *testing.T) {
	e := &fakeEngine{}
	RegisterEngine(e)
	t.Cleanup(func() { RegisterEngine(nil) })

	out, err := tidydraws.FittedDraws(context.Background(), &fakeFit{}, newdata(t),
		tidydraws.WithDPars(map[string]string{"scatter": "sigma"}))
	if err != nil {
		t.Fatalf("FittedDraws() error = %v", err)
	}

	if !out.HasColumn("scatter") {
		t.Error("renamed dpar column missing")
	}
	if e.lastFitArgs.DPar != "sigma" {
		t.Errorf("engine asked for dpar %q, want %q", e.lastFitArgs.DPar, "sigma")
	}
}

func TestSampler_EngineErrorPropagates(t *testing.T) {
	engineErr := errors.New("newdata contains unseen factor level")
	e := &fakeEngine{err: engineErr}
	RegisterEngine(e)
	t.Cleanup(func() { RegisterEngine(nil) })

	_, err := tidydraws.PredictedDraws(context.Background(), &fakeFit{}, newdata(t))
	if !errors.Is(err, engineErr) {
		t.Errorf("error = %v, want the engine's own error", err)
	}
	if err != nil && !strings.Contains(err.Error(), "unseen factor level") {
		t.Errorf("engine diagnostic lost: %v", err)
	}
}
