// Package tidydraws extracts posterior draws from fitted Bayesian regression
// models and reshapes them into long-format tables joined back onto the
// input rows: one output row per (input row, posterior iteration, optional
// category), with stable .row/.iteration/.chain index columns and the value
// column in final position.
//
// tidydraws is a convenience layer, not an inference engine. All numerical
// work is delegated to a model family's engine; this package dispatches to
// the right engine entry point for the model's family, flattens the raw draw
// array, and assembles the output table.
//
// Model families register themselves on import:
//
//	import (
//		"tidydraws"
//		_ "tidydraws/families/nutsreg"
//	)
//
//	out, err := tidydraws.PredictedDraws(ctx, fit, newdata,
//		tidydraws.WithDrawCount(500))
//
// For fitted (linear-predictor) draws use FittedDraws, optionally with
// WithScale and WithDPars. AddPredictedDraws and AddFittedDraws are the
// data-first argument-order variants.
package tidydraws
