package tidydraws

import (
	"strconv"

	"tidydraws/table"
)

// Column names shared by every output table.
const (
	// RowColumn links each draw back to its input row (1-based).
	RowColumn = ".row"
	// IterationColumn is the 1-based posterior iteration index.
	IterationColumn = ".iteration"
	// ChainColumn is the MCMC chain index; always missing, since no
	// supported engine exposes chain identity through prediction.
	ChainColumn = ".chain"
)

// reshapeDraws flattens a draw array into a long-format sample table: one
// row per array cell, with .row and .iteration index columns, an optional
// factor category column for 3-D arrays, and the value under valueCol. The
// flatten is deterministic and order-preserving, looping iteration, then
// row, then category.
func reshapeDraws(d *Draws, valueCol, categoryCol string) (*table.Table, error) {
	iters, rows, cats := d.Iterations(), d.Rows(), d.Categories()
	iterIdx := axisIndices(d.iterLabels, iters)
	rowIdx := axisIndices(d.rowLabels, rows)

	width := 1
	if cats > 0 {
		width = cats
	}
	n := iters * rows * width

	rowVals := make([]int, 0, n)
	iterVals := make([]int, 0, n)
	values := make([]float64, 0, n)
	var catVals []string
	var catNames []string
	if cats > 0 {
		catVals = make([]string, 0, n)
		catNames = d.CategoryLabels()
		if catNames == nil {
			catNames = make([]string, cats)
			for c := 0; c < cats; c++ {
				catNames[c] = strconv.Itoa(c + 1)
			}
		}
	}

	for i := 0; i < iters; i++ {
		for r := 0; r < rows; r++ {
			if cats == 0 {
				rowVals = append(rowVals, rowIdx[r])
				iterVals = append(iterVals, iterIdx[i])
				values = append(values, d.At(i, r))
				continue
			}
			for c := 0; c < cats; c++ {
				rowVals = append(rowVals, rowIdx[r])
				iterVals = append(iterVals, iterIdx[i])
				catVals = append(catVals, catNames[c])
				values = append(values, d.AtCat(i, r, c))
			}
		}
	}

	out := table.New()
	if err := out.AddInts(RowColumn, rowVals); err != nil {
		return nil, err
	}
	if err := out.AddInts(IterationColumn, iterVals); err != nil {
		return nil, err
	}
	if cats > 0 {
		if err := out.AddFactor(categoryCol, catVals, catNames); err != nil {
			return nil, err
		}
	}
	if err := out.AddFloats(valueCol, values); err != nil {
		return nil, err
	}
	return out, nil
}

// axisIndices produces the 1-based integer index for each axis position.
// Engines whose raw output names its axes (gibbsglm emits labels like
// "iter_3") would otherwise leak string-typed index columns; labels are
// silently coerced back to integers here, falling back to the position when
// a label carries no number.
func axisIndices(labels []string, n int) []int {
	idx := make([]int, n)
	for i := 0; i < n; i++ {
		if labels == nil {
			idx[i] = i + 1
			continue
		}
		idx[i] = parseAxisLabel(labels[i], i+1)
	}
	return idx
}

// parseAxisLabel extracts the trailing integer from an axis label, returning
// fallback when the label has none.
func parseAxisLabel(label string, fallback int) int {
	end := len(label)
	start := end
	for start > 0 && label[start-1] >= '0' && label[start-1] <= '9' {
		start--
	}
	if start == end {
		return fallback
	}
	v, err := strconv.Atoi(label[start:end])
	if err != nil {
		return fallback
	}
	return v
}
