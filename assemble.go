package tidydraws

import (
	"fmt"

	"tidydraws/table"
)

// assemble joins the long-format sample table back onto the input rows and
// finalizes the output: .row assigned from 1-based input position, an
// all-missing .chain column, value column moved last, and grouping set to
// the original input columns plus .row (plus the category column for 3-D
// draws). The caller's input table is never mutated; any grouping it carried
// does not leak into the join.
func assemble(input, samples *table.Table, valueCol, categoryCol string) (*table.Table, error) {
	base := input.Clone()
	base.Ungroup()
	originals := base.Names()

	n := base.NRows()
	rowIdx := make([]int, n)
	for i := range rowIdx {
		rowIdx[i] = i + 1
	}
	if err := base.AddInts(RowColumn, rowIdx); err != nil {
		return nil, err
	}
	if err := base.AddNullableInts(ChainColumn, make([]int, n), make([]bool, n)); err != nil {
		return nil, err
	}

	out, err := table.InnerJoin(base, samples, RowColumn)
	if err != nil {
		return nil, err
	}

	// Every input row must be covered by the draw array, and every draw
	// must land on an input row. A mismatch means the engine predicted for
	// different rows than it was given, which is an upstream inconsistency
	// worth failing on rather than truncating.
	covered := make(map[int]bool)
	for _, v := range samples.Column(RowColumn).Ints {
		if v >= 1 && v <= n {
			covered[v] = true
		}
	}
	if len(covered) != n || out.NRows() != samples.NRows() {
		return nil, fmt.Errorf("tidydraws: draws cover %d of %d input rows", len(covered), n)
	}

	out.MoveLast(valueCol)

	groups := append(append([]string(nil), originals...), RowColumn)
	if categoryCol != "" && out.HasColumn(categoryCol) {
		groups = append(groups, categoryCol)
	}
	if err := out.GroupBy(groups...); err != nil {
		return nil, err
	}
	return out, nil
}
