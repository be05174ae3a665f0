package table

import (
	"fmt"
)

// InnerJoin joins left and right on an integer key column present in both
// tables. The result contains left's columns followed by right's columns
// (the right key column is dropped), one output row per matching
// (left-row, right-row) pair, ordered by left row then right row. Left rows
// with no match produce no output. Grouping metadata is not carried over.
func InnerJoin(left, right *Table, key string) (*Table, error) {
	lk := left.Column(key)
	if lk == nil {
		return nil, fmt.Errorf("table: join key %q not in left table", key)
	}
	rk := right.Column(key)
	if rk == nil {
		return nil, fmt.Errorf("table: join key %q not in right table", key)
	}
	if lk.Type != Int || rk.Type != Int {
		return nil, fmt.Errorf("table: join key %q must be an int column on both sides (got %s and %s)", key, lk.Type, rk.Type)
	}
	for _, c := range right.cols {
		if c.Name != key && left.HasColumn(c.Name) {
			return nil, fmt.Errorf("table: column %q exists on both sides of the join", c.Name)
		}
	}

	// Index right rows by key value, preserving right row order per key.
	index := make(map[int][]int, right.NRows())
	for i, v := range rk.Ints {
		index[v] = append(index[v], i)
	}

	out := &Table{}
	for _, c := range left.cols {
		out.cols = append(out.cols, emptyLike(c))
	}
	var rightCols []*Column
	for _, c := range right.cols {
		if c.Name == key {
			continue
		}
		rc := emptyLike(c)
		rightCols = append(rightCols, c)
		out.cols = append(out.cols, rc)
	}

	nLeft := len(left.cols)
	for li := 0; li < left.NRows(); li++ {
		matches := index[lk.Ints[li]]
		for _, ri := range matches {
			for ci, c := range left.cols {
				out.cols[ci].appendFrom(c, li)
			}
			for ci, c := range rightCols {
				out.cols[nLeft+ci].appendFrom(c, ri)
			}
		}
	}
	return out, nil
}
