package tidydraws

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Draws is the raw per-iteration prediction array a family engine returns:
// iterations x rows, or iterations x rows x categories for models that emit
// one value per category. Storage is iteration-major. Engines may attach
// string axis labels when their native output carries them; labels are
// normalized away during reshaping and never reach the output table.
type Draws struct {
	iters int
	rows  int
	cats  int // 0 for a 2-D array

	data []float64

	iterLabels []string
	rowLabels  []string
	catLabels  []string
}

// NewDraws allocates a zeroed 2-D draw array of shape iterations x rows.
func NewDraws(iterations, rows int) *Draws {
	return &Draws{iters: iterations, rows: rows, data: make([]float64, iterations*rows)}
}

// NewCategoricalDraws allocates a zeroed 3-D draw array of shape
// iterations x rows x categories.
func NewCategoricalDraws(iterations, rows, categories int) *Draws {
	return &Draws{
		iters: iterations,
		rows:  rows,
		cats:  categories,
		data:  make([]float64, iterations*rows*categories),
	}
}

// DrawsFromMatrix copies an iterations x rows matrix into a 2-D Draws.
func DrawsFromMatrix(m mat.Matrix) *Draws {
	iters, rows := m.Dims()
	d := NewDraws(iters, rows)
	for i := 0; i < iters; i++ {
		for r := 0; r < rows; r++ {
			d.Set(i, r, m.At(i, r))
		}
	}
	return d
}

// DrawsFromMatrices builds a 3-D Draws from one iterations x rows matrix per
// category. All matrices must share dimensions. labels names the categories
// and may be nil, in which case positional labels "1".."C" are used during
// reshaping.
func DrawsFromMatrices(perCategory []mat.Matrix, labels []string) (*Draws, error) {
	if len(perCategory) == 0 {
		return nil, fmt.Errorf("tidydraws: no category matrices given")
	}
	if labels != nil && len(labels) != len(perCategory) {
		return nil, fmt.Errorf("tidydraws: %d category matrices but %d labels", len(perCategory), len(labels))
	}
	iters, rows := perCategory[0].Dims()
	d := NewCategoricalDraws(iters, rows, len(perCategory))
	for c, m := range perCategory {
		mi, mr := m.Dims()
		if mi != iters || mr != rows {
			return nil, fmt.Errorf("tidydraws: category %d has shape %dx%d, want %dx%d", c+1, mi, mr, iters, rows)
		}
		for i := 0; i < iters; i++ {
			for r := 0; r < rows; r++ {
				d.SetCat(i, r, c, m.At(i, r))
			}
		}
	}
	if labels != nil {
		d.catLabels = append([]string(nil), labels...)
	}
	return d, nil
}

// Iterations returns the number of posterior iterations.
func (d *Draws) Iterations() int { return d.iters }

// Rows returns the number of predicted rows.
func (d *Draws) Rows() int { return d.rows }

// Categories returns the number of categories, or 0 for a 2-D array.
func (d *Draws) Categories() int { return d.cats }

// IsCategorical reports whether the array is 3-D.
func (d *Draws) IsCategorical() bool { return d.cats > 0 }

func (d *Draws) width() int {
	if d.cats > 0 {
		return d.cats
	}
	return 1
}

// At returns the value at (iteration, row) of a 2-D array.
func (d *Draws) At(iteration, row int) float64 {
	return d.data[(iteration*d.rows+row)*d.width()]
}

// AtCat returns the value at (iteration, row, category) of a 3-D array.
func (d *Draws) AtCat(iteration, row, category int) float64 {
	return d.data[(iteration*d.rows+row)*d.width()+category]
}

// Set stores a value at (iteration, row) of a 2-D array.
func (d *Draws) Set(iteration, row int, v float64) {
	d.data[(iteration*d.rows+row)*d.width()] = v
}

// SetCat stores a value at (iteration, row, category) of a 3-D array.
func (d *Draws) SetCat(iteration, row, category int, v float64) {
	d.data[(iteration*d.rows+row)*d.width()+category] = v
}

// SetIterationLabels attaches native iteration axis labels, for engines whose
// raw output names its axes.
func (d *Draws) SetIterationLabels(labels []string) error {
	if len(labels) != d.iters {
		return fmt.Errorf("tidydraws: %d iteration labels for %d iterations", len(labels), d.iters)
	}
	d.iterLabels = append([]string(nil), labels...)
	return nil
}

// SetRowLabels attaches native row axis labels.
func (d *Draws) SetRowLabels(labels []string) error {
	if len(labels) != d.rows {
		return fmt.Errorf("tidydraws: %d row labels for %d rows", len(labels), d.rows)
	}
	d.rowLabels = append([]string(nil), labels...)
	return nil
}

// SetCategoryLabels attaches category names for a 3-D array.
func (d *Draws) SetCategoryLabels(labels []string) error {
	if d.cats == 0 {
		return fmt.Errorf("tidydraws: category labels on a 2-D draw array")
	}
	if len(labels) != d.cats {
		return fmt.Errorf("tidydraws: %d category labels for %d categories", len(labels), d.cats)
	}
	d.catLabels = append([]string(nil), labels...)
	return nil
}

// CategoryLabels returns the category names, or nil when unset.
func (d *Draws) CategoryLabels() []string {
	if d.catLabels == nil {
		return nil
	}
	return append([]string(nil), d.catLabels...)
}
