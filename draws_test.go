package tidydraws

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestDraws_Dims(t *testing.T) {
	d := NewDraws(3, 5)
	if d.Iterations() != 3 || d.Rows() != 5 || d.Categories() != 0 {
		t.Errorf("dims = (%d, %d, %d), want (3, 5, 0)", d.Iterations(), d.Rows(), d.Categories())
	}
	if d.IsCategorical() {
		t.Error("2-D draws reported as categorical")
	}

	c := NewCategoricalDraws(2, 4, 3)
	if c.Iterations() != 2 || c.Rows() != 4 || c.Categories() != 3 {
		t.Errorf("dims = (%d, %d, %d), want (2, 4, 3)", c.Iterations(), c.Rows(), c.Categories())
	}
	if !c.IsCategorical() {
		t.Error("3-D draws not reported as categorical")
	}
}

func TestDraws_SetAt(t *testing.T) {
	d := NewDraws(2, 3)
	d.Set(1, 2, 7.5)
	if got := d.At(1, 2); got != 7.5 {
		t.Errorf("At(1,2) = %v, want 7.5", got)
	}

	c := NewCategoricalDraws(2, 2, 2)
	c.SetCat(1, 0, 1, -1.25)
	if got := c.AtCat(1, 0, 1); got != -1.25 {
		t.Errorf("AtCat(1,0,1) = %v, want -1.25", got)
	}
}

func TestDrawsFromMatrix(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	})
	d := DrawsFromMatrix(m)

	if d.Iterations() != 2 || d.Rows() != 3 {
		t.Fatalf("dims = (%d, %d), want (2, 3)", d.Iterations(), d.Rows())
	}
	if got := d.At(1, 2); got != 6 {
		t.Errorf("At(1,2) = %v, want 6", got)
	}
}

func TestDrawsFromMatrices(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	b := mat.NewDense(2, 2, []float64{5, 6, 7, 8})

	d, err := DrawsFromMatrices([]mat.Matrix{a, b}, []string{"yes", "no"})
	if err != nil {
		t.Fatalf("DrawsFromMatrices() error = %v", err)
	}
	if d.Categories() != 2 {
		t.Fatalf("Categories() = %d, want 2", d.Categories())
	}
	if got := d.AtCat(1, 0, 1); got != 7 {
		t.Errorf("AtCat(1,0,1) = %v, want 7", got)
	}
	labels := d.CategoryLabels()
	if len(labels) != 2 || labels[0] != "yes" || labels[1] != "no" {
		t.Errorf("CategoryLabels() = %v, want [yes no]", labels)
	}
}

func TestDrawsFromMatrices_Errors(t *testing.T) {
	a := mat.NewDense(2, 2, nil)
	ragged := mat.NewDense(2, 3, nil)

	tests := []struct {
		name     string
		matrices []mat.Matrix
		labels   []string
	}{
		{"no matrices", nil, nil},
		{"label count mismatch", []mat.Matrix{a}, []string{"x", "y"}},
		{"shape mismatch", []mat.Matrix{a, ragged}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DrawsFromMatrices(tt.matrices, tt.labels); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestDraws_LabelValidation(t *testing.T) {
	d := NewDraws(2, 3)

	if err := d.SetIterationLabels([]string{"1"}); err == nil {
		t.Error("expected error for wrong iteration label count")
	}
	if err := d.SetRowLabels([]string{"1", "2", "3", "4"}); err == nil {
		t.Error("expected error for wrong row label count")
	}
	if err := d.SetCategoryLabels([]string{"a"}); err == nil {
		t.Error("expected error for category labels on 2-D draws")
	}

	c := NewCategoricalDraws(1, 1, 2)
	if err := c.SetCategoryLabels([]string{"a", "b"}); err != nil {
		t.Errorf("SetCategoryLabels() error = %v", err)
	}
}
