package learner

import (
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/snowdj/evalharness/core/model"
	"github.com/snowdj/evalharness/pkg/errors"
)

// CARTRegressor is a greedy binary regression tree. Splits minimize the
// summed squared error of the two children; growth stops at MaxDepth, when a
// node holds fewer than MinSplit rows, or when no split improves the error.
type CARTRegressor struct {
	model.BaseEstimator
	MaxDepth int
	MinSplit int
	root     *cartNode
}

type cartNode struct {
	leaf      bool
	value     float64
	feature   int
	threshold float64
	left      *cartNode
	right     *cartNode
}

// NewCARTRegressor creates a regression tree learner.
func NewCARTRegressor(maxDepth, minSplit int) *CARTRegressor {
	if maxDepth < 1 {
		maxDepth = 1
	}
	if minSplit < 2 {
		minSplit = 2
	}
	return &CARTRegressor{MaxDepth: maxDepth, MinSplit: minSplit}
}

// Fit grows the tree on the given data.
func (ct *CARTRegressor) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	ry, cy := y.Dims()
	if r == 0 || c == 0 {
		return errors.Wrap(errors.ErrEmptyData, "CARTRegressor.Fit")
	}
	if ry != r {
		return errors.NewDimensionError("CARTRegressor.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("CARTRegressor.Fit", "y must be a column vector")
	}

	rows := make([]int, r)
	for i := range rows {
		rows[i] = i
	}
	ct.root = ct.grow(X, y, rows, 0)
	ct.SetFitted()
	return nil
}

func (ct *CARTRegressor) grow(X, y mat.Matrix, rows []int, depth int) *cartNode {
	targets := make([]float64, len(rows))
	for i, r := range rows {
		targets[i] = y.At(r, 0)
	}
	mean := stat.Mean(targets, nil)

	if depth >= ct.MaxDepth || len(rows) < ct.MinSplit || constant(targets) {
		return &cartNode{leaf: true, value: mean}
	}

	feature, threshold, ok := bestSplit(X, y, rows)
	if !ok {
		return &cartNode{leaf: true, value: mean}
	}

	var left, right []int
	for _, r := range rows {
		if X.At(r, feature) <= threshold {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return &cartNode{leaf: true, value: mean}
	}

	return &cartNode{
		feature:   feature,
		threshold: threshold,
		left:      ct.grow(X, y, left, depth+1),
		right:     ct.grow(X, y, right, depth+1),
	}
}

// bestSplit scans every feature and every midpoint between adjacent distinct
// values, returning the split with the lowest summed squared error.
func bestSplit(X, y mat.Matrix, rows []int) (int, float64, bool) {
	_, nFeatures := X.Dims()

	baseSSE := subsetSSE(y, rows)
	bestErr := baseSSE
	bestFeature, bestThreshold := -1, 0.0

	for f := 0; f < nFeatures; f++ {
		sorted := make([]int, len(rows))
		copy(sorted, rows)
		sort.SliceStable(sorted, func(a, b int) bool {
			return X.At(sorted[a], f) < X.At(sorted[b], f)
		})

		for i := 1; i < len(sorted); i++ {
			lo := X.At(sorted[i-1], f)
			hi := X.At(sorted[i], f)
			if lo == hi {
				continue
			}
			threshold := (lo + hi) / 2

			sse := subsetSSE(y, sorted[:i]) + subsetSSE(y, sorted[i:])
			if sse < bestErr {
				bestErr = sse
				bestFeature = f
				bestThreshold = threshold
			}
		}
	}

	return bestFeature, bestThreshold, bestFeature >= 0
}

func subsetSSE(y mat.Matrix, rows []int) float64 {
	if len(rows) == 0 {
		return 0
	}
	var sum float64
	for _, r := range rows {
		sum += y.At(r, 0)
	}
	mean := sum / float64(len(rows))

	var sse float64
	for _, r := range rows {
		d := y.At(r, 0) - mean
		sse += d * d
	}
	return sse
}

func constant(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}

// Predict routes each row down the tree to its leaf value.
func (ct *CARTRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !ct.IsFitted() {
		return nil, errors.NewNotFittedError("CARTRegressor", "Predict")
	}

	r, _ := X.Dims()
	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		node := ct.root
		for !node.leaf {
			if X.At(i, node.feature) <= node.threshold {
				node = node.left
			} else {
				node = node.right
			}
		}
		predictions.Set(i, 0, node.value)
	}
	return predictions, nil
}

// GetParams returns the model's hyperparameters.
func (ct *CARTRegressor) GetParams() map[string]interface{} {
	return map[string]interface{}{"max_depth": ct.MaxDepth, "min_split": ct.MinSplit}
}
