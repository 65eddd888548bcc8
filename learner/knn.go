package learner

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/snowdj/evalharness/core/model"
	"github.com/snowdj/evalharness/core/parallel"
	"github.com/snowdj/evalharness/pkg/errors"
)

// KNNRegressor predicts the mean target of the k nearest training rows by
// Euclidean distance. When the training set holds fewer than k rows, all of
// them are used.
type KNNRegressor struct {
	model.BaseEstimator
	K      int
	trainX *mat.Dense
	trainY []float64
}

// NewKNNRegressor creates a k-nearest-neighbour regressor.
func NewKNNRegressor(k int) *KNNRegressor {
	if k < 1 {
		k = 1
	}
	return &KNNRegressor{K: k}
}

// Fit memorizes the training data.
func (kn *KNNRegressor) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	ry, cy := y.Dims()
	if r == 0 || c == 0 {
		return errors.Wrap(errors.ErrEmptyData, "KNNRegressor.Fit")
	}
	if ry != r {
		return errors.NewDimensionError("KNNRegressor.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("KNNRegressor.Fit", "y must be a column vector")
	}

	kn.trainX = mat.DenseCopyOf(X)
	kn.trainY = make([]float64, r)
	for i := 0; i < r; i++ {
		kn.trainY[i] = y.At(i, 0)
	}
	kn.SetFitted()
	return nil
}

// Predict averages the targets of the k nearest training rows for each input
// row. Rows are scored independently and in parallel for larger inputs.
func (kn *KNNRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !kn.IsFitted() {
		return nil, errors.NewNotFittedError("KNNRegressor", "Predict")
	}

	r, c := X.Dims()
	nTrain, cTrain := kn.trainX.Dims()
	if c != cTrain {
		return nil, errors.NewDimensionError("KNNRegressor.Predict", cTrain, c, 1)
	}

	k := kn.K
	if k > nTrain {
		k = nTrain
	}

	predictions := mat.NewDense(r, 1, nil)

	const parallelThreshold = 64
	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		dists := make([]float64, nTrain)
		order := make([]int, nTrain)
		for i := start; i < end; i++ {
			for t := 0; t < nTrain; t++ {
				var d float64
				for j := 0; j < c; j++ {
					diff := X.At(i, j) - kn.trainX.At(t, j)
					d += diff * diff
				}
				dists[t] = math.Sqrt(d)
				order[t] = t
			}
			sort.SliceStable(order, func(a, b int) bool {
				return dists[order[a]] < dists[order[b]]
			})

			var sum float64
			for n := 0; n < k; n++ {
				sum += kn.trainY[order[n]]
			}
			predictions.Set(i, 0, sum/float64(k))
		}
	})

	return predictions, nil
}

// GetParams returns the model's hyperparameters.
func (kn *KNNRegressor) GetParams() map[string]interface{} {
	return map[string]interface{}{"k": kn.K}
}
