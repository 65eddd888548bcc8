package learner

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/snowdj/evalharness/core/model"
	"github.com/snowdj/evalharness/pkg/errors"
)

// MeanRegressor is the featureless baseline: it predicts the mean of the
// training target for every row. Useful as a sanity floor when comparing
// configurations.
type MeanRegressor struct {
	model.BaseEstimator
	Mean float64
}

// NewMeanRegressor creates a new featureless mean regressor.
func NewMeanRegressor() *MeanRegressor {
	return &MeanRegressor{}
}

// Fit stores the mean of y. X is accepted for interface symmetry and only
// checked for row agreement.
func (m *MeanRegressor) Fit(X, y mat.Matrix) error {
	r, _ := X.Dims()
	ry, cy := y.Dims()
	if ry == 0 {
		return errors.NewValueError("MeanRegressor.Fit", "empty target")
	}
	if r != ry {
		return errors.NewDimensionError("MeanRegressor.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("MeanRegressor.Fit", "y must be a column vector")
	}

	vals := make([]float64, ry)
	for i := 0; i < ry; i++ {
		vals[i] = y.At(i, 0)
	}
	m.Mean = stat.Mean(vals, nil)
	m.SetFitted()
	return nil
}

// Predict returns the stored mean for every input row.
func (m *MeanRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("MeanRegressor", "Predict")
	}

	r, _ := X.Dims()
	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		predictions.Set(i, 0, m.Mean)
	}
	return predictions, nil
}

// GetParams returns the model's hyperparameters.
func (m *MeanRegressor) GetParams() map[string]interface{} {
	return map[string]interface{}{}
}
