package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/snowdj/evalharness/pkg/errors"
)

// Accuracy computes the fraction of predictions matching the true labels.
// Predictions are rounded to the nearest label code before comparison, so a
// regressor-style learner emitting 0.8 for label 1 still scores correctly.
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("Accuracy", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("Accuracy", n, yPred.Len(), 0)
	}

	correct := 0
	for i := 0; i < n; i++ {
		if math.Round(yPred.AtVec(i)) == yTrue.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// LogLoss computes the binary cross-entropy of probabilistic predictions
// against 0/1 labels. Predictions are clipped away from 0 and 1 to keep the
// logarithm finite.
func LogLoss(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("LogLoss", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("LogLoss", n, yPred.Len(), 0)
	}

	const eps = 1e-15
	var loss float64
	for i := 0; i < n; i++ {
		p := yPred.AtVec(i)
		if p < eps {
			p = eps
		} else if p > 1-eps {
			p = 1 - eps
		}

		if yTrue.AtVec(i) == 1 {
			loss -= math.Log(p)
		} else {
			loss -= math.Log(1 - p)
		}
	}
	return loss / float64(n), nil
}
