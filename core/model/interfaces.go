package model

import (
	"gonum.org/v1/gonum/mat"
)

// Fitter is the interface for trainable models.
type Fitter interface {
	// Fit trains the model on the given design matrix and target column.
	Fit(X, y mat.Matrix) error
}

// Predictor is the interface for models that can predict.
type Predictor interface {
	// Predict returns an n×1 matrix of predictions for the given input.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Learner is what the registry constructs: a model that can be fit once and
// then queried for predictions.
type Learner interface {
	Fitter
	Predictor
}

// ParameterGetter is the interface for models that expose their
// hyperparameters.
type ParameterGetter interface {
	// GetParams returns the model's hyperparameters.
	GetParams() map[string]interface{}
}
