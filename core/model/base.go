// Package model defines the estimator interfaces and base types shared by
// all learners in the harness.
package model

// EstimatorState tracks whether a learner has been fit.
type EstimatorState int

const (
	// NotFitted means the learner has not been trained yet.
	NotFitted EstimatorState = iota
	// Fitted means the learner has been trained.
	Fitted
)

// BaseEstimator is embedded by every learner implementation to carry the
// fitted state.
type BaseEstimator struct {
	state EstimatorState
}

// IsFitted reports whether the learner has been fit.
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted marks the learner as fit.
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset returns the learner to its unfit state.
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
}
