package errors

import (
	"math"
)

// CheckFinite returns a ValueError if any value is NaN or Inf. Learners call
// this on fitted coefficients so that a numerically unstable fit surfaces as
// an error rather than a degenerate model.
func CheckFinite(operation string, values []float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewValueError(operation, "non-finite value in result")
		}
	}
	return nil
}

// CheckScalarFinite checks a single scalar value.
func CheckScalarFinite(operation string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NewValueError(operation, "non-finite value in result")
	}
	return nil
}
