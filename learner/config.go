// Package learner holds the harness's ModelRunner: an explicit registry of
// named algorithms, hyperparameter specifications validated at configuration
// time, a set of built-in learners, and a Runner that fits a configuration on
// a row subset of a task and predicts on held-out rows.
package learner

import (
	"math"

	"github.com/snowdj/evalharness/pkg/errors"
)

// Config names a learning algorithm and assigns its hyperparameters.
// Parameters not present take the algorithm's default.
type Config struct {
	Algorithm string
	Params    map[string]float64
}

// ParamSpec declares one recognized hyperparameter of an algorithm: its name,
// its closed numeric range, and whether it only takes integer values.
type ParamSpec struct {
	Name    string
	Min     float64
	Max     float64
	Integer bool
}

// Validate checks a value against the spec.
func (s ParamSpec) Validate(op string, value float64) error {
	if value < s.Min || value > s.Max {
		return errors.NewConfigError(op, s.Name, "value outside declared range", value)
	}
	if s.Integer && value != math.Trunc(value) {
		return errors.NewConfigError(op, s.Name, "value must be an integer", value)
	}
	return nil
}

// param returns the configured value for name, or def when absent.
func (c Config) param(name string, def float64) float64 {
	if v, ok := c.Params[name]; ok {
		return v
	}
	return def
}
