package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/snowdj/evalharness/pkg/errors"
)

// Kind is the class of prediction task a metric applies to.
type Kind int

const (
	// Regression metrics apply to continuous targets.
	Regression Kind = iota
	// Classification metrics apply to categorical or ordinal targets.
	Classification
)

// String returns the kind's name.
func (k Kind) String() string {
	if k == Classification {
		return "classification"
	}
	return "regression"
}

// Func is the shape of every metric function.
type Func func(yTrue, yPred *mat.VecDense) (float64, error)

// Metric is a registered metric: a scoring function together with the task
// kind it applies to and its optimization direction.
type Metric struct {
	Name          string
	Kind          Kind
	LowerIsBetter bool
	Fn            Func
}

var registry = map[string]Metric{
	"mse":      {Name: "mse", Kind: Regression, LowerIsBetter: true, Fn: MSE},
	"rmse":     {Name: "rmse", Kind: Regression, LowerIsBetter: true, Fn: RMSE},
	"mae":      {Name: "mae", Kind: Regression, LowerIsBetter: true, Fn: MAE},
	"r2":       {Name: "r2", Kind: Regression, LowerIsBetter: false, Fn: R2Score},
	"accuracy": {Name: "accuracy", Kind: Classification, LowerIsBetter: false, Fn: Accuracy},
	"logloss":  {Name: "logloss", Kind: Classification, LowerIsBetter: true, Fn: LogLoss},
}

// Lookup resolves a metric by name. Unknown names return a MetricError.
func Lookup(name string) (Metric, error) {
	m, ok := registry[name]
	if !ok {
		return Metric{}, errors.NewMetricError(name, "any", "unknown metric")
	}
	return m, nil
}

// Names returns the registered metric names, for error messages and docs.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
