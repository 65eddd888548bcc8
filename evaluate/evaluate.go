// Package evaluate aggregates per-fold predictions into performance metrics
// and drives model comparison: cross-validation, random-search tuning under
// an evaluation budget, and univariate feature selection.
package evaluate

import (
	"log/slog"
	"math"
	"sync"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/snowdj/evalharness/learner"
	"github.com/snowdj/evalharness/metrics"
	"github.com/snowdj/evalharness/pkg/errors"
	hlog "github.com/snowdj/evalharness/pkg/log"
	"github.com/snowdj/evalharness/resampling"
	"github.com/snowdj/evalharness/task"
)

// Evaluator scores model configurations on tasks. All algorithm lookup goes
// through the runner's injected registry.
type Evaluator struct {
	runner *learner.Runner
}

// New creates an evaluator over the given algorithm registry.
func New(reg *learner.Registry) *Evaluator {
	return &Evaluator{runner: learner.NewRunner(reg)}
}

// NewWithRunner creates an evaluator over an existing runner.
func NewWithRunner(r *learner.Runner) *Evaluator {
	return &Evaluator{runner: r}
}

// Runner returns the evaluator's model runner.
func (e *Evaluator) Runner() *learner.Runner { return e.runner }

// kindFor maps a target's semantic type onto the metric kind it admits.
func kindFor(t task.ColumnType) metrics.Kind {
	if t == task.Numeric {
		return metrics.Regression
	}
	return metrics.Classification
}

// resolveMetric looks the metric up and rejects it when its kind does not
// match the target's semantic type.
func resolveMetric(name string, targetType task.ColumnType) (metrics.Metric, error) {
	m, err := metrics.Lookup(name)
	if err != nil {
		return metrics.Metric{}, err
	}
	if m.Kind != kindFor(targetType) {
		return metrics.Metric{}, errors.NewMetricError(name, targetType.String(),
			"metric applies to "+m.Kind.String()+" targets")
	}
	return m, nil
}

// Score computes a scalar metric over aligned prediction and actual slices.
// The metric must be compatible with the target's semantic type, otherwise a
// MetricError is returned.
func (e *Evaluator) Score(predictions, actuals []float64, metric string, targetType task.ColumnType) (float64, error) {
	m, err := resolveMetric(metric, targetType)
	if err != nil {
		return 0, err
	}
	if len(predictions) != len(actuals) {
		return 0, errors.NewDimensionError("Evaluator.Score", len(actuals), len(predictions), 0)
	}
	return m.Fn(
		mat.NewVecDense(len(actuals), append([]float64(nil), actuals...)),
		mat.NewVecDense(len(predictions), append([]float64(nil), predictions...)),
	)
}

// CrossValidate fits cfg independently per split and returns one score per
// split, in split order. Folds run in parallel; each owns its train/test
// snapshot. Any fold's failure aborts the whole call; dropping a fold would
// bias the aggregate.
func (e *Evaluator) CrossValidate(t *task.Task, splits []resampling.Split, cfg learner.Config, metric string) ([]float64, error) {
	if len(splits) == 0 {
		return nil, errors.NewConfigError("Evaluator.CrossValidate", "splits", "no splits given", 0)
	}

	m, err := resolveMetric(metric, t.TargetType())
	if err != nil {
		return nil, err
	}

	target, err := t.Column(t.TargetName())
	if err != nil {
		return nil, err
	}

	scores := make([]float64, len(splits))
	foldErrs := make([]error, len(splits))

	var wg sync.WaitGroup
	for i := range splits {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			split := splits[idx]
			fitted, err := e.runner.Fit(t, split.Train, cfg)
			if err != nil {
				foldErrs[idx] = errors.Wrapf(err, "fold %d", idx)
				return
			}

			pred, err := e.runner.Predict(fitted, t, split.Test)
			if err != nil {
				foldErrs[idx] = errors.Wrapf(err, "fold %d", idx)
				return
			}

			actual := make([]float64, len(split.Test))
			for j, row := range split.Test {
				actual[j] = target.Values[row]
			}

			score, err := m.Fn(
				mat.NewVecDense(len(actual), actual),
				mat.NewVecDense(len(pred), pred),
			)
			if err != nil {
				foldErrs[idx] = errors.Wrapf(err, "fold %d", idx)
				return
			}
			scores[idx] = score
		}(i)
	}
	wg.Wait()

	for _, err := range foldErrs {
		if err != nil {
			return nil, err
		}
	}

	mean, std := Aggregate(scores)
	slog.Debug("cross-validation finished",
		hlog.ComponentKey, "evaluate",
		hlog.OperationKey, "cross_validate",
		hlog.TaskNameKey, t.Name(),
		hlog.AlgorithmKey, cfg.Algorithm,
		hlog.MetricKey, metric,
		hlog.FoldsKey, len(splits),
		hlog.MeanScoreKey, mean,
		hlog.StdScoreKey, std,
	)

	return scores, nil
}

// Aggregate returns the mean and sample standard deviation of fold scores.
// The deviation is 0 for fewer than two scores.
func Aggregate(scores []float64) (mean, std float64) {
	if len(scores) == 0 {
		return 0, 0
	}
	mean = stat.Mean(scores, nil)
	if len(scores) < 2 {
		return mean, 0
	}
	std = stat.StdDev(scores, nil)
	if math.IsNaN(std) {
		std = 0
	}
	return mean, std
}
