package learner

import (
	"log/slog"
	"time"

	"github.com/snowdj/evalharness/core/model"
	"github.com/snowdj/evalharness/pkg/errors"
	hlog "github.com/snowdj/evalharness/pkg/log"
	"github.com/snowdj/evalharness/task"
)

// Fitted is the artifact of one Runner.Fit call: the trained learner together
// with the configuration and feature schema it was trained under. It is owned
// by the Fit call that produced it and consumed by Predict.
type Fitted struct {
	cfg      Config
	features []string
	learner  model.Learner
}

// Config returns the configuration the model was fit with.
func (f *Fitted) Config() Config { return f.cfg }

// Features returns the ordered feature names the model was fit on.
func (f *Fitted) Features() []string { return f.features }

// Learner exposes the underlying trained learner.
func (f *Fitted) Learner() model.Learner { return f.learner }

// Runner fits model configurations on row subsets of a task and predicts on
// held-out rows. All capability lookup goes through the injected registry.
type Runner struct {
	reg *Registry
}

// NewRunner creates a runner over the given registry.
func NewRunner(reg *Registry) *Runner {
	return &Runner{reg: reg}
}

// Registry returns the runner's algorithm registry.
func (r *Runner) Registry() *Registry { return r.reg }

// Fit trains cfg on the rows of t named by trainIdx. An unknown algorithm
// yields a FitError immediately; an algorithm-specific failure (singular
// input, non-finite result) propagates as a FitError wrapping the cause. No
// global state is touched.
func (r *Runner) Fit(t *task.Task, trainIdx []int, cfg Config) (fitted *Fitted, err error) {
	defer errors.Recover(&err, "Runner.Fit")

	if !r.reg.Has(cfg.Algorithm) {
		return nil, errors.NewFitError("Runner.Fit", cfg.Algorithm, errors.Newf("unknown algorithm (not in registry)"))
	}

	lrn, err := r.reg.New(cfg)
	if err != nil {
		return nil, err
	}

	train, err := t.Filter(trainIdx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	if err := lrn.Fit(train.X(), train.Y()); err != nil {
		return nil, errors.NewFitError("Runner.Fit", cfg.Algorithm, err)
	}

	slog.Debug("learner fit",
		hlog.ComponentKey, "learner",
		hlog.OperationKey, "fit",
		hlog.AlgorithmKey, cfg.Algorithm,
		hlog.TaskNameKey, t.Name(),
		hlog.RowsKey, len(trainIdx),
		hlog.FeaturesKey, train.NumFeatures(),
		hlog.DurationMsKey, time.Since(start).Milliseconds(),
	)

	return &Fitted{cfg: cfg, features: train.FeatureNames(), learner: lrn}, nil
}

// Predict returns one prediction per index in testIdx, in testIdx order. The
// task must carry the same feature set and order the model was fit on;
// anything else is a PredictError.
func (r *Runner) Predict(fitted *Fitted, t *task.Task, testIdx []int) ([]float64, error) {
	if !sameSchema(fitted.features, t.FeatureNames()) {
		return nil, errors.NewPredictError(fitted.cfg.Algorithm, fitted.features, t.FeatureNames())
	}

	test, err := t.Filter(testIdx)
	if err != nil {
		return nil, err
	}

	pred, err := fitted.learner.Predict(test.X())
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(testIdx))
	for i := range out {
		out[i] = pred.At(i, 0)
	}
	return out, nil
}

func sameSchema(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
