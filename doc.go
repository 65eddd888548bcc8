// Package evalharness provides a small, reproducible model-evaluation harness
// for tabular predictive tasks: task definition, deterministic resampling,
// learner fitting, metric scoring, hyperparameter tuning and feature filtering.
//
// The harness is organised bottom-up:
//
//   - task: an immutable handle around a rectangular dataset with a designated
//     target column. Structural operations (Select, Filter, AppendColumn)
//     return new tasks and never mutate the receiver.
//   - resampling: seeded train/test and k-fold partitions of row indices.
//     The same (rows, k or fraction, seed) always yields the same partition.
//   - learner: a registry of named algorithms plus a Runner that fits a
//     configuration on a row subset and predicts on held-out rows.
//   - metrics: error-returning metric functions and a name registry used to
//     match metrics against the target's semantic type.
//   - evaluate: cross-validation, score aggregation, random-search tuning
//     under an evaluation budget, and univariate feature selection.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/snowdj/evalharness/evaluate"
//	    "github.com/snowdj/evalharness/learner"
//	    "github.com/snowdj/evalharness/resampling"
//	    "github.com/snowdj/evalharness/task"
//	)
//
//	func main() {
//	    tsk, err := task.New("demo", []task.Column{
//	        {Name: "x", Type: task.Numeric, Values: []float64{1, 2, 3, 4}},
//	        {Name: "y", Type: task.Numeric, Values: []float64{2, 4, 6, 8}},
//	    }, "y")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    splits, _ := resampling.KFold(tsk.NumRows(), 2, 42)
//	    ev := evaluate.New(learner.NewRegistry())
//	    scores, err := ev.CrossValidate(tsk, splits, learner.Config{Algorithm: "linreg"}, "mse")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    mean, std := evaluate.Aggregate(scores)
//	    fmt.Printf("MSE %.4f (+/- %.4f)\n", mean, std)
//	}
//
// # Packages
//
//   - task: task construction and structural operations
//   - resampling: seeded train/test and k-fold splits
//   - learner: algorithm registry, built-in learners, fit/predict runner
//   - metrics: evaluation metrics (MSE, RMSE, MAE, R², accuracy)
//   - evaluate: cross-validation, tuning, feature selection
//   - core/model: estimator interfaces and base types
//   - core/parallel: parallel processing utilities
//
// All errors are structured (pkg/errors) and carry the failing operation and
// offending value; the harness never retries or silently recovers.
package evalharness
