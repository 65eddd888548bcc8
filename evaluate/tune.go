package evaluate

import (
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/snowdj/evalharness/learner"
	"github.com/snowdj/evalharness/pkg/errors"
	hlog "github.com/snowdj/evalharness/pkg/log"
	"github.com/snowdj/evalharness/resampling"
	"github.com/snowdj/evalharness/task"
)

// Space is a hyperparameter search space: an algorithm plus bounded ranges
// for a subset of its recognized parameters. Seed drives the sampling.
type Space struct {
	Algorithm string
	Ranges    []learner.ParamSpec
	Seed      uint64
}

// SearchStrategy proposes the next configuration to evaluate. Strategies are
// pluggable; RandomSearch is the built-in minimum.
type SearchStrategy interface {
	Next(r *rand.Rand, space Space) learner.Config
}

// RandomSearch samples every ranged parameter independently and uniformly.
type RandomSearch struct{}

// Next samples one configuration inside the declared ranges. Integer
// parameters are sampled over the closed integer interval.
func (RandomSearch) Next(r *rand.Rand, space Space) learner.Config {
	params := make(map[string]float64, len(space.Ranges))
	for _, spec := range space.Ranges {
		if spec.Integer {
			lo := int64(spec.Min)
			hi := int64(spec.Max)
			params[spec.Name] = float64(lo + r.Int64N(hi-lo+1))
		} else {
			params[spec.Name] = spec.Min + r.Float64()*(spec.Max-spec.Min)
		}
	}
	return learner.Config{Algorithm: space.Algorithm, Params: params}
}

// TuneResult is the outcome of a search: the best configuration found, its
// cross-validated mean score, and how many evaluations were spent.
type TuneResult struct {
	Best        learner.Config
	Score       float64
	Evaluations int
}

// scoreTolerance bounds the floating-point band within which two mean scores
// count as tied; the first-evaluated configuration wins a tie.
const scoreTolerance = 1e-12

// Tune searches the space for the configuration with the best cross-validated
// score, spending at most budget evaluations. Direction follows the metric:
// loss metrics minimize, score metrics maximize. The search stops issuing
// evaluations once the budget is spent and returns the best found so far; a
// fitting failure during any evaluation aborts the search.
func (e *Evaluator) Tune(t *task.Task, splits []resampling.Split, space Space, metric string, budget int) (TuneResult, error) {
	return e.TuneWith(t, splits, space, metric, budget, RandomSearch{})
}

// TuneWith runs Tune under a caller-chosen search strategy.
func (e *Evaluator) TuneWith(t *task.Task, splits []resampling.Split, space Space, metric string, budget int, strategy SearchStrategy) (TuneResult, error) {
	if budget < 1 {
		return TuneResult{}, errors.NewConfigError("Evaluator.Tune", "budget", "must be at least 1", budget)
	}
	if err := e.validateSpace(space); err != nil {
		return TuneResult{}, err
	}

	m, err := resolveMetric(metric, t.TargetType())
	if err != nil {
		return TuneResult{}, err
	}

	r := rand.New(rand.NewPCG(space.Seed, space.Seed))

	result := TuneResult{Score: math.Inf(1)}
	if !m.LowerIsBetter {
		result.Score = math.Inf(-1)
	}

	for i := 0; i < budget; i++ {
		cfg := strategy.Next(r, space)

		scores, err := e.CrossValidate(t, splits, cfg, metric)
		if err != nil {
			return TuneResult{}, errors.Wrapf(err, "evaluation %d", i)
		}
		mean, _ := Aggregate(scores)
		result.Evaluations++

		if better(mean, result.Score, m.LowerIsBetter) {
			result.Best = cfg
			result.Score = mean
		}
	}

	slog.Info("tuning finished",
		hlog.ComponentKey, "evaluate",
		hlog.OperationKey, "tune",
		hlog.TaskNameKey, t.Name(),
		hlog.AlgorithmKey, space.Algorithm,
		hlog.MetricKey, metric,
		hlog.SeedKey, space.Seed,
		hlog.BudgetKey, budget,
		hlog.EvaluationsKey, result.Evaluations,
		hlog.ScoreKey, result.Score,
	)

	return result, nil
}

// better reports whether candidate improves on incumbent by more than the tie
// tolerance, in the metric's direction.
func better(candidate, incumbent float64, lowerIsBetter bool) bool {
	if lowerIsBetter {
		return candidate < incumbent-scoreTolerance
	}
	return candidate > incumbent+scoreTolerance
}

// validateSpace rejects a space whose algorithm is unregistered or whose
// ranges name unrecognized parameters or invert their bounds. These are
// configuration errors, caught before any evaluation runs.
func (e *Evaluator) validateSpace(space Space) error {
	reg := e.runner.Registry()
	if !reg.Has(space.Algorithm) {
		return errors.NewConfigError("Evaluator.Tune", "algorithm", "unknown algorithm", space.Algorithm)
	}
	if len(space.Ranges) == 0 {
		return errors.NewConfigError("Evaluator.Tune", "ranges", "empty search space", 0)
	}

	recognized := reg.Specs(space.Algorithm)
	for _, rng := range space.Ranges {
		decl, found := findDeclared(recognized, rng.Name)
		if !found {
			return errors.NewConfigError("Evaluator.Tune", rng.Name, "not a recognized parameter of "+space.Algorithm, rng.Name)
		}
		if rng.Min > rng.Max {
			return errors.NewConfigError("Evaluator.Tune", rng.Name, "range minimum exceeds maximum", rng.Min)
		}
		if rng.Min < decl.Min || rng.Max > decl.Max {
			return errors.NewConfigError("Evaluator.Tune", rng.Name, "range exceeds the parameter's declared bounds", rng)
		}
	}
	return nil
}

func findDeclared(specs []learner.ParamSpec, name string) (learner.ParamSpec, bool) {
	for _, s := range specs {
		if s.Name == name {
			return s, true
		}
	}
	return learner.ParamSpec{}, false
}
