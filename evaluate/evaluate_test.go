package evaluate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowdj/evalharness/learner"
	"github.com/snowdj/evalharness/pkg/errors"
	"github.com/snowdj/evalharness/resampling"
	"github.com/snowdj/evalharness/task"
)

// syntheticTask builds a deterministic 150-row regression task with
// y = 2*x1 + 3*x2 + small periodic residue.
func syntheticTask(t *testing.T) *task.Task {
	t.Helper()

	n := 150
	x1 := make([]float64, n)
	x2 := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x1[i] = float64(i % 25)
		x2[i] = float64((i * 7) % 13)
		y[i] = 2*x1[i] + 3*x2[i] + 0.01*float64(i%3)
	}

	tsk, err := task.New("synthetic", []task.Column{
		{Name: "x1", Type: task.Numeric, Values: x1},
		{Name: "x2", Type: task.Numeric, Values: x2},
		{Name: "y", Type: task.Numeric, Values: y},
	}, "y")
	require.NoError(t, err)
	return tsk
}

func constantTask(t *testing.T) *task.Task {
	t.Helper()

	n := 30
	x := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = float64(i)
		y[i] = 42.0
	}
	tsk, err := task.New("constant", []task.Column{
		{Name: "x", Type: task.Numeric, Values: x},
		{Name: "y", Type: task.Numeric, Values: y},
	}, "y")
	require.NoError(t, err)
	return tsk
}

func TestScore(t *testing.T) {
	ev := New(learner.NewRegistry())

	t.Run("mse on regression target", func(t *testing.T) {
		got, err := ev.Score([]float64{1, 2, 3}, []float64{1, 2, 3}, "mse", task.Numeric)
		require.NoError(t, err)
		assert.Equal(t, 0.0, got)
	})

	t.Run("accuracy on continuous target rejected", func(t *testing.T) {
		_, err := ev.Score([]float64{0, 1}, []float64{0, 1}, "accuracy", task.Numeric)
		require.Error(t, err)
		var metricErr *errors.MetricError
		assert.True(t, errors.As(err, &metricErr))
	})

	t.Run("mse on categorical target rejected", func(t *testing.T) {
		_, err := ev.Score([]float64{0, 1}, []float64{0, 1}, "mse", task.Categorical)
		require.Error(t, err)
	})

	t.Run("unknown metric", func(t *testing.T) {
		_, err := ev.Score([]float64{0}, []float64{0}, "auprc", task.Numeric)
		require.Error(t, err)
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := ev.Score([]float64{0, 1}, []float64{0}, "mse", task.Numeric)
		require.Error(t, err)
	})
}

func TestCrossValidate(t *testing.T) {
	ev := New(learner.NewRegistry())

	t.Run("one score per split in order", func(t *testing.T) {
		tsk := syntheticTask(t)
		splits, err := resampling.KFold(tsk.NumRows(), 5, 42)
		require.NoError(t, err)

		scores, err := ev.CrossValidate(tsk, splits, learner.Config{Algorithm: "linreg"}, "mse")
		require.NoError(t, err)
		require.Len(t, scores, 5)
		for i, s := range scores {
			assert.False(t, math.IsNaN(s), "fold %d", i)
			assert.GreaterOrEqual(t, s, 0.0, "fold %d", i)
		}
	})

	t.Run("deterministic given same splits", func(t *testing.T) {
		tsk := syntheticTask(t)
		splits, err := resampling.KFold(tsk.NumRows(), 3, 7)
		require.NoError(t, err)

		a, err := ev.CrossValidate(tsk, splits, learner.Config{Algorithm: "cart"}, "rmse")
		require.NoError(t, err)
		b, err := ev.CrossValidate(tsk, splits, learner.Config{Algorithm: "cart"}, "rmse")
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("constant target scores zero with mean learner", func(t *testing.T) {
		tsk := constantTask(t)
		splits, err := resampling.KFold(tsk.NumRows(), 3, 1)
		require.NoError(t, err)

		scores, err := ev.CrossValidate(tsk, splits, learner.Config{Algorithm: "mean"}, "mse")
		require.NoError(t, err)
		for i, s := range scores {
			assert.InDelta(t, 0.0, s, 1e-12, "fold %d", i)
		}
	})

	t.Run("fold failure aborts the call", func(t *testing.T) {
		tsk := syntheticTask(t)
		// duplicate feature makes linreg's design matrix singular in every fold
		dup, err := tsk.AppendColumn(task.Column{Name: "x1_copy", Type: task.Numeric, Values: mustColumn(t, tsk, "x1")})
		require.NoError(t, err)

		splits, err := resampling.KFold(dup.NumRows(), 3, 1)
		require.NoError(t, err)

		_, err = ev.CrossValidate(dup, splits, learner.Config{Algorithm: "linreg"}, "mse")
		require.Error(t, err)
		var fitErr *errors.FitError
		assert.True(t, errors.As(err, &fitErr))
	})

	t.Run("metric mismatch caught before any fitting", func(t *testing.T) {
		tsk := syntheticTask(t)
		splits, err := resampling.KFold(tsk.NumRows(), 3, 1)
		require.NoError(t, err)

		_, err = ev.CrossValidate(tsk, splits, learner.Config{Algorithm: "mean"}, "accuracy")
		require.Error(t, err)
		var metricErr *errors.MetricError
		assert.True(t, errors.As(err, &metricErr))
	})
}

func TestAggregate(t *testing.T) {
	t.Run("mean and sample stddev", func(t *testing.T) {
		mean, std := Aggregate([]float64{0.8, 0.85, 0.75, 0.9, 0.7})
		assert.InDelta(t, 0.8, mean, 1e-10)
		assert.InDelta(t, 0.07905694150420949, std, 1e-10)
	})

	t.Run("single score", func(t *testing.T) {
		mean, std := Aggregate([]float64{0.5})
		assert.Equal(t, 0.5, mean)
		assert.Equal(t, 0.0, std)
	})

	t.Run("empty", func(t *testing.T) {
		mean, std := Aggregate(nil)
		assert.Equal(t, 0.0, mean)
		assert.Equal(t, 0.0, std)
	})
}

func TestEndToEndHoldout(t *testing.T) {
	// 150-row task, 0.8/0.2 holdout at seed 42, fit, score on held-out rows;
	// the same seed must reproduce the identical score.
	tsk := syntheticTask(t)
	ev := New(learner.NewRegistry())

	run := func() float64 {
		split, err := resampling.TrainTestSplit(tsk.NumRows(), 0.8, 42)
		require.NoError(t, err)
		assert.Equal(t, 120, len(split.Train))
		assert.Equal(t, 30, len(split.Test))

		fitted, err := ev.Runner().Fit(tsk, split.Train, learner.Config{Algorithm: "linreg"})
		require.NoError(t, err)

		pred, err := ev.Runner().Predict(fitted, tsk, split.Test)
		require.NoError(t, err)

		target, err := tsk.Column(tsk.TargetName())
		require.NoError(t, err)
		actual := make([]float64, len(split.Test))
		for i, row := range split.Test {
			actual[i] = target.Values[row]
		}

		score, err := ev.Score(pred, actual, "mse", tsk.TargetType())
		require.NoError(t, err)
		return score
	}

	first := run()
	assert.False(t, math.IsNaN(first))
	assert.False(t, math.IsInf(first, 0))
	assert.GreaterOrEqual(t, first, 0.0)

	second := run()
	assert.Equal(t, first, second)
}

func mustColumn(t *testing.T, tsk *task.Task, name string) []float64 {
	t.Helper()
	col, err := tsk.Column(name)
	require.NoError(t, err)
	return col.Values
}
