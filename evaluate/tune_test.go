package evaluate

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowdj/evalharness/learner"
	"github.com/snowdj/evalharness/pkg/errors"
	"github.com/snowdj/evalharness/resampling"
)

// countingSearch wraps RandomSearch and counts proposals.
type countingSearch struct {
	inner RandomSearch
	calls int
}

func (c *countingSearch) Next(r *rand.Rand, space Space) learner.Config {
	c.calls++
	return c.inner.Next(r, space)
}

func TestTune(t *testing.T) {
	ev := New(learner.NewRegistry())
	tsk := syntheticTask(t)
	splits, err := resampling.KFold(tsk.NumRows(), 3, 42)
	require.NoError(t, err)

	space := Space{
		Algorithm: "knn",
		Ranges: []learner.ParamSpec{
			{Name: "k", Min: 1, Max: 10, Integer: true},
		},
		Seed: 42,
	}

	t.Run("budget bounds evaluations exactly", func(t *testing.T) {
		strategy := &countingSearch{}
		result, err := ev.TuneWith(tsk, splits, space, "mse", 6, strategy)
		require.NoError(t, err)

		assert.Equal(t, 6, result.Evaluations)
		assert.Equal(t, 6, strategy.calls)
	})

	t.Run("best config stays inside declared ranges", func(t *testing.T) {
		result, err := ev.Tune(tsk, splits, space, "mse", 8)
		require.NoError(t, err)

		assert.Equal(t, "knn", result.Best.Algorithm)
		k, ok := result.Best.Params["k"]
		require.True(t, ok)
		assert.GreaterOrEqual(t, k, 1.0)
		assert.LessOrEqual(t, k, 10.0)
		assert.Equal(t, k, float64(int(k)), "integer param sampled as integer")
	})

	t.Run("deterministic per seed", func(t *testing.T) {
		a, err := ev.Tune(tsk, splits, space, "mse", 5)
		require.NoError(t, err)
		b, err := ev.Tune(tsk, splits, space, "mse", 5)
		require.NoError(t, err)

		assert.Equal(t, a.Best, b.Best)
		assert.Equal(t, a.Score, b.Score)
	})

	t.Run("higher-is-better metric maximizes", func(t *testing.T) {
		cartSpace := Space{
			Algorithm: "cart",
			Ranges: []learner.ParamSpec{
				{Name: "max_depth", Min: 1, Max: 8, Integer: true},
			},
			Seed: 7,
		}
		result, err := ev.Tune(tsk, splits, cartSpace, "r2", 5)
		require.NoError(t, err)
		// a depth-tuned tree on a near-linear target should beat R² of 0.5
		assert.Greater(t, result.Score, 0.5)
	})

	t.Run("zero budget rejected", func(t *testing.T) {
		_, err := ev.Tune(tsk, splits, space, "mse", 0)
		require.Error(t, err)
		var cfgErr *errors.ConfigError
		assert.True(t, errors.As(err, &cfgErr))
	})

	t.Run("unknown algorithm rejected", func(t *testing.T) {
		_, err := ev.Tune(tsk, splits, Space{Algorithm: "boost", Ranges: space.Ranges, Seed: 1}, "mse", 3)
		require.Error(t, err)
	})

	t.Run("unrecognized ranged parameter rejected", func(t *testing.T) {
		bad := Space{
			Algorithm: "knn",
			Ranges: []learner.ParamSpec{
				{Name: "neighbours", Min: 1, Max: 10, Integer: true},
			},
			Seed: 1,
		}
		_, err := ev.Tune(tsk, splits, bad, "mse", 3)
		require.Error(t, err)
		var cfgErr *errors.ConfigError
		assert.True(t, errors.As(err, &cfgErr))
	})

	t.Run("range outside declared bounds rejected", func(t *testing.T) {
		bad := Space{
			Algorithm: "knn",
			Ranges: []learner.ParamSpec{
				{Name: "k", Min: 0, Max: 10, Integer: true},
			},
			Seed: 1,
		}
		_, err := ev.Tune(tsk, splits, bad, "mse", 3)
		require.Error(t, err)
	})
}
