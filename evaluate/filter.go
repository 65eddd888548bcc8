package evaluate

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/snowdj/evalharness/pkg/errors"
	"github.com/snowdj/evalharness/task"
)

// FeatureScore is one feature's univariate relevance against the target.
type FeatureScore struct {
	Name  string
	Score float64
}

// RankFeatures scores every feature by the absolute Pearson correlation of
// its values with the target and returns the features in descending score
// order; ties keep the original column order. A feature whose correlation is
// undefined (zero variance) scores 0 and raises a DegenerateScoreWarning.
func (e *Evaluator) RankFeatures(t *task.Task) ([]FeatureScore, error) {
	target, err := t.Column(t.TargetName())
	if err != nil {
		return nil, err
	}

	names := t.FeatureNames()
	ranked := make([]FeatureScore, len(names))
	for i, name := range names {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		score := math.Abs(stat.Correlation(col.Values, target.Values, nil))
		if math.IsNaN(score) {
			errors.Warn(errors.NewDegenerateScoreWarning(name, "zero variance", 0))
			score = 0
		}
		ranked[i] = FeatureScore{Name: name, Score: score}
	}

	// stable sort keeps original column order on ties
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score > ranked[b].Score
	})
	return ranked, nil
}

// SelectFeatures returns the topN feature names ranked descending by
// univariate relevance. A ConfigError is returned when topN is not in
// [1, feature count].
func (e *Evaluator) SelectFeatures(t *task.Task, topN int) ([]string, error) {
	if topN < 1 {
		return nil, errors.NewConfigError("Evaluator.SelectFeatures", "topN", "must be at least 1", topN)
	}
	if topN > t.NumFeatures() {
		return nil, errors.NewConfigError("Evaluator.SelectFeatures", "topN", "exceeds available feature count", topN)
	}

	ranked, err := e.RankFeatures(t)
	if err != nil {
		return nil, err
	}

	names := make([]string, topN)
	for i := 0; i < topN; i++ {
		names[i] = ranked[i].Name
	}
	return names, nil
}
