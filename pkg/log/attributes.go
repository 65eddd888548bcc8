// Standard attribute keys for harness operations. Using these keys across
// packages keeps task shape, resampling and tuning information filterable in
// structured log output.

package log

// Task and operation context.
const (
	// TaskNameKey identifies the task being operated on.
	TaskNameKey = "task.name"

	// AlgorithmKey identifies the learner algorithm.
	// Examples: "linreg", "cart", "knn", "mean"
	AlgorithmKey = "learner.algorithm"

	// OperationKey specifies the harness operation being performed.
	// Standard values: "fit", "predict", "score", "cross_validate", "tune"
	OperationKey = "op"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "task", "resampling", "learner", "evaluate"
	ComponentKey = "component"
)

// Data shape.
const (
	// RowsKey is the number of rows in play for the operation.
	RowsKey = "data.rows"

	// FeaturesKey is the number of feature columns.
	FeaturesKey = "data.features"

	// TargetKey is the designated target column name.
	TargetKey = "data.target"
)

// Resampling and search.
const (
	// FoldsKey is the number of cross-validation folds.
	FoldsKey = "cv.folds"

	// SeedKey is the seed driving a deterministic partition or search.
	SeedKey = "seed"

	// MetricKey is the metric name used for scoring.
	MetricKey = "metric"

	// EvaluationsKey is the number of tuning evaluations performed.
	EvaluationsKey = "tune.evaluations"

	// BudgetKey is the declared tuning evaluation budget.
	BudgetKey = "tune.budget"
)

// Results.
const (
	// ScoreKey is a single scalar score.
	ScoreKey = "result.score"

	// MeanScoreKey is the aggregated mean score over folds.
	MeanScoreKey = "result.mean"

	// StdScoreKey is the sample standard deviation over folds.
	StdScoreKey = "result.std"

	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)
