// Package errors provides structured error handling for the evaluation
// harness. Every error kind the harness can surface has a typed struct that
// carries the failing operation and the offending value, so a caller can
// reproduce the failing call. Errors are created with stack traces via
// cockroachdb/errors and marshal themselves into zerolog events.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Warning handling
//
// ===========================================================================

var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		log.Printf("evalharness-warning: %v\n", w)
	}
	// zerolog sink, installed lazily to avoid an import cycle with pkg/log.
	zerologWarnFunc func(warning error)
)

// SetWarningHandler sets the harness-wide handler for non-fatal warnings,
// such as a degenerate filter score on a zero-variance feature.
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc installs a zerolog-backed warning sink.
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn emits a warning through the zerolog sink when one is installed,
// falling back to the plain handler otherwise.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}
	if warningHandler != nil {
		warningHandler(w)
	}
}

// DegenerateScoreWarning is raised when a relevance score cannot be computed
// for a feature (for example zero variance) and a fallback value is used.
type DegenerateScoreWarning struct {
	Feature   string
	Condition string
	Result    float64
}

func (w *DegenerateScoreWarning) Error() string {
	return fmt.Sprintf("relevance score for feature '%s' is ill-defined (%s); using %g", w.Feature, w.Condition, w.Result)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *DegenerateScoreWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("feature", w.Feature).
		Str("condition", w.Condition).
		Float64("result", w.Result).
		Str("type", "DegenerateScoreWarning")
}

// NewDegenerateScoreWarning creates a new DegenerateScoreWarning.
func NewDegenerateScoreWarning(feature, condition string, result float64) *DegenerateScoreWarning {
	return &DegenerateScoreWarning{Feature: feature, Condition: condition, Result: result}
}

// ===========================================================================
//
//	Harness error kinds
//
// ===========================================================================

// SchemaError reports a malformed task construction or structural mutation:
// missing target column, unknown feature name, ragged columns, out-of-range
// row index, duplicate column name.
type SchemaError struct {
	Op     string
	Column string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("evalharness: %s: column '%s': %s", e.Op, e.Column, e.Reason)
	}
	return fmt.Sprintf("evalharness: %s: %s", e.Op, e.Reason)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *SchemaError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("column", e.Column).
		Str("reason", e.Reason).
		Str("type", "SchemaError")
}

// NewSchemaError creates a new SchemaError with a stack trace.
func NewSchemaError(op, column, reason string) error {
	err := &SchemaError{Op: op, Column: column, Reason: reason}
	return errors.WithStack(err)
}

// ConfigError reports an invalid split, learner or tuning parameter: a split
// fraction outside (0,1), k < 2, an unknown hyperparameter name, a value
// outside its declared range.
type ConfigError struct {
	Op     string
	Param  string
	Reason string
	Value  interface{}
}

func (e *ConfigError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("evalharness: %s: invalid parameter '%s': %s (got: %v)", e.Op, e.Param, e.Reason, e.Value)
	}
	return fmt.Sprintf("evalharness: %s: %s (got: %v)", e.Op, e.Reason, e.Value)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *ConfigError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("param", e.Param).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ConfigError")
}

// NewConfigError creates a new ConfigError with a stack trace.
func NewConfigError(op, param, reason string, value interface{}) error {
	err := &ConfigError{Op: op, Param: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// FitError reports an algorithm fitting failure: an unknown algorithm name or
// an algorithm-specific numerical failure such as a singular design matrix.
// The underlying cause, when any, is preserved via Unwrap.
type FitError struct {
	Algorithm string
	Op        string
	Err       error
}

func (e *FitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("evalharness: %s: fitting '%s' failed: %v", e.Op, e.Algorithm, e.Err)
	}
	return fmt.Sprintf("evalharness: %s: fitting '%s' failed", e.Op, e.Algorithm)
}

func (e *FitError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *FitError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("algorithm", e.Algorithm).
		AnErr("cause", e.Err).
		Str("type", "FitError")
}

// NewFitError creates a new FitError with a stack trace.
func NewFitError(op, algorithm string, err error) error {
	fitErr := &FitError{Op: op, Algorithm: algorithm, Err: err}
	return errors.WithStack(fitErr)
}

// PredictError reports a feature-schema mismatch between the task a model was
// fit on and the task it is asked to predict on.
type PredictError struct {
	Algorithm string
	Expected  []string
	Got       []string
}

func (e *PredictError) Error() string {
	return fmt.Sprintf("evalharness: predict: model '%s' was fit on features %v, got %v", e.Algorithm, e.Expected, e.Got)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *PredictError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("algorithm", e.Algorithm).
		Strs("expected_features", e.Expected).
		Strs("got_features", e.Got).
		Str("type", "PredictError")
}

// NewPredictError creates a new PredictError with a stack trace.
func NewPredictError(algorithm string, expected, got []string) error {
	err := &PredictError{Algorithm: algorithm, Expected: expected, Got: got}
	return errors.WithStack(err)
}

// MetricError reports a metric applied to an incompatible target type, such
// as classification accuracy on a continuous target.
type MetricError struct {
	Metric     string
	TargetType string
	Reason     string
}

func (e *MetricError) Error() string {
	return fmt.Sprintf("evalharness: metric '%s' incompatible with %s target: %s", e.Metric, e.TargetType, e.Reason)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *MetricError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("metric", e.Metric).
		Str("target_type", e.TargetType).
		Str("reason", e.Reason).
		Str("type", "MetricError")
}

// NewMetricError creates a new MetricError with a stack trace.
func NewMetricError(metric, targetType, reason string) error {
	err := &MetricError{Metric: metric, TargetType: targetType, Reason: reason}
	return errors.WithStack(err)
}

// NotFittedError reports Predict being called on a learner that has not been
// fit yet.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("evalharness: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a new NotFittedError with a stack trace.
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError reports an input whose dimensions differ from what an
// operation expects.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("evalharness: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError creates a new DimensionError with a stack trace.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValueError reports an argument whose value is invalid for an operation,
// for example an empty prediction vector passed to a metric.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("evalharness: %s: %s", e.Op, e.Message)
}

// NewValueError creates a new ValueError with a stack trace.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an existing error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an existing error with a format string.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates an error with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Common error values
//
// ===========================================================================

var (
	// ErrEmptyData is returned when empty data is passed.
	ErrEmptyData = New("empty data")

	// ErrSingularMatrix is returned when a design matrix is singular.
	ErrSingularMatrix = New("singular matrix")
)
