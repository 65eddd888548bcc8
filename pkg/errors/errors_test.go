package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestSchemaError(t *testing.T) {
	err := NewSchemaError("task.Select", "sqft", "unknown column")

	want := "evalharness: task.Select: column 'sqft': unknown column"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	formatted := fmt.Sprintf("%+v", err)
	if !strings.Contains(formatted, "errors_test.go") {
		t.Error("expected stack trace to contain test file name")
	}

	var schemaErr *SchemaError
	if !As(err, &schemaErr) {
		t.Error("error should be castable to *SchemaError")
	}
}

func TestConfigError(t *testing.T) {
	err := NewConfigError("resampling.KFold", "k", "must be at least 2", 1)

	if !strings.Contains(err.Error(), "'k'") || !strings.Contains(err.Error(), "got: 1") {
		t.Errorf("Error() = %v, want param and value in message", err.Error())
	}

	var cfgErr *ConfigError
	if !As(err, &cfgErr) {
		t.Error("error should be castable to *ConfigError")
	}
	if cfgErr.Value != 1 {
		t.Errorf("Value = %v, want 1", cfgErr.Value)
	}
}

func TestFitErrorWrapsCause(t *testing.T) {
	err := NewFitError("Runner.Fit", "linreg", ErrSingularMatrix)

	if !Is(err, ErrSingularMatrix) {
		t.Error("FitError should wrap its cause")
	}

	var fitErr *FitError
	if !As(err, &fitErr) {
		t.Error("error should be castable to *FitError")
	}
	if fitErr.Algorithm != "linreg" {
		t.Errorf("Algorithm = %v, want linreg", fitErr.Algorithm)
	}
}

func TestPredictError(t *testing.T) {
	err := NewPredictError("cart", []string{"a", "b"}, []string{"b", "a"})

	msg := err.Error()
	if !strings.Contains(msg, "cart") || !strings.Contains(msg, "[a b]") {
		t.Errorf("Error() = %v, want schema detail", msg)
	}
}

func TestMetricError(t *testing.T) {
	err := NewMetricError("accuracy", "numeric", "metric applies to classification targets")

	var metricErr *MetricError
	if !As(err, &metricErr) {
		t.Error("error should be castable to *MetricError")
	}
	if metricErr.TargetType != "numeric" {
		t.Errorf("TargetType = %v, want numeric", metricErr.TargetType)
	}
}

func TestWarnHandler(t *testing.T) {
	var captured error
	SetWarningHandler(func(w error) { captured = w })
	defer SetWarningHandler(nil)

	warning := NewDegenerateScoreWarning("flat", "zero variance", 0)
	Warn(warning)

	if captured == nil {
		t.Fatal("warning handler not invoked")
	}
	if !strings.Contains(captured.Error(), "flat") {
		t.Errorf("warning = %v, want feature name", captured)
	}
}

func TestRecover(t *testing.T) {
	boom := func() (err error) {
		defer Recover(&err, "boom")
		panic("unexpected")
	}

	err := boom()
	if err == nil {
		t.Fatal("expected recovered error")
	}

	var panicErr *PanicError
	if !As(err, &panicErr) {
		t.Fatal("error should be castable to *PanicError")
	}
	if panicErr.Operation != "boom" {
		t.Errorf("Operation = %v, want boom", panicErr.Operation)
	}
	if panicErr.StackTrace == "" {
		t.Error("expected a stack trace")
	}
}

func TestCheckFinite(t *testing.T) {
	if err := CheckFinite("op", []float64{1, 2, 3}); err != nil {
		t.Errorf("CheckFinite() = %v, want nil", err)
	}
	if err := CheckFinite("op", []float64{1, 2, 0.0 / zero()}); err == nil {
		t.Error("CheckFinite() expected error for NaN")
	}
}

func zero() float64 { return 0 }
