// Package task defines the harness's notion of a predictive problem: a
// rectangular dataset bound to a designated target column.
//
// A Task is immutable through its exported API. Every structural operation
// (Select, Filter, AppendColumn, AppendGroupStat) returns a new Task that
// shares no backing storage with its receiver, so derived analyses can never
// silently alter the task they started from.
package task

import (
	"log/slog"

	"gonum.org/v1/gonum/mat"

	"github.com/snowdj/evalharness/pkg/errors"
	hlog "github.com/snowdj/evalharness/pkg/log"
)

// ColumnType is the semantic type of a column.
type ColumnType int

const (
	// Numeric is a continuous value column.
	Numeric ColumnType = iota
	// Categorical is an unordered factor column; values are level codes.
	Categorical
	// Ordinal is an ordered factor column; values are level codes whose
	// numeric order is meaningful.
	Ordinal
)

// String returns the name of the column type.
func (t ColumnType) String() string {
	switch t {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	case Ordinal:
		return "ordinal"
	default:
		return "unknown"
	}
}

// Column is one named, typed column of values. Categorical and ordinal
// columns store level codes in Values; Levels optionally maps codes back to
// level names.
type Column struct {
	Name   string
	Type   ColumnType
	Values []float64
	Levels []string
}

func (c Column) clone() Column {
	out := Column{Name: c.Name, Type: c.Type}
	out.Values = make([]float64, len(c.Values))
	copy(out.Values, c.Values)
	if c.Levels != nil {
		out.Levels = make([]string, len(c.Levels))
		copy(out.Levels, c.Levels)
	}
	return out
}

// Task is an immutable handle around a rectangular dataset with a designated
// target column. The target is always present and never part of the feature
// list.
type Task struct {
	name   string
	cols   []Column
	index  map[string]int
	target string
	nrows  int
}

// New creates a task from columns and a target column name. It fails with a
// SchemaError if the target is not among the columns, any column length
// differs, a column name repeats, or the data has zero rows.
func New(name string, cols []Column, target string) (*Task, error) {
	if len(cols) == 0 {
		return nil, errors.NewSchemaError("task.New", "", "no columns")
	}

	nrows := len(cols[0].Values)
	if nrows == 0 {
		return nil, errors.NewSchemaError("task.New", cols[0].Name, "zero rows")
	}

	index := make(map[string]int, len(cols))
	owned := make([]Column, len(cols))
	for i, c := range cols {
		if _, dup := index[c.Name]; dup {
			return nil, errors.NewSchemaError("task.New", c.Name, "duplicate column name")
		}
		if len(c.Values) != nrows {
			return nil, errors.NewSchemaError("task.New", c.Name, "column length differs from first column")
		}
		index[c.Name] = i
		owned[i] = c.clone()
	}

	if _, ok := index[target]; !ok {
		return nil, errors.NewSchemaError("task.New", target, "target column not present")
	}

	t := &Task{name: name, cols: owned, index: index, target: target, nrows: nrows}
	slog.Debug("task created",
		hlog.ComponentKey, "task",
		hlog.TaskNameKey, name,
		hlog.RowsKey, t.nrows,
		hlog.FeaturesKey, t.NumFeatures(),
		hlog.TargetKey, target,
	)
	return t, nil
}

// Name returns the task's name.
func (t *Task) Name() string { return t.name }

// NumRows returns the number of rows.
func (t *Task) NumRows() int { return t.nrows }

// NumFeatures returns the number of feature columns (target excluded).
func (t *Task) NumFeatures() int { return len(t.cols) - 1 }

// TargetName returns the designated target column name.
func (t *Task) TargetName() string { return t.target }

// TargetType returns the semantic type of the target column.
func (t *Task) TargetType() ColumnType {
	return t.cols[t.index[t.target]].Type
}

// FeatureNames returns the ordered feature names, target excluded.
func (t *Task) FeatureNames() []string {
	names := make([]string, 0, len(t.cols)-1)
	for _, c := range t.cols {
		if c.Name == t.target {
			continue
		}
		names = append(names, c.Name)
	}
	return names
}

// ColumnType returns the semantic type of the named column.
func (t *Task) ColumnType(name string) (ColumnType, error) {
	i, ok := t.index[name]
	if !ok {
		return 0, errors.NewSchemaError("task.ColumnType", name, "unknown column")
	}
	return t.cols[i].Type, nil
}

// Column returns an owned copy of the named column.
func (t *Task) Column(name string) (Column, error) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, errors.NewSchemaError("task.Column", name, "unknown column")
	}
	return t.cols[i].clone(), nil
}

// Clone returns an independent deep copy. Mutating the clone through any
// operation leaves the original untouched.
func (t *Task) Clone() *Task {
	cols := make([]Column, len(t.cols))
	for i, c := range t.cols {
		cols[i] = c.clone()
	}
	index := make(map[string]int, len(t.index))
	for k, v := range t.index {
		index[k] = v
	}
	return &Task{name: t.name, cols: cols, index: index, target: t.target, nrows: t.nrows}
}

// Select returns a new task restricted to the given ordered feature subset.
// The target column is carried over implicitly. It fails with a SchemaError
// if a name is unknown or names the target.
func (t *Task) Select(features []string) (*Task, error) {
	if len(features) == 0 {
		return nil, errors.NewSchemaError("task.Select", "", "empty feature list")
	}

	cols := make([]Column, 0, len(features)+1)
	seen := make(map[string]bool, len(features))
	for _, name := range features {
		if name == t.target {
			return nil, errors.NewSchemaError("task.Select", name, "cannot select the target column as a feature")
		}
		i, ok := t.index[name]
		if !ok {
			return nil, errors.NewSchemaError("task.Select", name, "unknown column")
		}
		if seen[name] {
			return nil, errors.NewSchemaError("task.Select", name, "duplicate feature name")
		}
		seen[name] = true
		cols = append(cols, t.cols[i].clone())
	}
	cols = append(cols, t.cols[t.index[t.target]].clone())

	return newUnchecked(t.name, cols, t.target, t.nrows), nil
}

// Filter returns a new task restricted to the given ordered row subset. Rows
// may repeat. It fails with a SchemaError on an out-of-range index.
func (t *Task) Filter(rows []int) (*Task, error) {
	if len(rows) == 0 {
		return nil, errors.NewSchemaError("task.Filter", "", "empty row selection")
	}
	for _, r := range rows {
		if r < 0 || r >= t.nrows {
			return nil, errors.NewSchemaError("task.Filter", "", "row index out of range")
		}
	}

	cols := make([]Column, len(t.cols))
	for i, c := range t.cols {
		vals := make([]float64, len(rows))
		for j, r := range rows {
			vals[j] = c.Values[r]
		}
		nc := Column{Name: c.Name, Type: c.Type, Values: vals}
		if c.Levels != nil {
			nc.Levels = make([]string, len(c.Levels))
			copy(nc.Levels, c.Levels)
		}
		cols[i] = nc
	}

	return newUnchecked(t.name, cols, t.target, len(rows)), nil
}

// AppendColumn returns a new task with an engineered column appended to the
// feature list. It fails with a SchemaError on a length mismatch or a
// duplicate name.
func (t *Task) AppendColumn(col Column) (*Task, error) {
	if _, dup := t.index[col.Name]; dup {
		return nil, errors.NewSchemaError("task.AppendColumn", col.Name, "duplicate column name")
	}
	if len(col.Values) != t.nrows {
		return nil, errors.NewSchemaError("task.AppendColumn", col.Name, "column length differs from task rows")
	}

	nt := t.Clone()
	nt.index[col.Name] = len(nt.cols)
	nt.cols = append(nt.cols, col.clone())
	return nt, nil
}

// AppendGroupStat groups the numeric column src by the categorical (or
// ordinal) column by, computes one statistic per level over all rows of that
// level, and joins the per-level value back onto every row as a new feature
// named name.
//
// Each level maps to exactly one value because the statistic is computed over
// the complete group, so no deduplication or tie-break is needed.
func (t *Task) AppendGroupStat(name, by, src string, stat func([]float64) float64) (*Task, error) {
	bi, ok := t.index[by]
	if !ok {
		return nil, errors.NewSchemaError("task.AppendGroupStat", by, "unknown column")
	}
	if t.cols[bi].Type == Numeric {
		return nil, errors.NewSchemaError("task.AppendGroupStat", by, "grouping column must be categorical or ordinal")
	}
	si, ok := t.index[src]
	if !ok {
		return nil, errors.NewSchemaError("task.AppendGroupStat", src, "unknown column")
	}
	if t.cols[si].Type != Numeric {
		return nil, errors.NewSchemaError("task.AppendGroupStat", src, "source column must be numeric")
	}

	groups := make(map[float64][]float64)
	for r := 0; r < t.nrows; r++ {
		key := t.cols[bi].Values[r]
		groups[key] = append(groups[key], t.cols[si].Values[r])
	}
	perKey := make(map[float64]float64, len(groups))
	for key, vals := range groups {
		perKey[key] = stat(vals)
	}

	values := make([]float64, t.nrows)
	for r := 0; r < t.nrows; r++ {
		values[r] = perKey[t.cols[bi].Values[r]]
	}
	return t.AppendColumn(Column{Name: name, Type: Numeric, Values: values})
}

// X returns the feature design matrix, one column per feature in feature
// order. The matrix is freshly allocated on each call.
func (t *Task) X() *mat.Dense {
	nfeat := t.NumFeatures()
	X := mat.NewDense(t.nrows, nfeat, nil)
	j := 0
	for _, c := range t.cols {
		if c.Name == t.target {
			continue
		}
		for i := 0; i < t.nrows; i++ {
			X.Set(i, j, c.Values[i])
		}
		j++
	}
	return X
}

// Y returns the target column as a freshly allocated vector.
func (t *Task) Y() *mat.VecDense {
	y := mat.NewVecDense(t.nrows, nil)
	vals := t.cols[t.index[t.target]].Values
	for i := 0; i < t.nrows; i++ {
		y.SetVec(i, vals[i])
	}
	return y
}

// newUnchecked assembles a task from columns already validated and owned by
// the caller.
func newUnchecked(name string, cols []Column, target string, nrows int) *Task {
	index := make(map[string]int, len(cols))
	for i, c := range cols {
		index[c.Name] = i
	}
	return &Task{name: name, cols: cols, index: index, target: target, nrows: nrows}
}
