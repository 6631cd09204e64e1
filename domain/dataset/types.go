package dataset

import (
	"fmt"
	"math"
	"strconv"

	"py50/domain/core"
)

// ColumnKind tells whether a column holds numbers or labels.
type ColumnKind string

const (
	KindNumeric     ColumnKind = "numeric"
	KindCategorical ColumnKind = "categorical"
)

// Column is a single named column. Exactly one of Floats or Strings is set,
// according to Kind. Missing numeric values are NaN; missing labels are "".
type Column struct {
	Name    string
	Kind    ColumnKind
	Floats  []float64
	Strings []string
}

// Len returns the number of values in the column
func (c *Column) Len() int {
	if c.Kind == KindNumeric {
		return len(c.Floats)
	}
	return len(c.Strings)
}

// Label returns the string form of row i. Numeric values use the shortest
// representation so that 1 and 1.0 both read "1".
func (c *Column) Label(i int) string {
	if c.Kind == KindCategorical {
		return c.Strings[i]
	}
	v := c.Floats[i]
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// DataFrame is an ordered set of equally long named columns.
// Statistics and plotting code only read from it.
type DataFrame struct {
	order   []string
	columns map[string]*Column
	rows    int
}

// NewDataFrame creates an empty frame
func NewDataFrame() *DataFrame {
	return &DataFrame{columns: make(map[string]*Column)}
}

// AddFloatColumn appends a numeric column. The values are copied.
func (df *DataFrame) AddFloatColumn(name string, values []float64) error {
	cp := make([]float64, len(values))
	copy(cp, values)
	return df.add(&Column{Name: name, Kind: KindNumeric, Floats: cp})
}

// AddStringColumn appends a categorical column. The values are copied.
func (df *DataFrame) AddStringColumn(name string, values []string) error {
	cp := make([]string, len(values))
	copy(cp, values)
	return df.add(&Column{Name: name, Kind: KindCategorical, Strings: cp})
}

func (df *DataFrame) add(col *Column) error {
	if _, exists := df.columns[col.Name]; exists {
		return fmt.Errorf("%w: %q", core.ErrDuplicateColumn, col.Name)
	}
	if len(df.order) > 0 && col.Len() != df.rows {
		return fmt.Errorf("%w: column %q has %d rows, frame has %d", core.ErrColumnLength, col.Name, col.Len(), df.rows)
	}
	df.order = append(df.order, col.Name)
	df.columns[col.Name] = col
	df.rows = col.Len()
	return nil
}

// Columns returns column names in insertion order
func (df *DataFrame) Columns() []string {
	out := make([]string, len(df.order))
	copy(out, df.order)
	return out
}

// NumRows returns the number of observations
func (df *DataFrame) NumRows() int {
	return df.rows
}

// HasColumn reports whether name is a column of the frame
func (df *DataFrame) HasColumn(name string) bool {
	_, ok := df.columns[name]
	return ok
}

// Column returns the named column or nil
func (df *DataFrame) Column(name string) *Column {
	return df.columns[name]
}

// Floats returns the values of a numeric column.
func (df *DataFrame) Floats(name string) ([]float64, error) {
	col, ok := df.columns[name]
	if !ok {
		return nil, core.NewColumnNotFoundError("column", name)
	}
	if col.Kind != KindNumeric {
		return nil, core.NewColumnTypeError(name, "numeric")
	}
	return col.Floats, nil
}

// Labels returns the values of any column as strings.
func (df *DataFrame) Labels(name string) ([]string, error) {
	col, ok := df.columns[name]
	if !ok {
		return nil, core.NewColumnNotFoundError("column", name)
	}
	if col.Kind == KindCategorical {
		return col.Strings, nil
	}
	out := make([]string, col.Len())
	for i := range out {
		out[i] = col.Label(i)
	}
	return out, nil
}

// NumericColumns returns the names of all numeric columns in order
func (df *DataFrame) NumericColumns() []string {
	var out []string
	for _, name := range df.order {
		if df.columns[name].Kind == KindNumeric {
			out = append(out, name)
		}
	}
	return out
}

// Unique returns the distinct non-empty labels of a column in order of
// first occurrence.
func (df *DataFrame) Unique(name string) ([]string, error) {
	labels, err := df.Labels(name)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []string
	for _, l := range labels {
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out, nil
}

// Require checks that every named parameter points at an existing column.
// Pairs are given as parameter name followed by column name.
func (df *DataFrame) Require(paramColumn ...string) error {
	for i := 0; i+1 < len(paramColumn); i += 2 {
		param, column := paramColumn[i], paramColumn[i+1]
		if column == "" || !df.HasColumn(column) {
			return core.NewColumnNotFoundError(param, column)
		}
	}
	return nil
}
