package stats

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"py50/domain/core"
)

// ResultTable is the tabular output of a statistical routine. Columns are
// ordered; cells hold float64, int, bool or string values.
type ResultTable struct {
	Name    string
	columns []string
	index   map[string]int
	rows    [][]interface{}
}

// NewResultTable creates an empty table with the given columns
func NewResultTable(name string, columns ...string) *ResultTable {
	t := &ResultTable{Name: name, index: make(map[string]int, len(columns))}
	for _, c := range columns {
		t.index[c] = len(t.columns)
		t.columns = append(t.columns, c)
	}
	return t
}

// AddRow appends a row. The number of values must match the column count.
func (t *ResultTable) AddRow(values ...interface{}) {
	if len(values) != len(t.columns) {
		panic(fmt.Sprintf("stats: table %s has %d columns, row has %d values", t.Name, len(t.columns), len(values)))
	}
	row := make([]interface{}, len(values))
	copy(row, values)
	t.rows = append(t.rows, row)
}

// AddColumn appends a column filled from values, one per existing row.
func (t *ResultTable) AddColumn(name string, values []interface{}) error {
	if _, exists := t.index[name]; exists {
		return fmt.Errorf("%w: %q", core.ErrDuplicateColumn, name)
	}
	if len(values) != len(t.rows) {
		return fmt.Errorf("%w: column %q has %d values, table has %d rows", core.ErrColumnLength, name, len(values), len(t.rows))
	}
	t.index[name] = len(t.columns)
	t.columns = append(t.columns, name)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], values[i])
	}
	return nil
}

// Columns returns the column names in order
func (t *ResultTable) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// NumRows returns the number of rows
func (t *ResultTable) NumRows() int {
	return len(t.rows)
}

// HasColumn reports whether the table has the named column
func (t *ResultTable) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Value returns a single cell, or nil when the column does not exist
func (t *ResultTable) Value(row int, column string) interface{} {
	idx, ok := t.index[column]
	if !ok || row < 0 || row >= len(t.rows) {
		return nil
	}
	return t.rows[row][idx]
}

// Row returns a copy of row i
func (t *ResultTable) Row(i int) []interface{} {
	out := make([]interface{}, len(t.columns))
	copy(out, t.rows[i])
	return out
}

// Floats returns a numeric column. Integer cells are converted, anything
// that is not a number becomes NaN.
func (t *ResultTable) Floats(column string) ([]float64, error) {
	idx, ok := t.index[column]
	if !ok {
		return nil, core.NewColumnNotFoundError("result column", column)
	}
	out := make([]float64, len(t.rows))
	for i, row := range t.rows {
		switch v := row[idx].(type) {
		case float64:
			out[i] = v
		case int:
			out[i] = float64(v)
		default:
			out[i] = math.NaN()
		}
	}
	return out, nil
}

// Strings returns a column formatted as text
func (t *ResultTable) Strings(column string) ([]string, error) {
	idx, ok := t.index[column]
	if !ok {
		return nil, core.NewColumnNotFoundError("result column", column)
	}
	out := make([]string, len(t.rows))
	for i, row := range t.rows {
		out[i] = FormatCell(row[idx], -1)
	}
	return out, nil
}

// Pairs returns the compared group pairs from the A and B columns in row order.
func (t *ResultTable) Pairs() ([]Pair, error) {
	a, err := t.Strings(ColA)
	if err != nil {
		return nil, err
	}
	b, err := t.Strings(ColB)
	if err != nil {
		return nil, err
	}
	pairs := make([]Pair, len(a))
	for i := range a {
		pairs[i] = Pair{A: a[i], B: b[i]}
	}
	return pairs, nil
}

// Fingerprint hashes the full table content. Equal tables hash equally.
func (t *ResultTable) Fingerprint() core.Hash {
	var sb strings.Builder
	sb.WriteString(t.Name)
	sb.WriteByte('\n')
	sb.WriteString(strings.Join(t.columns, "\t"))
	for _, row := range t.rows {
		sb.WriteByte('\n')
		for j, v := range row {
			if j > 0 {
				sb.WriteByte('\t')
			}
			sb.WriteString(FormatCell(v, -1))
		}
	}
	return core.NewHash([]byte(sb.String()))
}

// FormatCell renders a cell as text. Floats are rounded to decimals places
// when decimals >= 0 and use the shortest form otherwise. nil renders empty.
func FormatCell(v interface{}, decimals int) string {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		if math.IsNaN(x) {
			return "NaN"
		}
		return strconv.FormatFloat(x, 'f', decimals, 64)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
