package excel

import (
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"py50/domain/core"
	"py50/domain/dataset"
	"py50/domain/stats"
	"py50/internal"
	apperrors "py50/internal/errors"
)

func quiet() *internal.Logger {
	return internal.NewLoggerTo(internal.LogLevelError, io.Discard)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCSV_InfersTypes(t *testing.T) {
	path := writeFile(t, "data.csv", "group, score ,dose,note\n"+
		"a,1.5,1,x\n"+
		"b,NA,2,\n"+
		",,,\n"+
		"a,2.5,3,y\n")

	df, err := NewDataReader(DefaultReaderConfig(), quiet()).Read(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"group", "score", "dose", "note"}, df.Columns())
	assert.Equal(t, 3, df.NumRows())
	assert.Equal(t, []string{"score", "dose"}, df.NumericColumns())

	score, err := df.Floats("score")
	require.NoError(t, err)
	assert.Equal(t, 1.5, score[0])
	assert.True(t, math.IsNaN(score[1]))

	note, err := df.Labels("note")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "", "y"}, note)
}

func TestReadCSV_ForcedCategorical(t *testing.T) {
	path := writeFile(t, "dose.csv", "dose,y\n10,1\n20,2\n10,3\n")
	cfg := DefaultReaderConfig()
	cfg.Categorical = []string{"dose"}

	df, err := NewDataReader(cfg, quiet()).Read(path)
	require.NoError(t, err)
	assert.Equal(t, dataset.KindCategorical, df.Column("dose").Kind)
	labels, err := df.Unique("dose")
	require.NoError(t, err)
	assert.Equal(t, []string{"10", "20"}, labels)
}

func TestProcessRows_Headers(t *testing.T) {
	raw := processRows([][]string{{"a", "", "a"}, {"1", "2"}})
	assert.Equal(t, []string{"a", "column_2", "a_2"}, raw.Headers)
	assert.Equal(t, [][]string{{"1", "2", ""}}, raw.Rows)
}

func TestProcessRows_GeneratedNamesStayUnique(t *testing.T) {
	raw := processRows([][]string{{"a", "a_2", "a", "", "column_4"}, {"1", "2", "3", "4", "5"}})
	assert.Equal(t, []string{"a", "a_2", "a_3", "column_4", "column_4_2"}, raw.Headers)

	df, err := NewDataReader(DefaultReaderConfig(), quiet()).Convert(raw)
	require.NoError(t, err)
	assert.Equal(t, raw.Headers, df.Columns())
}

func TestRead_Errors(t *testing.T) {
	reader := NewDataReader(DefaultReaderConfig(), quiet())

	_, err := reader.Read(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Equal(t, apperrors.CodeIOError, apperrors.GetCode(err))

	_, err = reader.Read(writeFile(t, "data.json", "{}"))
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.GetCode(err))

	_, err = reader.Read(writeFile(t, "header.csv", "a,b\n"))
	assert.Equal(t, apperrors.CodeValidationError, apperrors.GetCode(err))
}

func TestReadExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"group", "score"},
		{"ctrl", 1.25},
		{"drug", 3},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	df, err := NewDataReader(DefaultReaderConfig(), quiet()).Read(path)
	require.NoError(t, err)
	score, err := df.Floats("score")
	require.NoError(t, err)
	assert.Equal(t, []float64{1.25, 3}, score)

	cfg := DefaultReaderConfig()
	cfg.Sheet = "Other"
	_, err = NewDataReader(cfg, quiet()).Read(path)
	assert.Equal(t, apperrors.CodeIOError, apperrors.GetCode(err))
}

func TestTableWriter_RoundTrip(t *testing.T) {
	first := stats.NewResultTable("pairwise_tukey", stats.ColA, stats.ColB, stats.ColPTukey)
	first.AddRow("a", "b", 0.5)
	first.AddRow("a", "c", math.NaN())
	second := stats.NewResultTable("pairwise_tukey", "Source", "F")
	second.AddRow("group", 12)

	path := filepath.Join(t.TempDir(), "out", "results.xlsx")
	require.NoError(t, NewTableWriter(quiet()).Write(path, first, second))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"pairwise_tukey", "pairwise_tukey_2"}, f.GetSheetList())

	rows, err := f.GetRows("pairwise_tukey")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"A", "B", "p-tukey"}, rows[0])
	assert.Equal(t, []string{"a", "b", "0.5"}, rows[1])
	assert.Equal(t, []string{"a", "c"}, rows[2])
}

func TestTableWriter_Errors(t *testing.T) {
	w := NewTableWriter(quiet())
	assert.Error(t, w.Write(filepath.Join(t.TempDir(), "none.xlsx")))

	table := stats.NewResultTable("t", "x")
	err := w.Write(filepath.Join(t.TempDir(), "out.csv"), table)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.GetCode(err))
}

func TestSheetName(t *testing.T) {
	used := map[string]bool{}
	assert.Equal(t, "a_b", sheetName("a/b", used))
	assert.Equal(t, "A_b_2", sheetName("A/b", used))
	assert.Equal(t, "table", sheetName("", used))
	long := sheetName("a_very_long_result_table_name_over_limit", used)
	assert.Len(t, long, maxSheetName)
}

func TestConvert_DuplicateColumnIsDomainError(t *testing.T) {
	// processRows renames repeats, so only hand-built raw tables can collide
	raw := &RawTable{Headers: []string{"x", "x"}, Rows: [][]string{{"1", "2"}}}
	_, err := NewDataReader(DefaultReaderConfig(), quiet()).Convert(raw)
	assert.True(t, errors.Is(err, core.ErrDuplicateColumn))
}
