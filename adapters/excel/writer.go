package excel

import (
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"py50/domain/stats"
	"py50/internal"
	"py50/internal/errors"
	"py50/ports"
)

const maxSheetName = 31

// TableWriter exports result tables to a workbook, one sheet per table
type TableWriter struct {
	logger *internal.Logger
}

var _ ports.TableWriterPort = (*TableWriter)(nil)

// NewTableWriter creates a writer. A nil logger uses the default one.
func NewTableWriter(logger *internal.Logger) *TableWriter {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &TableWriter{logger: logger}
}

// Write saves tables to path. Sheets are named after the tables; missing
// values are left blank.
func (w *TableWriter) Write(path string, tables ...*stats.ResultTable) error {
	if len(tables) == 0 {
		return errors.InvalidInput("no tables to write")
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".xlsx" {
		return errors.InvalidInput("result workbooks must be .xlsx, got " + strconv.Quote(ext))
	}

	f := excelize.NewFile()
	defer f.Close()

	used := make(map[string]bool, len(tables))
	for i, table := range tables {
		sheet := sheetName(table.Name, used)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return errors.Wrapf(err, "name sheet %s", sheet)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return errors.Wrapf(err, "add sheet %s", sheet)
		}
		if err := writeTable(f, sheet, table); err != nil {
			return errors.Wrapf(err, "write sheet %s", sheet)
		}
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.IOError("create output directory", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return errors.IOError("save "+path, err)
	}
	w.logger.Info("wrote %d tables to %s", len(tables), path)
	return nil
}

func writeTable(f *excelize.File, sheet string, table *stats.ResultTable) error {
	columns := table.Columns()
	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for r := 0; r < table.NumRows(); r++ {
		row := table.Row(r)
		cells := make([]interface{}, len(row))
		for i, v := range row {
			cells[i] = cellValue(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return err
		}
	}
	return nil
}

// cellValue maps NaN and infinities to blank cells
func cellValue(v interface{}) interface{} {
	if x, ok := v.(float64); ok && (math.IsNaN(x) || math.IsInf(x, 0)) {
		return nil
	}
	return v
}

// sheetName turns a table name into a unique valid sheet name
func sheetName(name string, used map[string]bool) string {
	clean := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '_'
		}
		return r
	}, name)
	if clean == "" {
		clean = "table"
	}
	if len(clean) > maxSheetName {
		clean = clean[:maxSheetName]
	}
	candidate := clean
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := "_" + strconv.Itoa(n)
		base := clean
		if len(base)+len(suffix) > maxSheetName {
			base = base[:maxSheetName-len(suffix)]
		}
		candidate = base + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}
