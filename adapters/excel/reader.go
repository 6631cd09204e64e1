package excel

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"py50/domain/dataset"
	"py50/internal"
	"py50/internal/errors"
	"py50/ports"
)

// DataReader loads xlsx and csv files into data frames
type DataReader struct {
	config ReaderConfig
	logger *internal.Logger
}

var _ ports.DatasetReaderPort = (*DataReader)(nil)

// NewDataReader creates a reader. A nil logger uses the default one.
func NewDataReader(config ReaderConfig, logger *internal.Logger) *DataReader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DataReader{config: config, logger: logger}
}

// Read loads the file at path. The format follows the extension: .csv is read
// as comma separated text, .xlsx and .xlsm as workbooks.
func (r *DataReader) Read(path string) (*dataset.DataFrame, error) {
	raw, err := r.ReadRaw(path)
	if err != nil {
		return nil, err
	}
	df, err := r.Convert(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "convert %s", filepath.Base(path))
	}
	return df, nil
}

// ReadRaw loads the cells of a file without type inference
func (r *DataReader) ReadRaw(path string) (*RawTable, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.IOError("open "+path, err)
	}
	start := time.Now()

	var rows [][]string
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		rows, err = r.readCSVRows(path)
	case ".xlsx", ".xlsm":
		rows, err = r.readExcelRows(path)
	default:
		return nil, errors.InvalidInput(fmt.Sprintf("unsupported data file type %q (use .csv or .xlsx)", ext))
	}
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, errors.ValidationError(fmt.Sprintf("%s must have a header row and at least one data row", filepath.Base(path)))
	}

	raw := processRows(rows)
	r.logger.Debug("read %s in %s (%d columns, %d rows)", path, time.Since(start).Round(time.Microsecond), len(raw.Headers), len(raw.Rows))
	return raw, nil
}

func (r *DataReader) readExcelRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.IOError("open workbook "+path, err)
	}
	defer f.Close()

	sheet := r.config.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.ValidationError(path + " has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.IOError("read sheet "+sheet, err)
	}
	return rows, nil
}

func (r *DataReader) readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.IOError("open "+path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.IOError("parse "+path, err)
	}
	return rows, nil
}

// processRows trims cells, names blank or repeated headers and pads short
// rows. Fully empty rows are dropped.
func processRows(rows [][]string) *RawTable {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	used := make(map[string]bool, len(headerRow))
	for i, header := range headerRow {
		base := strings.TrimSpace(header)
		if base == "" {
			base = "column_" + strconv.Itoa(i+1)
		}
		name := base
		for n := 2; used[name]; n++ {
			name = base + "_" + strconv.Itoa(n)
		}
		used[name] = true
		headers[i] = name
	}

	raw := &RawTable{Headers: headers}
	for _, row := range rows[1:] {
		cells := make([]string, len(headers))
		empty := true
		for j := 0; j < len(headers) && j < len(row); j++ {
			cells[j] = strings.TrimSpace(row[j])
			if cells[j] != "" {
				empty = false
			}
		}
		if !empty {
			raw.Rows = append(raw.Rows, cells)
		}
	}
	return raw
}

// Convert infers a type for every column: numeric when every non-missing
// cell parses as a number, categorical otherwise.
func (r *DataReader) Convert(raw *RawTable) (*dataset.DataFrame, error) {
	missing := make(map[string]bool, len(r.config.MissingValues))
	for _, m := range r.config.MissingValues {
		missing[m] = true
	}
	forced := make(map[string]bool, len(r.config.Categorical))
	for _, c := range r.config.Categorical {
		forced[c] = true
	}

	df := dataset.NewDataFrame()
	for j, name := range raw.Headers {
		cells := make([]string, len(raw.Rows))
		for i, row := range raw.Rows {
			cells[i] = row[j]
		}

		if values, ok := parseNumeric(cells, missing); ok && !forced[name] {
			if err := df.AddFloatColumn(name, values); err != nil {
				return nil, err
			}
			continue
		}
		for i, c := range cells {
			if missing[c] {
				cells[i] = ""
			}
		}
		if err := df.AddStringColumn(name, cells); err != nil {
			return nil, err
		}
	}
	r.logger.Trace("inferred %d numeric of %d columns", len(df.NumericColumns()), len(raw.Headers))
	return df, nil
}

func parseNumeric(cells []string, missing map[string]bool) ([]float64, bool) {
	values := make([]float64, len(cells))
	seen := false
	for i, c := range cells {
		if missing[c] {
			values[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(c, 64)
		if err != nil {
			return nil, false
		}
		values[i] = v
		seen = true
	}
	return values, seen
}
