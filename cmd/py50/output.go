package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"py50/adapters/report"
	"py50/domain/dataset"
	"py50/domain/stats"
	"py50/internal/errors"
)

// outputFlags are shared by every command that produces a result table
type outputFlags struct {
	decimals int
	xlsx     string
	report   string
	options  []string
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&o.decimals, "decimals", 4, "Decimals when printing numbers")
	cmd.Flags().StringVar(&o.xlsx, "xlsx", "", "Also write the result table to this .xlsx workbook")
	cmd.Flags().StringVar(&o.report, "report", "", "Also write a .md or .html report")
	cmd.Flags().StringArrayVarP(&o.options, "opt", "o", nil, "Test option as key=value (repeatable)")
}

func (o *outputFlags) parsedOptions() (stats.Options, error) {
	if len(o.options) == 0 {
		return nil, nil
	}
	return stats.ParseOptions(o.options)
}

// result is one table to print and export
type result struct {
	title   string
	table   *stats.ResultTable
	symbols []string
	figure  string
}

func (e *env) loadData() (*dataset.DataFrame, error) {
	path := e.dataFile
	if path == "" {
		path = e.cfg.Data.File
	}
	if path == "" {
		return nil, errors.InvalidInput("no data file: use --data or set PY50_DATA_FILE")
	}
	return e.reader.Read(path)
}

// emit prints r and writes the requested exports
func (e *env) emit(cmd *cobra.Command, o *outputFlags, r result) error {
	out := cmd.OutOrStdout()
	if r.table != nil {
		fmt.Fprintf(out, "%s\n\n", r.title)
		printTable(out, r.table, r.symbols, o.decimals)
	}
	if r.figure != "" {
		fmt.Fprintf(out, "figure: %s\n", r.figure)
	}

	if o.xlsx != "" && r.table != nil {
		if err := e.writer.Write(o.xlsx, r.table); err != nil {
			return err
		}
	}
	if o.report != "" {
		rep := report.New("py50: " + r.title)
		rep.Decimals = o.decimals
		rep.Add(report.Section{Title: r.title, Table: r.table, Symbols: r.symbols, Figure: r.figure})
		if err := rep.Save(o.report); err != nil {
			return err
		}
		e.logger.Info("wrote report %s", o.report)
	}
	return nil
}

func printTable(w io.Writer, table *stats.ResultTable, symbols []string, decimals int) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	columns := table.Columns()
	withSymbols := len(symbols) == table.NumRows() && len(symbols) > 0
	if withSymbols {
		columns = append(columns, report.SymbolColumn)
	}
	fmt.Fprintln(tw, strings.Join(columns, "\t"))

	for i := 0; i < table.NumRows(); i++ {
		row := table.Row(i)
		cells := make([]string, 0, len(columns))
		for _, v := range row {
			cells = append(cells, stats.FormatCell(v, decimals))
		}
		if withSymbols {
			cells = append(cells, symbols[i])
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	tw.Flush()
	fmt.Fprintln(w)
}
