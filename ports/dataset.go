package ports

import (
	"py50/domain/dataset"
	"py50/domain/stats"
)

// DatasetReaderPort loads a tabular dataset from a file
type DatasetReaderPort interface {
	Read(path string) (*dataset.DataFrame, error)
}

// TableWriterPort exports result tables
type TableWriterPort interface {
	Write(path string, tables ...*stats.ResultTable) error
}
