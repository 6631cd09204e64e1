package excel

// ReaderConfig controls how raw cells become typed columns
type ReaderConfig struct {
	Sheet         string   `json:"sheet"`          // xlsx sheet; empty reads the first one
	Categorical   []string `json:"categorical"`    // columns kept as labels even if numeric
	MissingValues []string `json:"missing_values"` // cell contents read as missing
}

// DefaultReaderConfig returns sensible defaults for dataset files
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{
		MissingValues: []string{"", "NA", "N/A", "NaN", "nan", "null", "None", "-"},
	}
}
