package export

import "fmt"

// Column describes one exported field. Width is only used by the PDF renderer.
type Column struct {
	Key   string
	Label string
	Width float64
}

// Table defines tabular export content.
type Table struct {
	Title   string
	Columns []Column
	Rows    []map[string]string
	Footer  string
}

func (t Table) validate() error {
	if len(t.Columns) == 0 {
		return fmt.Errorf("export requires at least one column")
	}
	return nil
}

func (t Table) labels() []string {
	labels := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		labels[i] = col.Label
		if labels[i] == "" {
			labels[i] = col.Key
		}
	}
	return labels
}

func (t Table) record(row map[string]string) []string {
	record := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		record[i] = row[col.Key]
	}
	return record
}
