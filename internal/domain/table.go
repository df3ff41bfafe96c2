package domain

import "time"

// Column is one numeric column of a station table.
type Column struct {
	Name   string
	Values []float64
}

// Table is a station record indexed by time. Columns keep source header order
// and each has len(Time) values.
type Table struct {
	Time    []time.Time
	Columns []Column
}

// Len returns the number of time steps.
func (t Table) Len() int {
	return len(t.Time)
}

// ColumnNames returns the column names in table order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Column looks up a column by name.
func (t Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Narrow returns a table holding only the named columns, in the given order.
// Unknown names are skipped.
func (t Table) Narrow(names []string) Table {
	out := Table{Time: t.Time, Columns: make([]Column, 0, len(names))}
	for _, n := range names {
		if c, ok := t.Column(n); ok {
			out.Columns = append(out.Columns, c)
		}
	}
	return out
}
