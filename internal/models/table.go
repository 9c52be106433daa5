package models

// Table is the raw two-dimensional snapshot returned by a table source.
// Row 0 of the upstream response is split off as Headers; everything after
// it is data. The shape is preserved as-is so it can round-trip through the
// snapshot cache without loss.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Empty reports whether the table carries no usable data.
func (t *Table) Empty() bool {
	return t == nil || len(t.Headers) == 0
}
