package domain

// SelectColumns keeps the table columns present in allowed, in table order.
// Allowed names missing from the table are ignored.
func SelectColumns(columns []string, allowed map[string]struct{}) []string {
	kept := make([]string, 0, len(columns))
	for _, col := range columns {
		if _, ok := allowed[col]; ok {
			kept = append(kept, col)
		}
	}
	return kept
}
