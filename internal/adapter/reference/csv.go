// Package reference loads the FLUXNET2015 reference tables (variable legend,
// site registry, variable groups) and the output policy into domain values.
package reference

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// newCSVReader returns a lenient reader that strips a UTF-8 byte order mark,
// which spreadsheet exports of the reference tables often carry.
func newCSVReader(r io.Reader, comma rune) *csv.Reader {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	cr := csv.NewReader(decoded)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr
}

// header maps lower-cased column names to their index.
type header map[string]int

func readHeader(cr *csv.Reader, table string, required ...string) (header, error) {
	row, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: empty table", table)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: read header: %w", table, err)
	}

	h := make(header, len(row))
	for i, name := range row {
		h[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range required {
		if _, ok := h[name]; !ok {
			return nil, fmt.Errorf("%s: missing column %q", table, name)
		}
	}
	return h, nil
}

// field returns the trimmed value of a named column, or "" when the row is short.
func (h header) field(row []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseFloat(table string, line int, column, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s line %d: column %s: %w", table, line, column, err)
	}
	return v, nil
}
