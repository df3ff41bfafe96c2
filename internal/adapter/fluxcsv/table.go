package fluxcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/fluxcdf/internal/domain"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	timestampColumn      = "TIMESTAMP"
	timestampStartColumn = "TIMESTAMP_START"
	timestampEndColumn   = "TIMESTAMP_END"
)

// timestampLayout picks the layout from the literal width of a timestamp:
// 4 digits are years, 8 are days, 12 are minutes.
func timestampLayout(s string) (string, error) {
	switch len(s) {
	case 4:
		return "2006", nil
	case 8:
		return "20060102", nil
	case 12:
		return "200601021504", nil
	default:
		return "", fmt.Errorf("%w: %q has %d digits, want 4, 8 or 12", domain.ErrInvalidTimestamp, s, len(s))
	}
}

// ReadTable reads a station CSV. The time axis comes from TIMESTAMP, or from
// TIMESTAMP_START when the file has interval columns; TIMESTAMP_END is
// dropped. Every other column is numeric, and empty or unparsable cells hold
// the fill value.
func ReadTable(r io.Reader) (domain.Table, error) {
	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	cr.ReuseRecord = true

	head, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return domain.Table{}, errors.New("read table: empty file")
	}
	if err != nil {
		return domain.Table{}, fmt.Errorf("read table header: %w", err)
	}

	timeIdx := -1
	skip := make(map[int]bool)
	for i, name := range head {
		switch strings.TrimSpace(name) {
		case timestampColumn:
			timeIdx = i
		case timestampStartColumn:
			if timeIdx < 0 || strings.TrimSpace(head[timeIdx]) != timestampColumn {
				timeIdx = i
			}
		case timestampEndColumn:
			skip[i] = true
		}
	}
	if timeIdx < 0 {
		return domain.Table{}, fmt.Errorf("%w: no %s or %s column", domain.ErrInvalidTimestamp, timestampColumn, timestampStartColumn)
	}
	skip[timeIdx] = true

	table := domain.Table{}
	colIdx := make([]int, 0, len(head))
	for i, name := range head {
		if skip[i] {
			continue
		}
		colIdx = append(colIdx, i)
		table.Columns = append(table.Columns, domain.Column{Name: strings.TrimSpace(name)})
	}

	layout := ""
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.Table{}, fmt.Errorf("read table: %w", err)
		}
		line, _ := cr.FieldPos(0)

		stamp := strings.TrimSpace(row[timeIdx])
		if layout == "" {
			if layout, err = timestampLayout(stamp); err != nil {
				return domain.Table{}, fmt.Errorf("line %d: %w", line, err)
			}
		}
		ts, err := time.Parse(layout, stamp)
		if err != nil {
			return domain.Table{}, fmt.Errorf("line %d: %w: %v", line, domain.ErrInvalidTimestamp, err)
		}
		table.Time = append(table.Time, ts)

		for j, i := range colIdx {
			table.Columns[j].Values = append(table.Columns[j].Values, parseValue(row[i]))
		}
	}

	return table, nil
}

func parseValue(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return domain.FillValue
	}
	return v
}
