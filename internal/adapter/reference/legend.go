package reference

import (
	"fmt"
	"io"

	"github.com/couchcryptid/fluxcdf/internal/domain"
)

const legendTable = "legend"

// unitRowCodes are the labels the legend uses for aggregation-specific unit rows.
var unitRowCodes = map[string]bool{
	"HH": true, "HR": true, "DD": true, "WW": true, "MM": true, "YY": true,
}

// ReadLegend parses the variable legend (Variable, Description, Units).
//
// A variable whose Units cell is empty is followed by one row per
// aggregation, e.g.
//
//	NEE_VUT_REF,"Net Ecosystem Exchange ...",
//	HH,,umolCO2 m-2 s-1
//	DD,,gC m-2 d-1
//	YY,,gC m-2 y-1
//
// and gets a unit block. Every other variable gets a scalar unit.
func ReadLegend(r io.Reader) ([]domain.VariableDefinition, error) {
	cr := newCSVReader(r, ',')
	h, err := readHeader(cr, legendTable, "variable", "description", "units")
	if err != nil {
		return nil, err
	}

	var (
		defs    []domain.VariableDefinition
		open    = -1 // index of the variable collecting unit rows
		entries domain.UnitBlock
	)

	closeBlock := func() {
		if open >= 0 {
			defs[open].Unit = domain.BlockUnit(entries...)
		}
		open, entries = -1, nil
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", legendTable, err)
		}
		line, _ := cr.FieldPos(0)

		name := h.field(row, "variable")
		unit := h.field(row, "units")
		if name == "" {
			continue
		}

		if unitRowCodes[name] {
			if open < 0 {
				return nil, fmt.Errorf("%s line %d: unit row %s follows no variable", legendTable, line, name)
			}
			entries = append(entries, domain.UnitEntry{Aggregation: domain.Aggregation(name), Unit: unit})
			continue
		}

		closeBlock()
		def := domain.VariableDefinition{
			Name:        name,
			Description: h.field(row, "description"),
			Unit:        domain.ScalarUnit(unit),
		}
		defs = append(defs, def)
		if unit == "" {
			open = len(defs) - 1
		}
	}
	closeBlock()

	return defs, nil
}
