package domain

import "fmt"

// ResolvedVariable is a retained column matched to its canonical variable.
type ResolvedVariable struct {
	RawColumn     string
	CanonicalName string
	Description   string
	Unit          string
}

// Resolve matches a raw column to a canonical variable and picks its unit at
// aggregation agg. An exact catalog name wins; otherwise threshold and
// numbered replicates are looked up under their pattern key
// ("NEE_CUT_50" -> "NEE_CUT_XX", "TS_F_MDS_2" -> "TS_F_MDS_#"). A column with
// no match returns an error wrapping ErrResolution.
func Resolve(raw string, catalog *Catalog, agg Aggregation) (ResolvedVariable, error) {
	def, ok := catalog.Variable(raw)
	if !ok {
		switch p := ClassifyColumn(raw); p.Kind {
		case ThresholdReplicate, NumberedReplicate:
			def, ok = catalog.Variable(p.Key)
		case ExactName:
		}
	}
	if !ok {
		return ResolvedVariable{}, fmt.Errorf("resolve %s: %w", raw, ErrResolution)
	}

	return ResolvedVariable{
		RawColumn:     raw,
		CanonicalName: def.Name,
		Description:   def.Description,
		Unit:          def.Unit.For(agg),
	}, nil
}

// ResolveAll resolves columns in order. Columns that fail to resolve are
// returned separately rather than aborting the rest.
func ResolveAll(columns []string, catalog *Catalog, agg Aggregation) (resolved []ResolvedVariable, dropped []string) {
	resolved = make([]ResolvedVariable, 0, len(columns))
	for _, col := range columns {
		rv, err := Resolve(col, catalog, agg)
		if err != nil {
			dropped = append(dropped, col)
			continue
		}
		resolved = append(resolved, rv)
	}
	return resolved, dropped
}
