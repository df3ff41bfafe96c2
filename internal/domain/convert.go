package domain

// Conversion is the outcome of annotating one station table.
type Conversion struct {
	Dataset AnnotatedDataset
	// Excluded lists the table columns the policy did not admit.
	Excluded []string
	// Unresolved lists admitted columns with no canonical variable.
	Unresolved []string
}

// Convert runs column selection, variable resolution and metadata attachment
// for one station. It fails only when the site is missing from the registry;
// unresolvable columns are dropped and reported in Unresolved.
func Convert(table Table, catalog *Catalog, policy Policy, inv Invocation) (Conversion, error) {
	site, err := catalog.Site(inv.Request.Site)
	if err != nil {
		return Conversion{}, err
	}

	columns := table.ColumnNames()
	allowed := ResolveAllowedVariables(policy, catalog, columns)
	kept := SelectColumns(columns, allowed)
	resolved, unresolved := ResolveAll(kept, catalog, inv.Request.Aggregation)

	return Conversion{
		Dataset:    Attach(table, resolved, site, inv),
		Excluded:   excluded(columns, allowed),
		Unresolved: unresolved,
	}, nil
}

func excluded(columns []string, allowed map[string]struct{}) []string {
	var out []string
	for _, c := range columns {
		if _, ok := allowed[c]; !ok {
			out = append(out, c)
		}
	}
	return out
}
