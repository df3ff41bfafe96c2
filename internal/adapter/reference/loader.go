package reference

import (
	"fmt"
	"io"
	"os"

	"github.com/couchcryptid/fluxcdf/internal/domain"
)

// Paths locates the three reference tables.
type Paths struct {
	Legend         string
	Sites          string
	VariableGroups string
}

// LoadCatalog reads the reference tables and builds the catalog.
func LoadCatalog(paths Paths) (*domain.Catalog, error) {
	defs, err := readFile(paths.Legend, ReadLegend)
	if err != nil {
		return nil, err
	}
	members, err := readFile(paths.VariableGroups, ReadGroups)
	if err != nil {
		return nil, err
	}
	sites, err := readFile(paths.Sites, ReadSites)
	if err != nil {
		return nil, err
	}

	return domain.NewCatalog(defs, members, sites)
}

func readFile[T any](path string, parse func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, fmt.Errorf("open reference table: %w", err)
	}
	defer f.Close()

	v, err := parse(f)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}
