// Package fluxcsv finds FLUXNET2015 station CSVs under a data root and reads
// them into time-indexed domain tables.
package fluxcsv

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/fluxcdf/internal/domain"
)

const (
	stationDirPrefix = "FLX"
	// templateSite is the placeholder station shipped with the archive.
	templateSite = "AA-Flx"
)

// ListSites returns the site code of every station directory under root, in
// directory order. Station directories are named FLX_<site>_..., where the
// site code is six characters, e.g. FLX_AT-Neu_FLUXNET2015_FULLSET_2002-2012_1-4.
func ListSites(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("list stations: %w", err)
	}

	var sites []string
	seen := make(map[string]bool)
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() || !strings.HasPrefix(name, stationDirPrefix) || len(name) < 10 {
			continue
		}
		site := name[4:10]
		if site == templateSite || seen[site] {
			continue
		}
		seen[site] = true
		sites = append(sites, site)
	}
	return sites, nil
}

// FindStationDir returns the one directory under root whose name contains site.
func FindStationDir(root, site string) (string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", fmt.Errorf("find station %s: %w", site, err)
	}

	var matches []string
	for _, e := range entries {
		if e.IsDir() && strings.Contains(e.Name(), site) {
			matches = append(matches, e.Name())
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s in %s", domain.ErrSiteNotFound, site, root)
	case 1:
		return filepath.Join(root, matches[0]), nil
	default:
		return "", fmt.Errorf("%w: %s matches %s", domain.ErrAmbiguousSite, site, strings.Join(matches, ", "))
	}
}

// FindFluxFile locates the CSV of a station for one set type and aggregation.
// File names follow FLX_<site>_FLUXNET2015_<settype>_<agg>_<years>_<version>.csv.
func FindFluxFile(root, site string, setType domain.SetType, agg domain.Aggregation) (string, error) {
	dir, err := FindStationDir(root, site)
	if err != nil {
		return "", err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read station directory: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.EqualFold(filepath.Ext(name), ".csv") {
			continue
		}
		tokens := strings.Split(name, "_")
		if len(tokens) < 5 {
			continue
		}
		if tokens[1] == site && tokens[3] == string(setType) && tokens[4] == string(agg) {
			return filepath.Join(dir, name), nil
		}
	}

	return "", fmt.Errorf("%w: %s %s %s in %s", domain.ErrSourceFileNotFound, site, setType, agg, dir)
}
