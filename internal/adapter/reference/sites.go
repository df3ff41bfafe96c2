package reference

import (
	"fmt"
	"io"
	"math"

	"github.com/couchcryptid/fluxcdf/internal/domain"
)

const sitesTable = "site registry"

// ReadSites parses the site registry (site, lat, lon, elev, country, pft).
// A blank numeric cell becomes NaN.
func ReadSites(r io.Reader) ([]domain.SiteRecord, error) {
	cr := newCSVReader(r, ',')
	h, err := readHeader(cr, sitesTable, "site", "lat", "lon")
	if err != nil {
		return nil, err
	}

	var sites []domain.SiteRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", sitesTable, err)
		}
		line, _ := cr.FieldPos(0)

		code := h.field(row, "site")
		if code == "" {
			continue
		}

		var coords [3]float64
		for i, col := range []string{"lat", "lon", "elev"} {
			s := h.field(row, col)
			if s == "" {
				coords[i] = math.NaN()
				continue
			}
			if coords[i], err = parseFloat(sitesTable, line, col, s); err != nil {
				return nil, err
			}
		}

		sites = append(sites, domain.SiteRecord{
			Code:                code,
			Lat:                 coords[0],
			Lon:                 coords[1],
			Elevation:           coords[2],
			Country:             h.field(row, "country"),
			PlantFunctionalType: h.field(row, "pft"),
		})
	}

	return sites, nil
}
