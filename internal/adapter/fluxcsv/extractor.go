package fluxcsv

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/couchcryptid/fluxcdf/internal/domain"
)

// Extractor reads station tables from a FLUXNET2015 data root.
type Extractor struct {
	logger *slog.Logger
}

// NewExtractor creates an Extractor.
func NewExtractor(logger *slog.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Sites lists the stations under root.
func (e *Extractor) Sites(_ context.Context, root string) ([]string, error) {
	return ListSites(root)
}

// Extract locates and reads the source CSV for one station request.
func (e *Extractor) Extract(ctx context.Context, req domain.Request) (domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return domain.Table{}, err
	}

	path, err := FindFluxFile(req.DataRoot, req.Site, req.SetType, req.Aggregation)
	if err != nil {
		return domain.Table{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return domain.Table{}, fmt.Errorf("open station file: %w", err)
	}
	defer f.Close()

	table, err := ReadTable(f)
	if err != nil {
		return domain.Table{}, fmt.Errorf("%s: %w", path, err)
	}

	e.logger.Debug("station file read",
		"site", req.Site,
		"path", path,
		"rows", table.Len(),
		"columns", len(table.Columns),
	)
	return table, nil
}
