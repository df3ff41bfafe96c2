package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/fluxcdf/internal/domain"
	"github.com/couchcryptid/fluxcdf/internal/observability"
)

// Stages a station conversion can fail in.
const (
	StageRequest   = "request"
	StageExtract   = "extract"
	StageTransform = "transform"
	StageLoad      = "load"
)

// SiteLister enumerates the stations under a data root.
type SiteLister interface {
	Sites(ctx context.Context, root string) ([]string, error)
}

// Extractor reads the time-indexed table of one station.
type Extractor interface {
	Extract(ctx context.Context, req domain.Request) (domain.Table, error)
}

// Transformer selects, resolves and annotates the columns of a station table.
type Transformer interface {
	Transform(ctx context.Context, req domain.Request, table domain.Table) (domain.Conversion, error)
}

// Loader persists an annotated dataset and returns where it was written.
type Loader interface {
	Load(ctx context.Context, ds domain.AnnotatedDataset) (string, error)
}

// StationResult is the outcome of converting one station.
type StationResult struct {
	Site  string
	Path  string
	Stage string
	Err   error
}

// Summary collects the station outcomes of a run.
type Summary struct {
	Converted []StationResult
	Failed    []StationResult
}

// AllFailed reports whether the run attempted stations and none succeeded.
func (s Summary) AllFailed() bool {
	return len(s.Failed) > 0 && len(s.Converted) == 0
}

// Pipeline converts stations one at a time, each to completion before the next.
type Pipeline struct {
	sites       SiteLister
	extractor   Extractor
	transformer Transformer
	loader      Loader
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// New creates a Pipeline with the given stages and observability.
func New(s SiteLister, e Extractor, t Transformer, l Loader, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		sites:       s,
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
	}
}

// Run converts the requested station, or every station under the data root
// when the request names all sites. Station failures are recorded in the
// summary and never stop the run; the returned error is reserved for failures
// of the run itself, such as an invalid code in an "all" request, an
// unreadable data root or cancellation.
func (p *Pipeline) Run(ctx context.Context, req domain.Request) (Summary, error) {
	sites := []string{req.Site}
	if req.IsAll() {
		if err := validateCodes(req); err != nil {
			return Summary{}, err
		}
		var err error
		sites, err = p.sites.Sites(ctx, req.DataRoot)
		if err != nil {
			return Summary{}, err
		}
		if len(sites) == 0 {
			p.logger.Warn("no stations found", "data_root", req.DataRoot)
		}
	}

	p.logger.Info("run started",
		"data_root", req.DataRoot,
		"stations", len(sites),
		"aggregation", req.Aggregation,
		"set_type", req.SetType,
	)

	var summary Summary
	for _, site := range sites {
		if err := ctx.Err(); err != nil {
			p.logger.Info("run stopping", "reason", err)
			return summary, err
		}

		res := p.convertStation(ctx, req.ForSite(site))
		if res.Err != nil {
			level := slog.LevelError
			if req.IsAll() {
				level = slog.LevelWarn
			}
			p.logger.Log(ctx, level, "station failed, skipping",
				"site", site, "stage", res.Stage, "error", res.Err)
			p.metrics.StationsFailed.WithLabelValues(res.Stage).Inc()
			summary.Failed = append(summary.Failed, res)
			continue
		}
		summary.Converted = append(summary.Converted, res)
	}

	p.logger.Info("run finished",
		"converted", len(summary.Converted),
		"failed", len(summary.Failed),
	)
	return summary, nil
}

// convertStation runs one extract-transform-load cycle.
func (p *Pipeline) convertStation(ctx context.Context, req domain.Request) StationResult {
	start := time.Now()
	res := StationResult{Site: req.Site}

	fail := func(stage string, err error) StationResult {
		res.Stage, res.Err = stage, err
		return res
	}

	if err := validate(req); err != nil {
		return fail(StageRequest, err)
	}

	p.logger.Info("converting station", "site", req.Site)

	table, err := p.extractor.Extract(ctx, req)
	if err != nil {
		return fail(StageExtract, err)
	}

	conv, err := p.transformer.Transform(ctx, req, table)
	if err != nil {
		return fail(StageTransform, err)
	}

	path, err := p.loader.Load(ctx, conv.Dataset)
	if err != nil {
		return fail(StageLoad, err)
	}

	p.metrics.StationsConverted.Inc()
	p.metrics.ColumnsRetained.Add(float64(len(conv.Dataset.Variables)))
	p.metrics.ColumnsExcluded.Add(float64(len(conv.Excluded)))
	p.metrics.ColumnsUnresolved.Add(float64(len(conv.Unresolved)))
	p.metrics.StationDuration.Observe(time.Since(start).Seconds())

	p.logger.Info("station converted",
		"site", req.Site,
		"path", path,
		"variables", len(conv.Dataset.Variables),
		"time_steps", table.Len(),
		"duration", time.Since(start),
	)
	res.Path = path
	return res
}

// validate checks the aggregation, set type and site of a station request.
func validate(req domain.Request) error {
	if err := validateCodes(req); err != nil {
		return err
	}
	if req.Site == "" {
		return fmt.Errorf("%w: empty site code", domain.ErrSiteNotFound)
	}
	return nil
}

func validateCodes(req domain.Request) error {
	if _, err := domain.ParseAggregation(string(req.Aggregation)); err != nil {
		return err
	}
	_, err := domain.ParseSetType(string(req.SetType))
	return err
}
