// Command fluxcdf converts FLUXNET2015 station CSVs to netCDF.
//
// Usage:
//
//	fluxcdf <data-root> <site|all> <HH|DD|WW|YY> <FULLSET|SUBSET>
//	fluxcdf check
//
// Reference table locations, the output directory and logging are set with
// environment variables, optionally from a .env file.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/fluxcdf/internal/adapter/fluxcsv"
	"github.com/couchcryptid/fluxcdf/internal/adapter/netcdf"
	"github.com/couchcryptid/fluxcdf/internal/adapter/reference"
	"github.com/couchcryptid/fluxcdf/internal/config"
	"github.com/couchcryptid/fluxcdf/internal/domain"
	"github.com/couchcryptid/fluxcdf/internal/observability"
	"github.com/couchcryptid/fluxcdf/internal/pipeline"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
)

var errAllFailed = errors.New("no station was converted")

func main() {
	if err := config.LoadDotEnv(); err != nil {
		slog.Error("failed to load .env", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = rootCommand(cfg).ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func rootCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fluxcdf <data-root> <site|all> <HH|DD|WW|YY> <FULLSET|SUBSET>",
		Short: "Convert FLUXNET2015 station CSVs to netCDF",
		Long: `Convert the FLUXNET2015 CSV of one station, or of every station under
the data root when the site is "all", to a netCDF file with variable and
site metadata attached. Output variables are chosen by group in the
output variables list at POLICY_PATH.`,
		Args:         cobra.ExactArgs(4),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := domain.Request{
				DataRoot:    args[0],
				Site:        args[1],
				Aggregation: domain.Aggregation(args[2]),
				SetType:     domain.SetType(args[3]),
			}
			return convert(cmd.Context(), cfg, req)
		},
	}

	cmd.AddCommand(checkCommand(cfg))
	return cmd
}

func convert(ctx context.Context, cfg *config.Config, req domain.Request) error {
	logger := observability.NewLogger(cfg).With("run_id", uuid.NewString())
	metrics := observability.NewMetrics()

	catalog, err := reference.LoadCatalog(cfg.ReferencePaths())
	if err != nil {
		logger.Error("failed to load reference tables", "error", err)
		return err
	}
	policy, err := reference.LoadPolicy(cfg.PolicyPath)
	if err != nil {
		logger.Error("failed to load output variables", "error", err)
		return err
	}
	if unknown := policy.UnknownGroups(catalog); len(unknown) > 0 {
		logger.Warn("policy lists groups with no variables", "groups", unknown)
	}
	logger.Info("reference tables loaded",
		"variables", len(catalog.Variables()),
		"sites", len(catalog.SiteCodes()),
		"enabled_groups", policy.EnabledGroups(),
	)

	extractor := fluxcsv.NewExtractor(logger)
	transformer := pipeline.NewTransformer(catalog, policy, cfg.Contact, clockwork.NewRealClock(), logger)
	writer := netcdf.NewWriter(cfg.OutputDir, logger)

	p := pipeline.New(extractor, extractor, transformer, writer, logger, metrics)

	summary, runErr := p.Run(ctx, req)

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Warn("failed to write metrics", "error", err)
		}
	}

	if runErr != nil {
		logger.Error("run aborted", "error", runErr)
		return runErr
	}
	for _, res := range summary.Converted {
		logger.Debug("output written", "site", res.Site, "path", res.Path)
	}
	if summary.AllFailed() {
		return fmt.Errorf("%w: %d failed", errAllFailed, len(summary.Failed))
	}
	return nil
}
