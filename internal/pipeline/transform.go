package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/fluxcdf/internal/domain"
	"github.com/jonboulle/clockwork"
)

// StationTransformer implements Transformer with the domain conversion engine.
type StationTransformer struct {
	catalog *domain.Catalog
	policy  domain.Policy
	contact string
	clock   clockwork.Clock
	logger  *slog.Logger
}

// NewTransformer creates a StationTransformer. The clock stamps the history
// attribute of every dataset.
func NewTransformer(catalog *domain.Catalog, policy domain.Policy, contact string, clock clockwork.Clock, logger *slog.Logger) *StationTransformer {
	return &StationTransformer{
		catalog: catalog,
		policy:  policy,
		contact: contact,
		clock:   clock,
		logger:  logger,
	}
}

func (t *StationTransformer) Transform(_ context.Context, req domain.Request, table domain.Table) (domain.Conversion, error) {
	conv, err := domain.Convert(table, t.catalog, t.policy, domain.Invocation{
		Request:     req,
		ConvertedAt: t.clock.Now(),
		Contact:     t.contact,
	})
	if err != nil {
		return domain.Conversion{}, err
	}

	if len(conv.Excluded) > 0 {
		t.logger.Debug("columns excluded by policy", "site", req.Site, "columns", conv.Excluded)
	}
	if len(conv.Unresolved) > 0 {
		t.logger.Debug("columns without variable definition", "site", req.Site, "columns", conv.Unresolved)
	}
	return conv, nil
}
