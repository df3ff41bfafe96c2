package pipeline_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/couchcryptid/fluxcdf/internal/adapter/fluxcsv"
	"github.com/couchcryptid/fluxcdf/internal/adapter/reference"
	"github.com/couchcryptid/fluxcdf/internal/domain"
	"github.com/couchcryptid/fluxcdf/internal/pipeline"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The testdata tree mirrors an unpacked FLUXNET2015 archive:
//
//	AT-Neu  DD file, in the site registry     -> converted
//	CH-Cha  HH file only                      -> extract fails for DD
//	FR-Pue  DD file, not in the site registry -> transform fails
//	AA-Flx  template station                  -> never listed
func TestPipeline_WithMockStations(t *testing.T) {
	catalog, err := reference.LoadCatalog(reference.Paths{
		Legend:         filepath.Join("testdata", "doc", "variable_codes.csv"),
		Sites:          filepath.Join("testdata", "doc", "site_info.csv"),
		VariableGroups: filepath.Join("testdata", "doc", "variable_groups.csv"),
	})
	require.NoError(t, err)
	policy, err := reference.LoadPolicy(filepath.Join("testdata", "doc", "output_variables.csv"))
	require.NoError(t, err)

	logger := discardLogger()
	clock := clockwork.NewFakeClockAt(time.Date(2024, time.April, 26, 15, 10, 5, 0, time.UTC))
	ext := fluxcsv.NewExtractor(logger)
	ldr := &mockLoader{}
	metrics := newTestMetrics()

	p := pipeline.New(ext, ext, pipeline.NewTransformer(catalog, policy, "https://fluxnet.org", clock, logger), ldr, logger, metrics)

	req := domain.Request{
		DataRoot:    filepath.Join("testdata", "stations"),
		Site:        domain.AllSites,
		Aggregation: domain.Daily,
		SetType:     domain.FullSet,
	}
	summary, err := p.Run(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, summary.Converted, 1)
	assert.Equal(t, "AT-Neu", summary.Converted[0].Site)

	failed := map[string]string{}
	for _, f := range summary.Failed {
		failed[f.Site] = f.Stage
	}
	assert.Equal(t, map[string]string{
		"CH-Cha": pipeline.StageExtract,
		"FR-Pue": pipeline.StageTransform,
	}, failed)

	require.Len(t, ldr.loaded, 1)
	ds := ldr.loaded[0]
	assert.Equal(t, "FLX_AT-Neu_DD", ds.Name)
	assert.Len(t, ds.Time.Values, 3)

	names := make([]string, len(ds.Variables))
	for i, v := range ds.Variables {
		names[i] = v.Name
	}
	assert.Equal(t, []string{"TA_F_MDS", "TS_F_MDS_1", "TS_F_MDS_2", "NEE_VUT_REF", "NEE_CUT_50"}, names)

	units := map[string]string{}
	for _, v := range ds.Variables {
		units[v.Name] = v.Units
		assert.NotEmpty(t, v.LongName, v.Name)
		assert.Equal(t, domain.DefaultFill, v.Fill, v.Name)
	}
	assert.Equal(t, "deg C", units["TS_F_MDS_2"])
	assert.Equal(t, "gC m-2 d-1", units["NEE_VUT_REF"])
	assert.Equal(t, "gC m-2 d-1", units["NEE_CUT_50"])

	ta, ok := ds.Variable("TA_F_MDS")
	require.True(t, ok)
	assert.Equal(t, []float64{-1.525, -3.101, domain.FillValue}, ta.Values)

	assert.Equal(t, "Austria", ds.Global.Country)
	assert.InDelta(t, 47.11667, ds.Global.Latitude, 1e-9)
}
