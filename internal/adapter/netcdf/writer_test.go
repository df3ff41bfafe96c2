//go:build netcdf

package netcdf

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/couchcryptid/fluxcdf/internal/domain"
	nc "github.com/fhs/go-netcdf/netcdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDataset() domain.AnnotatedDataset {
	day := func(d int) time.Time { return time.Date(2002, 1, d, 0, 0, 0, 0, time.UTC) }
	return domain.AnnotatedDataset{
		Name: "FLX_AT-Neu_DD",
		Time: domain.TimeAxis{
			Values:   []time.Time{day(1), day(2), day(3)},
			LongName: "time",
			Fill:     domain.NoFill,
		},
		Variables: []domain.DataVariable{
			{Name: "TA_F_MDS", Values: []float64{-1.5, -9999, -2}, LongName: "Air temperature", Units: "deg C", Fill: domain.DefaultFill},
			{Name: "NIGHT", Values: []float64{1, 0, 1}, LongName: "Nighttime flag", Units: "", Fill: domain.DefaultFill},
		},
		Coordinates: []domain.Coordinate{
			{Name: "lon", Value: 11.3175, StandardName: "longitude", LongName: "longitude coordinate", Units: "degrees_east"},
			{Name: "lat", Value: 47.11667, StandardName: "latitude", LongName: "latitude coordinate", Units: "degrees_north"},
		},
		Global: domain.GlobalAttributes{
			Title:   "FLUXNET 2015 Tier 2 AT-Neu DD",
			Country: "Austria",
		},
	}
}

func readFloats(t *testing.T, f nc.Dataset, name string) []float64 {
	t.Helper()
	v, err := f.Var(name)
	require.NoError(t, err)
	n, err := v.Len()
	require.NoError(t, err)
	buf := make([]float64, n)
	require.NoError(t, v.ReadFloat64s(buf))
	return buf
}

func readText(t *testing.T, a nc.Attr) string {
	t.Helper()
	n, err := a.Len()
	require.NoError(t, err)
	buf := make([]byte, n)
	require.NoError(t, a.ReadBytes(buf))
	return string(buf)
}

func TestWriter_Load_RoundTrip(t *testing.T) {
	w := NewWriter(filepath.Join(t.TempDir(), "out"), slog.New(slog.NewTextHandler(io.Discard, nil)))

	path, err := w.Load(context.Background(), testDataset())
	require.NoError(t, err)
	assert.Equal(t, "FLX_AT-Neu_DD.nc", filepath.Base(path))

	f, err := nc.OpenFile(path, nc.NOWRITE)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []float64{0, 1, 2}, readFloats(t, f, "time"))
	assert.Equal(t, []float64{-1.5, -9999, -2}, readFloats(t, f, "TA_F_MDS"))
	assert.Equal(t, []float64{47.11667}, readFloats(t, f, "lat"))

	timeVar, err := f.Var("time")
	require.NoError(t, err)
	assert.Equal(t, "days since 2002-01-01", readText(t, timeVar.Attr("units")))

	ta, err := f.Var("TA_F_MDS")
	require.NoError(t, err)
	assert.Equal(t, "deg C", readText(t, ta.Attr("units")))
	fill := make([]float64, 1)
	require.NoError(t, ta.Attr("_FillValue").ReadFloat64s(fill))
	assert.Equal(t, domain.FillValue, fill[0])

	lat, err := f.Var("lat")
	require.NoError(t, err)
	_, err = lat.Attr("_FillValue").Len()
	assert.Error(t, err, "coordinates carry no fill value")

	assert.Equal(t, "Austria", readText(t, f.Attr("country")))

	night, err := f.Var("NIGHT")
	require.NoError(t, err)
	assert.Equal(t, "\x00", readText(t, night.Attr("units")), "empty units kept as NUL")
	_, err = f.Attr("contact").Len()
	assert.NoError(t, err, "empty global attributes are written")
}

func TestTextBytes(t *testing.T) {
	assert.Equal(t, []byte{0}, textBytes(""))
	assert.Equal(t, []byte("deg C"), textBytes("deg C"))
}

func TestWriter_Load_Cancelled(t *testing.T) {
	w := NewWriter(t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := w.Load(ctx, testDataset())
	require.ErrorIs(t, err, context.Canceled)
}
