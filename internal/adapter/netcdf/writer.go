// Package netcdf persists annotated station datasets as netCDF-4 files.
package netcdf

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/fluxcdf/internal/domain"
	nc "github.com/fhs/go-netcdf/netcdf"
)

const (
	fileExt = ".nc"
	timeDim = "time"
	// unlimited is the netCDF length of a record dimension.
	unlimited = 0
)

// Writer writes one netCDF file per dataset into an output directory.
type Writer struct {
	dir    string
	logger *slog.Logger
}

// NewWriter creates a Writer rooted at dir. The directory is created on the
// first write.
func NewWriter(dir string, logger *slog.Logger) *Writer {
	return &Writer{dir: dir, logger: logger}
}

// Path returns the output path of a dataset.
func (w *Writer) Path(ds domain.AnnotatedDataset) string {
	return filepath.Join(w.dir, ds.Name+fileExt)
}

// Load writes ds to <dir>/<name>.nc, replacing any existing file, and returns
// the path written. A partially written file is removed on failure.
func (w *Writer) Load(ctx context.Context, ds domain.AnnotatedDataset) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := w.Path(ds)
	if err := write(path, ds); err != nil {
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			w.logger.Warn("remove partial output failed", "path", path, "error", rmErr)
		}
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	w.logger.Debug("dataset written",
		"path", path,
		"variables", len(ds.Variables),
		"time_steps", len(ds.Time.Values),
	)
	return path, nil
}

// write defines every dimension, variable and attribute first, then leaves
// define mode and writes the data. The time coordinate is written element by
// element so the record dimension grows to its final length before the data
// variables are written whole.
func write(path string, ds domain.AnnotatedDataset) (err error) {
	f, err := nc.CreateFile(path, nc.CLOBBER|nc.NETCDF4)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close file: %w", cerr)
		}
	}()

	dim, err := f.AddDim(timeDim, unlimited)
	if err != nil {
		return fmt.Errorf("add time dimension: %w", err)
	}
	dims := []nc.Dim{dim}

	timeValues, timeUnits := ds.Time.Encode()
	timeVar, err := f.AddVar(timeDim, nc.DOUBLE, dims)
	if err != nil {
		return fmt.Errorf("add time variable: %w", err)
	}
	timeAttrs := []domain.Attribute{
		{Name: "long_name", Value: ds.Time.LongName},
		{Name: "units", Value: timeUnits},
		{Name: "calendar", Value: domain.Calendar},
	}
	if ds.Time.Fill.Set {
		timeAttrs = append(timeAttrs, domain.Attribute{Name: "_FillValue", Value: ds.Time.Fill.Value})
	}
	if err := writeAttrs(timeVar.Attr, timeAttrs); err != nil {
		return fmt.Errorf("time: %w", err)
	}

	coordVars := make([]nc.Var, len(ds.Coordinates))
	for i, c := range ds.Coordinates {
		v, err := f.AddVar(c.Name, nc.DOUBLE, nil)
		if err != nil {
			return fmt.Errorf("add coordinate %s: %w", c.Name, err)
		}
		if err := writeAttrs(v.Attr, c.Attributes()); err != nil {
			return fmt.Errorf("coordinate %s: %w", c.Name, err)
		}
		coordVars[i] = v
	}

	dataVars := make([]nc.Var, len(ds.Variables))
	for i, dv := range ds.Variables {
		v, err := f.AddVar(dv.Name, nc.DOUBLE, dims)
		if err != nil {
			return fmt.Errorf("add variable %s: %w", dv.Name, err)
		}
		if err := writeAttrs(v.Attr, dv.Attributes()); err != nil {
			return fmt.Errorf("variable %s: %w", dv.Name, err)
		}
		dataVars[i] = v
	}

	if err := writeAttrs(f.Attr, ds.Global.Attributes()); err != nil {
		return fmt.Errorf("global attributes: %w", err)
	}

	if err := f.EndDef(); err != nil {
		return fmt.Errorf("end define mode: %w", err)
	}

	for i, t := range timeValues {
		if err := timeVar.WriteFloat64At([]uint64{uint64(i)}, t); err != nil {
			return fmt.Errorf("write time[%d]: %w", i, err)
		}
	}
	for i, c := range ds.Coordinates {
		if err := coordVars[i].WriteFloat64s([]float64{c.Value}); err != nil {
			return fmt.Errorf("write coordinate %s: %w", c.Name, err)
		}
	}
	if len(timeValues) == 0 {
		return nil
	}
	for i, dv := range ds.Variables {
		if err := dataVars[i].WriteFloat64s(dv.Values); err != nil {
			return fmt.Errorf("write variable %s: %w", dv.Name, err)
		}
	}
	return nil
}

// writeAttrs writes string and float64 attributes.
func writeAttrs(attr func(string) nc.Attr, attrs []domain.Attribute) error {
	for _, a := range attrs {
		var err error
		switch v := a.Value.(type) {
		case string:
			err = attr(a.Name).WriteBytes(textBytes(v))
		case float64:
			err = attr(a.Name).WriteFloat64s([]float64{v})
		default:
			err = fmt.Errorf("unsupported attribute type %T", a.Value)
		}
		if err != nil {
			return fmt.Errorf("attribute %s: %w", a.Name, err)
		}
	}
	return nil
}

// textBytes returns the stored form of a text attribute. Attr.WriteBytes
// takes the address of the first byte, so an empty string is stored as a
// single NUL, which C-string readers see as empty.
func textBytes(v string) []byte {
	if v == "" {
		return []byte{0}
	}
	return []byte(v)
}
